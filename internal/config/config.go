// Package config defines the top-level CLI grammar.
package config

import "github.com/quill-input/quill/internal/cmd"

// LogConfig controls the logger built at startup.
type LogConfig struct {
	Level string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"QUILL_LOG_LEVEL"`
	File  string `help:"Log file path; logs go to stdout/stderr when empty" env:"QUILL_LOG_FILE"`
}

// CLI is the root command parsed by kong.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a configuration file" type:"path"`

	Serve     cmd.Serve         `cmd:"" help:"Run the input injection API server"`
	Type      cmd.Type          `cmd:"" help:"Type text on the local or a remote display"`
	Key       cmd.Key           `cmd:"" help:"Press, release or click a single key"`
	Mouse     cmd.Mouse         `cmd:"" help:"Move, click or scroll the mouse"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
