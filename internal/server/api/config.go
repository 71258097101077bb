package api

import "time"

// ServerConfig represents the serve subcommand configuration.
type ServerConfig struct {
	Addr              string        `help:"API server listen address" default:":3243" env:"QUILL_API_ADDR"`
	Password          string        `help:"API password; generated and stored next to the config when empty" env:"QUILL_API_PASSWORD"`
	ConnectionTimeout time.Duration `kong:"-"`
}
