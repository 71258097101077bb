// Package cmd holds the CLI command implementations.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/quill-input/quill"
	"github.com/quill-input/quill/apiclient"
	"github.com/quill-input/quill/apitypes"
)

// backendOpts selects the local display backend.
type backendOpts struct {
	Backend string `help:"Display backend" default:"auto" enum:"auto,x11,wayland" env:"QUILL_BACKEND"`
	Display string `help:"X11 display override" env:"QUILL_DISPLAY"`
}

func (b backendOpts) connect(logger *slog.Logger) (quill.Injector, error) {
	return quill.New(quill.Options{
		Backend: quill.BackendKind(b.Backend),
		Display: b.Display,
		Logger:  logger,
	})
}

// remoteOpts routes a command through a remote API server instead of a
// local backend.
type remoteOpts struct {
	Addr     string `help:"Address of a quill API server; inject locally when empty" env:"QUILL_ADDR"`
	Password string `help:"API password; prompted for when the server requires one" env:"QUILL_PASSWORD"`
}

func (o remoteOpts) remote() bool { return o.Addr != "" }

// runRemote executes fn against the configured server. When the server
// rejects the connection and no password was given, it prompts once on the
// terminal and retries.
func (o remoteOpts) runRemote(fn func(c *apiclient.Client) error) error {
	err := fn(apiclient.NewWithPassword(o.Addr, o.Password))
	var apiErr *apitypes.ApiError
	if errors.As(err, &apiErr) && apiErr.Status == 401 && o.Password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		pwd, perr := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if perr != nil {
			return err
		}
		return fn(apiclient.NewWithPassword(o.Addr, strings.TrimSpace(string(pwd))))
	}
	return err
}
