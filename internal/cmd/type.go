package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/quill-input/quill/apiclient"
)

// Type types text on the local display or through a remote API server.
type Type struct {
	remoteOpts  `embed:""`
	backendOpts `embed:""`
	Text        string `arg:"" optional:"" help:"Text to type; read from stdin when omitted"`
}

func (t *Type) Run(logger *slog.Logger) error {
	text := t.Text
	if text == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no text given and stdin is a terminal")
		}
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}
	if text == "" {
		return errors.New("nothing to type")
	}

	if t.remote() {
		return t.runRemote(func(c *apiclient.Client) error {
			resp, err := c.Type(text)
			if err != nil {
				return err
			}
			logger.Debug("typed remotely", "chars", resp.Typed)
			return nil
		})
	}

	inj, err := t.connect(logger)
	if err != nil {
		return err
	}
	terr := inj.Text(text)
	return errors.Join(terr, inj.Teardown())
}
