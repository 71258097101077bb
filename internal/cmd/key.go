package cmd

import (
	"errors"
	"log/slog"

	"github.com/quill-input/quill/apiclient"
	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/key"
)

// Key presses, releases or clicks a single key.
type Key struct {
	remoteOpts  `embed:""`
	backendOpts `embed:""`
	Name        string `arg:"" help:"Key name, character or raw:<keycode>"`
	Direction   string `help:"Key action" default:"click" enum:"press,release,click"`
}

func (k *Key) Run(logger *slog.Logger) error {
	if k.remote() {
		return k.runRemote(func(c *apiclient.Client) error {
			_, err := c.Key(k.Name, k.Direction)
			return err
		})
	}

	parsed, err := key.Parse(k.Name)
	if err != nil {
		return err
	}
	dir, err := input.ParseDirection(k.Direction)
	if err != nil {
		return err
	}

	inj, err := k.connect(logger)
	if err != nil {
		return err
	}
	kerr := inj.Key(parsed, dir)
	return errors.Join(kerr, inj.Teardown())
}
