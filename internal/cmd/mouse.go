package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/quill-input/quill/apiclient"
	"github.com/quill-input/quill/input"
)

// Mouse groups the pointer subcommands.
type Mouse struct {
	Move   MouseMove   `cmd:"" help:"Move the pointer"`
	Button MouseButton `cmd:"" help:"Press, release or click a mouse button"`
	Scroll MouseScroll `cmd:"" help:"Scroll the mouse wheel"`
}

// MouseMove moves the pointer, relative by default.
type MouseMove struct {
	remoteOpts  `embed:""`
	backendOpts `embed:""`
	X           int  `arg:"" help:"Horizontal delta, or coordinate with --absolute"`
	Y           int  `arg:"" help:"Vertical delta, or coordinate with --absolute"`
	Absolute    bool `help:"Treat x and y as absolute screen coordinates"`
}

func (m *MouseMove) Run(logger *slog.Logger) error {
	if m.remote() {
		return m.runRemote(func(c *apiclient.Client) error {
			_, err := c.MouseMove(m.X, m.Y, m.Absolute)
			return err
		})
	}

	inj, err := m.connect(logger)
	if err != nil {
		return err
	}
	var merr error
	if m.Absolute {
		merr = inj.MoveAbs(m.X, m.Y)
	} else {
		merr = inj.MoveRel(m.X, m.Y)
	}
	return errors.Join(merr, inj.Teardown())
}

// MouseButton presses, releases or clicks a mouse button.
type MouseButton struct {
	remoteOpts  `embed:""`
	backendOpts `embed:""`
	Name        string `arg:"" optional:"" help:"Button name" default:"left" enum:"left,middle,right,back,forward"`
	Direction   string `help:"Button action" default:"click" enum:"press,release,click"`
}

func (m *MouseButton) Run(logger *slog.Logger) error {
	if m.remote() {
		return m.runRemote(func(c *apiclient.Client) error {
			_, err := c.MouseButton(m.Name, m.Direction)
			return err
		})
	}

	btn, err := input.ParseButton(m.Name)
	if err != nil {
		return err
	}
	dir, err := input.ParseDirection(m.Direction)
	if err != nil {
		return err
	}

	inj, err := m.connect(logger)
	if err != nil {
		return err
	}
	berr := inj.Button(btn, dir)
	return errors.Join(berr, inj.Teardown())
}

// MouseScroll scrolls the wheel by a number of steps.
type MouseScroll struct {
	remoteOpts  `embed:""`
	backendOpts `embed:""`
	Amount      int    `arg:"" help:"Steps to scroll; negative scrolls up or left"`
	Axis        string `help:"Scroll axis" default:"vertical" enum:"vertical,horizontal"`
}

func (m *MouseScroll) Run(logger *slog.Logger) error {
	if m.Amount == 0 {
		return fmt.Errorf("zero scroll amount")
	}
	if m.remote() {
		return m.runRemote(func(c *apiclient.Client) error {
			_, err := c.MouseScroll(m.Axis, m.Amount)
			return err
		})
	}

	axis, err := input.ParseAxis(m.Axis)
	if err != nil {
		return err
	}

	inj, err := m.connect(logger)
	if err != nil {
		return err
	}
	serr := inj.Scroll(axis, m.Amount)
	return errors.Join(serr, inj.Teardown())
}
