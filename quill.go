// Package quill simulates keyboard and mouse input on Linux display
// servers. It speaks XTest to X11 servers and the virtual-keyboard,
// virtual-pointer and input-method extensions to Wayland compositors,
// binding key symbols to free keycode slots on demand through a shared
// allocation engine.
package quill

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/key"
	"github.com/quill-input/quill/wayland"
	"github.com/quill-input/quill/x11"
)

// ErrNoDisplayServer is returned when neither WAYLAND_DISPLAY nor DISPLAY
// points at a usable server.
var ErrNoDisplayServer = errors.New("no display server found")

// Keyboard injects key input.
type Keyboard interface {
	// Key presses, releases or clicks a logical key.
	Key(k key.Key, dir input.Direction) error
	// Text types a string.
	Text(s string) error
}

// Mouse injects pointer input.
type Mouse interface {
	Button(btn input.Button, dir input.Direction) error
	MoveRel(dx, dy int) error
	MoveAbs(x, y int) error
	Scroll(axis input.Axis, amount int) error
	Location() (x, y int, err error)
	DisplaySize() (w, h int, err error)
}

// Status summarizes the keycode ledger of a connected backend.
type Status struct {
	Backend string
	Bound   int
	Held    int
}

// Injector is a connected backend.
type Injector interface {
	Keyboard
	Mouse
	// Status reports the backend name and ledger counters.
	Status() Status
	// Teardown releases everything still held and closes the
	// connection. Call exactly once.
	Teardown() error
}

// BackendKind selects a display server protocol.
type BackendKind string

const (
	// BackendAuto prefers Wayland when WAYLAND_DISPLAY is set, else X11.
	BackendAuto    BackendKind = "auto"
	BackendX11     BackendKind = "x11"
	BackendWayland BackendKind = "wayland"
)

// Options configures New.
type Options struct {
	// Backend picks the protocol; default is BackendAuto.
	Backend BackendKind
	// Display overrides $DISPLAY for the X11 backend.
	Display string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New connects to the display server and returns a ready injector.
func New(opts Options) (Injector, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	kind := opts.Backend
	if kind == "" {
		kind = BackendAuto
	}
	if kind == BackendAuto {
		switch {
		case os.Getenv("WAYLAND_DISPLAY") != "":
			kind = BackendWayland
		case os.Getenv("DISPLAY") != "" || opts.Display != "":
			kind = BackendX11
		default:
			return nil, ErrNoDisplayServer
		}
	}
	switch kind {
	case BackendX11:
		backend, err := x11.New(opts.Display, logger)
		if err != nil {
			return nil, err
		}
		return &x11Injector{Backend: backend}, nil
	case BackendWayland:
		session, err := wayland.Connect(logger)
		if err != nil {
			return nil, err
		}
		return &waylandInjector{
			Keyboard: wayland.NewKeyboard(session, logger),
			Mouse:    wayland.NewMouse(session),
			session:  session,
		}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", kind)
}

// x11Injector adds the status view on top of the XTest backend.
type x11Injector struct {
	*x11.Backend
}

func (i *x11Injector) Status() Status {
	return Status{
		Backend: string(BackendX11),
		Bound:   i.Engine().BoundCount(),
		Held:    i.Engine().HeldCount(),
	}
}

// waylandInjector glues the wayland keyboard and mouse to one session.
type waylandInjector struct {
	*wayland.Keyboard
	*wayland.Mouse
	session *wayland.Session
}

func (w *waylandInjector) Status() Status {
	return Status{
		Backend: string(BackendWayland),
		Bound:   w.Keyboard.Engine().BoundCount(),
		Held:    w.Keyboard.Engine().HeldCount(),
	}
}

func (w *waylandInjector) Teardown() error {
	err := w.Keyboard.Teardown()
	return errors.Join(err, w.session.Close())
}
