// Package x11 injects keyboard and mouse input through the XTest extension.
// Key symbols are bound to free keycode slots on demand via the shared
// keymap engine; each binding is applied with a ChangeKeyboardMapping
// request and confirmed with a sync round-trip before the fake key event
// referencing it is sent.
package x11

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"

	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/key"
	"github.com/quill-input/quill/keymap"
	"github.com/quill-input/quill/keysym"
)

// Backend is an XTest-based injector bound to one X11 connection. It is not
// safe for concurrent use; callers serialize access.
type Backend struct {
	conn   *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo
	engine *keymap.Engine
	logger *slog.Logger
}

// binder applies one symbol binding by rewriting the keycode's mapping.
// The two-entry group mirrors what servers expose for single-level keys.
type binder struct {
	conn *xgb.Conn
}

func (b *binder) BindKey(slot keymap.Keycode, sym keysym.Keysym) error {
	syms := []xproto.Keysym{xproto.Keysym(sym), xproto.Keysym(sym)}
	err := xproto.ChangeKeyboardMappingChecked(
		b.conn, 1, xproto.Keycode(slot), 2, syms).Check()
	if err != nil {
		return fmt.Errorf("%w: change keyboard mapping: %v", keymap.ErrTransport, err)
	}
	b.conn.Sync()
	return nil
}

// New connects to the X server named by display (or $DISPLAY when empty)
// and scans the keyboard mapping for unused keycode slots.
func New(display string, logger *slog.Logger) (*Backend, error) {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	if display == "" {
		return nil, fmt.Errorf("DISPLAY not set")
	}
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init xtest extension: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	min := keymap.Keycode(setup.MinKeycode)
	max := keymap.Keycode(setup.MaxKeycode)

	free, err := scanFreeKeycodes(conn, setup.MinKeycode, setup.MaxKeycode)
	if err != nil {
		conn.Close()
		return nil, err
	}
	logger.Debug("x11 keycode scan", "min", min, "max", max, "free", len(free))

	b := &Backend{
		conn:   conn,
		root:   screen.Root,
		screen: screen,
		logger: logger,
	}
	b.engine = keymap.NewEngine(min, max, free, &binder{conn: conn}, logger)
	return b, nil
}

// scanFreeKeycodes reads the current keyboard mapping and collects every
// keycode whose keysym chunk is all zero.
func scanFreeKeycodes(conn *xgb.Conn, min, max xproto.Keycode) ([]keymap.Keycode, error) {
	count := int(max) - int(min) + 1
	reply, err := xproto.GetKeyboardMapping(conn, min, byte(count)).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}
	width := int(reply.KeysymsPerKeycode)
	if width <= 0 {
		return nil, fmt.Errorf("invalid keysyms-per-keycode %d", width)
	}
	var free []keymap.Keycode
	for i := 0; i < count; i++ {
		chunk := reply.Keysyms[i*width : (i+1)*width]
		empty := true
		for _, sym := range chunk {
			if sym != 0 {
				empty = false
				break
			}
		}
		if empty {
			free = append(free, keymap.Keycode(int(min)+i))
		}
	}
	return free, nil
}

// Engine exposes the keycode allocation engine, mainly for status queries.
func (b *Backend) Engine() *keymap.Engine { return b.engine }

// Key presses, releases or clicks a logical key.
func (b *Backend) Key(k key.Key, dir input.Direction) error {
	kc, err := b.engine.Resolve(k)
	if err != nil {
		return err
	}
	switch dir {
	case input.Press:
		if err := b.sendKey(kc, true); err != nil {
			return err
		}
		b.engine.MarkHeld(k)
	case input.Release:
		if err := b.sendKey(kc, false); err != nil {
			return err
		}
		b.engine.MarkReleased(k)
	case input.Click:
		if err := b.sendKey(kc, true); err != nil {
			return err
		}
		if err := b.sendKey(kc, false); err != nil {
			return err
		}
	}
	return nil
}

// Text types a string one character at a time.
func (b *Backend) Text(s string) error {
	for _, r := range s {
		if r == '\r' {
			continue
		}
		if err := b.Key(key.Char(r), input.Click); err != nil {
			return fmt.Errorf("type %q: %w", r, err)
		}
	}
	return nil
}

// sendKey emits a fake key event. The engine's pending delay rides in the
// event time field, which XTest interprets as milliseconds to wait before
// processing.
func (b *Backend) sendKey(kc keymap.Keycode, pressed bool) error {
	evt := byte(xproto.KeyRelease)
	if pressed {
		evt = byte(xproto.KeyPress)
	}
	delay := uint32(b.engine.PendingDelay().Milliseconds())
	err := xtest.FakeInputChecked(
		b.conn, evt, byte(kc), delay, b.root, 0, 0, 0).Check()
	if err != nil {
		return fmt.Errorf("%w: fake key event: %v", keymap.ErrTransport, err)
	}
	b.conn.Sync()
	return nil
}

// Teardown releases everything still held, restores NoSymbol on every slot
// this backend bound and closes the connection. Call exactly once.
func (b *Backend) Teardown() error {
	err := b.engine.Teardown(func(kc keymap.Keycode, pressed bool) error {
		return b.sendKey(kc, pressed)
	})
	b.conn.Sync()
	b.conn.Close()
	return err
}
