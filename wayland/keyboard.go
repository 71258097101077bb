package wayland

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/key"
	"github.com/quill-input/quill/keymap"
	"github.com/quill-input/quill/keysym"
)

// XKB modifier bitmask values.
const (
	modShift   = 0x1
	modLock    = 0x2
	modControl = 0x4
	modAlt     = 0x8  // Mod1
	modNum     = 0x10 // Mod2
	modMeta    = 0x40 // Mod4
	modAltGr   = 0x80 // Mod5
)

// The virtual keyboard speaks evdev keycodes, which sit 8 below the XKB
// keycodes the engine allocates.
const evdevOffset = 8

// Keyboard injects key events through a Wayland compositor.
// Not safe for concurrent use.
type Keyboard struct {
	comp   Compositor
	engine *keymap.Engine
	logger *slog.Logger
	start  time.Time
	mods   uint32
}

// The engine's binder is a no-op here: a binding only becomes real when the
// regenerated layout is uploaded, which Key does before the dependent
// event.
type nopBinder struct{}

func (nopBinder) BindKey(keymap.Keycode, keysym.Keysym) error { return nil }

// NewKeyboard builds a keyboard over an established session. The whole
// 8..255 slot range starts free because the uploaded layout begins empty.
func NewKeyboard(comp Compositor, logger *slog.Logger) *Keyboard {
	free := make([]keymap.Keycode, 0, 248)
	for kc := keymap.Keycode(8); kc <= 255; kc++ {
		free = append(free, kc)
	}
	return &Keyboard{
		comp:   comp,
		engine: keymap.NewEngine(8, 255, free, nopBinder{}, logger),
		logger: logger,
		start:  time.Now(),
	}
}

// Engine exposes the ledger for introspection (status API, tests).
func (kb *Keyboard) Engine() *keymap.Engine { return kb.engine }

func (kb *Keyboard) now() uint32 {
	return uint32(time.Since(kb.start).Milliseconds())
}

// flushLayout uploads a regenerated keymap if the binding set changed, and
// waits for the compositor to acknowledge it. The ordering matters: a key
// event referencing a binding the compositor has not seen is interpreted
// against a stale layout.
func (kb *Keyboard) flushLayout() error {
	layout, changed, err := kb.engine.Layout()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := kb.comp.UploadKeymap(layout); err != nil {
		return fmt.Errorf("%w: upload keymap: %v", keymap.ErrTransport, err)
	}
	return kb.comp.Roundtrip()
}

// modifierBit returns the XKB modifier bit for a named modifier key, or 0.
func modifierBit(k key.Key) uint32 {
	n, ok := k.(key.Named)
	if !ok {
		return 0
	}
	switch n {
	case key.Shift, key.RShift:
		return modShift
	case key.CapsLock:
		return modLock
	case key.Control, key.RControl:
		return modControl
	case key.Alt:
		return modAlt
	case key.RAlt:
		return modAltGr
	case key.NumLock:
		return modNum
	case key.Meta, key.RMeta:
		return modMeta
	}
	return 0
}

// Key presses, releases or clicks a logical key. Modifier keys update the
// compositor's modifier state instead of producing key events.
func (kb *Keyboard) Key(k key.Key, dir input.Direction) error {
	if bit := modifierBit(k); bit != 0 {
		return kb.modifier(bit, dir)
	}
	kc, err := kb.engine.Resolve(k)
	if err != nil {
		return err
	}
	if err := kb.flushLayout(); err != nil {
		return err
	}
	if d := kb.engine.PendingDelay(); d > 0 {
		time.Sleep(d)
	}
	switch dir {
	case input.Press:
		if err := kb.sendKey(kc, true); err != nil {
			return err
		}
		kb.engine.MarkHeld(k)
	case input.Release:
		if err := kb.sendKey(kc, false); err != nil {
			return err
		}
		kb.engine.MarkReleased(k)
	case input.Click:
		if err := kb.sendKey(kc, true); err != nil {
			return err
		}
		if err := kb.sendKey(kc, false); err != nil {
			return err
		}
	}
	return kb.comp.Roundtrip()
}

func (kb *Keyboard) modifier(bit uint32, dir input.Direction) error {
	switch dir {
	case input.Press:
		kb.mods |= bit
	case input.Release:
		kb.mods &^= bit
	case input.Click:
		if err := kb.comp.SendModifiers(kb.mods|bit, 0, 0, 0); err != nil {
			return fmt.Errorf("%w: modifiers: %v", keymap.ErrTransport, err)
		}
		kb.mods &^= bit
	}
	if err := kb.comp.SendModifiers(kb.mods, 0, 0, 0); err != nil {
		return fmt.Errorf("%w: modifiers: %v", keymap.ErrTransport, err)
	}
	return kb.comp.Roundtrip()
}

func (kb *Keyboard) sendKey(kc keymap.Keycode, pressed bool) error {
	if err := kb.comp.SendKey(kb.now(), uint32(kc)-evdevOffset, pressed); err != nil {
		return fmt.Errorf("%w: key event: %v", keymap.ErrTransport, err)
	}
	return nil
}

// Text types a string. When the compositor grants an input method, the
// whole string is committed in one request; otherwise it falls back to
// per-character key simulation.
func (kb *Keyboard) Text(s string) error {
	err := kb.comp.CommitText(s)
	if err == nil {
		return kb.comp.Roundtrip()
	}
	if !errors.Is(err, keymap.ErrUnsupported) {
		return fmt.Errorf("%w: commit text: %v", keymap.ErrTransport, err)
	}
	for _, r := range s {
		if r == '\r' {
			continue
		}
		if err := kb.Key(key.Char(r), input.Click); err != nil {
			return fmt.Errorf("type %q: %w", r, err)
		}
	}
	return nil
}

// Teardown releases held keys, clears modifier state and unbinds every
// slot. Call exactly once; the session itself is closed by the caller.
func (kb *Keyboard) Teardown() error {
	err := kb.engine.Teardown(func(kc keymap.Keycode, pressed bool) error {
		return kb.sendKey(kc, pressed)
	})
	if kb.mods != 0 {
		kb.mods = 0
		if merr := kb.comp.SendModifiers(0, 0, 0, 0); merr != nil {
			err = errors.Join(err, merr)
		}
	}
	// The now-empty layout is not uploaded; the device is about to be
	// destroyed with the session.
	return errors.Join(err, kb.comp.Roundtrip())
}
