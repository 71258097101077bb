package wayland

import (
	"fmt"
	"time"

	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/keymap"
)

// Linux input event codes for pointer buttons.
const (
	btnLeft    = 0x110
	btnRight   = 0x111
	btnMiddle  = 0x112
	btnBack    = 0x116
	btnForward = 0x115
)

// Mouse injects pointer events through a Wayland compositor.
// Not safe for concurrent use.
type Mouse struct {
	comp  Compositor
	start time.Time
}

// NewMouse builds a mouse over an established session.
func NewMouse(comp Compositor) *Mouse {
	return &Mouse{comp: comp, start: time.Now()}
}

func (m *Mouse) now() uint32 {
	return uint32(time.Since(m.start).Milliseconds())
}

func buttonCode(btn input.Button) (uint32, error) {
	switch btn {
	case input.ButtonLeft:
		return btnLeft, nil
	case input.ButtonMiddle:
		return btnMiddle, nil
	case input.ButtonRight:
		return btnRight, nil
	case input.ButtonBack:
		return btnBack, nil
	case input.ButtonForward:
		return btnForward, nil
	}
	return 0, fmt.Errorf("%w: button %v", keymap.ErrUnsupported, btn)
}

// Button presses, releases or clicks a mouse button.
func (m *Mouse) Button(btn input.Button, dir input.Direction) error {
	code, err := buttonCode(btn)
	if err != nil {
		return err
	}
	press := func(pressed bool) error {
		if err := m.comp.Button(m.now(), code, pressed); err != nil {
			return fmt.Errorf("%w: button event: %v", keymap.ErrTransport, err)
		}
		return m.comp.Frame()
	}
	switch dir {
	case input.Press:
		if err := press(true); err != nil {
			return err
		}
	case input.Release:
		if err := press(false); err != nil {
			return err
		}
	default:
		if err := press(true); err != nil {
			return err
		}
		if err := press(false); err != nil {
			return err
		}
	}
	return m.comp.Roundtrip()
}

// MoveRel moves the pointer relative to its current position.
func (m *Mouse) MoveRel(dx, dy int) error {
	if err := m.comp.Motion(m.now(), float64(dx), float64(dy)); err != nil {
		return fmt.Errorf("%w: motion: %v", keymap.ErrTransport, err)
	}
	if err := m.comp.Frame(); err != nil {
		return err
	}
	return m.comp.Roundtrip()
}

// MoveAbs positions the pointer on a 65536-unit grid; compositors map it
// onto the output geometry.
func (m *Mouse) MoveAbs(x, y int) error {
	if err := m.comp.MotionAbsolute(m.now(), uint32(x), uint32(y), 65536, 65536); err != nil {
		return fmt.Errorf("%w: motion absolute: %v", keymap.ErrTransport, err)
	}
	if err := m.comp.Frame(); err != nil {
		return err
	}
	return m.comp.Roundtrip()
}

// Scroll emits axis steps; positive amounts scroll down or right.
func (m *Mouse) Scroll(axis input.Axis, amount int) error {
	horizontal := axis == input.AxisHorizontal
	if err := m.comp.Axis(m.now(), horizontal, float64(amount)); err != nil {
		return fmt.Errorf("%w: axis: %v", keymap.ErrTransport, err)
	}
	if err := m.comp.Frame(); err != nil {
		return err
	}
	return m.comp.Roundtrip()
}

// Location is unavailable on Wayland: the protocols here are write-only.
func (m *Mouse) Location() (int, int, error) {
	return 0, 0, fmt.Errorf("%w: pointer location on wayland", keymap.ErrUnsupported)
}

// DisplaySize is unavailable without an output-management protocol.
func (m *Mouse) DisplaySize() (int, int, error) {
	return 0, 0, fmt.Errorf("%w: display size on wayland", keymap.ErrUnsupported)
}
