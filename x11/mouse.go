package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"

	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/keymap"
)

// X11 core button numbering: 1..3 are left/middle/right, 4..7 are scroll
// up/down/left/right, 8/9 are back/forward.
func buttonDetail(btn input.Button) (byte, error) {
	switch btn {
	case input.ButtonLeft:
		return 1, nil
	case input.ButtonMiddle:
		return 2, nil
	case input.ButtonRight:
		return 3, nil
	case input.ButtonBack:
		return 8, nil
	case input.ButtonForward:
		return 9, nil
	}
	return 0, fmt.Errorf("%w: button %v", keymap.ErrUnsupported, btn)
}

// Button presses, releases or clicks a mouse button.
func (b *Backend) Button(btn input.Button, dir input.Direction) error {
	detail, err := buttonDetail(btn)
	if err != nil {
		return err
	}
	switch dir {
	case input.Press:
		return b.sendButton(detail, true)
	case input.Release:
		return b.sendButton(detail, false)
	default:
		if err := b.sendButton(detail, true); err != nil {
			return err
		}
		return b.sendButton(detail, false)
	}
}

// Scroll emits one press/release pair per step. Positive amounts scroll
// down or right.
func (b *Backend) Scroll(axis input.Axis, amount int) error {
	var detail byte
	switch {
	case axis == input.AxisVertical && amount >= 0:
		detail = 5
	case axis == input.AxisVertical:
		detail = 4
	case axis == input.AxisHorizontal && amount >= 0:
		detail = 7
	default:
		detail = 6
	}
	steps := amount
	if steps < 0 {
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		if err := b.sendButton(detail, true); err != nil {
			return err
		}
		if err := b.sendButton(detail, false); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) sendButton(detail byte, pressed bool) error {
	evt := byte(xproto.ButtonRelease)
	if pressed {
		evt = byte(xproto.ButtonPress)
	}
	err := xtest.FakeInputChecked(
		b.conn, evt, detail, 0, b.root, 0, 0, 0).Check()
	if err != nil {
		return fmt.Errorf("%w: fake button event: %v", keymap.ErrTransport, err)
	}
	b.conn.Sync()
	return nil
}

// MoveRel moves the pointer relative to its current position.
func (b *Backend) MoveRel(dx, dy int) error {
	return b.sendMotion(dx, dy, true)
}

// MoveAbs moves the pointer to absolute root-window coordinates.
func (b *Backend) MoveAbs(x, y int) error {
	return b.sendMotion(x, y, false)
}

// The motion detail flag selects relative (1) or absolute (0) coordinates.
func (b *Backend) sendMotion(x, y int, relative bool) error {
	var detail byte
	if relative {
		detail = 1
	}
	err := xtest.FakeInputChecked(
		b.conn, byte(xproto.MotionNotify), detail, 0,
		xproto.Window(0), int16(x), int16(y), 0).Check()
	if err != nil {
		return fmt.Errorf("%w: fake motion event: %v", keymap.ErrTransport, err)
	}
	b.conn.Sync()
	return nil
}

// Location returns the pointer position in root-window coordinates.
func (b *Backend) Location() (x, y int, err error) {
	reply, err := xproto.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: query pointer: %v", keymap.ErrTransport, err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// DisplaySize returns the root screen dimensions in pixels.
func (b *Backend) DisplaySize() (w, h int, err error) {
	return int(b.screen.WidthInPixels), int(b.screen.HeightInPixels), nil
}
