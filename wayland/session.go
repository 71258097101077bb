package wayland

import (
	"fmt"
	"log/slog"

	"github.com/bnema/wlturbo/wl"
	"golang.org/x/sys/unix"

	"github.com/quill-input/quill/keymap"
	"github.com/quill-input/quill/wayland/protocols"
)

// Session is the live compositor connection: display, seat and the bound
// virtual devices. It implements Compositor.
type Session struct {
	display  *wl.Display
	ctx      *wl.Context
	registry *wl.Registry
	seat     *wl.Seat
	logger   *slog.Logger

	kbdMgr *protocols.VirtualKeyboardManager
	ptrMgr *protocols.VirtualPointerManager
	imMgr  *protocols.InputMethodManager

	kbd *protocols.VirtualKeyboard
	ptr *protocols.VirtualPointer
	im  *protocols.InputMethod

	imSerial uint32
}

// Connect dials the compositor named by $WAYLAND_DISPLAY, binds the seat
// and the virtual input globals and creates the devices. The input method
// is optional; everything else is required.
func Connect(logger *slog.Logger) (*Session, error) {
	display, err := wl.Connect("")
	if err != nil {
		return nil, fmt.Errorf("connect to wayland display: %w", err)
	}
	s := &Session{
		display: display,
		ctx:     display.Context(),
		logger:  logger,
	}
	registry := display.GetRegistry()
	s.registry = registry
	registry.AddGlobalHandler(s)
	if err := display.Roundtrip(); err != nil {
		s.Close()
		return nil, fmt.Errorf("registry roundtrip: %w", err)
	}

	if s.seat == nil {
		s.Close()
		return nil, fmt.Errorf("compositor advertises no wl_seat")
	}
	if s.kbdMgr == nil {
		s.Close()
		return nil, fmt.Errorf("compositor does not support %s", protocols.VirtualKeyboardManagerInterface)
	}
	if s.ptrMgr == nil {
		s.Close()
		return nil, fmt.Errorf("compositor does not support %s", protocols.VirtualPointerManagerInterface)
	}
	if s.imMgr == nil {
		logger.Debug("input method protocol unavailable, text falls back to key simulation")
	}

	if s.kbd, err = s.kbdMgr.CreateVirtualKeyboard(s.seat); err != nil {
		s.Close()
		return nil, err
	}
	if s.ptr, err = s.ptrMgr.CreateVirtualPointer(s.seat); err != nil {
		s.Close()
		return nil, err
	}
	if s.imMgr != nil {
		if s.im, err = s.imMgr.GetInputMethod(s.seat); err != nil {
			logger.Warn("input method unavailable", "error", err)
			s.im = nil
		}
	}

	// An initial empty keymap must be on file before key events.
	if err := s.UploadKeymap(emptyLayout()); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.Roundtrip(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func emptyLayout() []byte {
	return []byte(`xkb_keymap {
	xkb_keycodes { include "xfree86+aliases(qwerty)" };
	xkb_types { include "complete" };
	xkb_compatibility { include "complete" };
	xkb_symbols {
	};
};
`)
}

// HandleRegistryGlobal binds the globals Quill needs as the registry
// announces them.
func (s *Session) HandleRegistryGlobal(ev wl.RegistryGlobalEvent) {
	switch ev.Interface {
	case "wl_seat":
		seat := wl.NewSeat(s.ctx)
		if err := s.registry.Bind(ev.Name, ev.Interface, ev.Version, seat); err == nil {
			s.seat = seat
		}
	case protocols.VirtualKeyboardManagerInterface:
		mgr := protocols.NewVirtualKeyboardManager(s.ctx)
		if err := s.registry.Bind(ev.Name, ev.Interface, ev.Version, mgr); err == nil {
			s.kbdMgr = mgr
		}
	case protocols.VirtualPointerManagerInterface:
		mgr := protocols.NewVirtualPointerManager(s.ctx)
		if err := s.registry.Bind(ev.Name, ev.Interface, ev.Version, mgr); err == nil {
			s.ptrMgr = mgr
		}
	case protocols.InputMethodManagerInterface:
		mgr := protocols.NewInputMethodManager(s.ctx)
		if err := s.registry.Bind(ev.Name, ev.Interface, ev.Version, mgr); err == nil {
			s.imMgr = mgr
		}
	}
}

// UploadKeymap copies the layout into an anonymous shared file and hands
// the descriptor to the virtual keyboard.
func (s *Session) UploadKeymap(layout []byte) error {
	size := len(layout) + 1 // null terminator
	fd, err := wl.CreateAnonymousFile(int64(size))
	if err != nil {
		return fmt.Errorf("create keymap file: %w", err)
	}
	defer unix.Close(fd)

	data, err := wl.MapMemory(fd, size)
	if err != nil {
		return fmt.Errorf("map keymap file: %w", err)
	}
	copy(data, layout)
	data[len(layout)] = 0
	if err := wl.UnmapMemory(data); err != nil {
		return fmt.Errorf("unmap keymap file: %w", err)
	}
	if _, err := unix.Seek(fd, 0, 0); err != nil {
		return fmt.Errorf("rewind keymap file: %w", err)
	}
	return s.kbd.Keymap(protocols.KeymapFormatXKBv1, fd, uint32(size))
}

func (s *Session) SendKey(timeMs, keycode uint32, pressed bool) error {
	state := uint32(protocols.KeyStateReleased)
	if pressed {
		state = protocols.KeyStatePressed
	}
	return s.kbd.Key(timeMs, keycode, state)
}

func (s *Session) SendModifiers(depressed, latched, locked, group uint32) error {
	return s.kbd.Modifiers(depressed, latched, locked, group)
}

// CommitText pushes text through the input method. Fails with
// keymap.ErrUnsupported when the compositor granted none.
func (s *Session) CommitText(text string) error {
	if s.im == nil {
		return fmt.Errorf("%w: no input method", keymap.ErrUnsupported)
	}
	if err := s.im.CommitString(text); err != nil {
		return err
	}
	s.imSerial++
	return s.im.Commit(s.imSerial)
}

func (s *Session) Motion(timeMs uint32, dx, dy float64) error {
	return s.ptr.Motion(timeMs, dx, dy)
}

func (s *Session) MotionAbsolute(timeMs, x, y, xExtent, yExtent uint32) error {
	return s.ptr.MotionAbsolute(timeMs, x, y, xExtent, yExtent)
}

func (s *Session) Button(timeMs, button uint32, pressed bool) error {
	state := uint32(protocols.ButtonStateReleased)
	if pressed {
		state = protocols.ButtonStatePressed
	}
	return s.ptr.Button(timeMs, button, state)
}

func (s *Session) Axis(timeMs uint32, horizontal bool, value float64) error {
	axis := uint32(protocols.AxisVerticalScroll)
	if horizontal {
		axis = protocols.AxisHorizontalScroll
	}
	if err := s.ptr.AxisSource(protocols.AxisSourceWheel); err != nil {
		return err
	}
	return s.ptr.Axis(timeMs, axis, value)
}

func (s *Session) Frame() error { return s.ptr.Frame() }

// Roundtrip blocks until the compositor acknowledged all prior requests.
func (s *Session) Roundtrip() error { return s.display.Roundtrip() }

// Close destroys the devices and the connection. Safe on a partially
// constructed session.
func (s *Session) Close() error {
	if s.im != nil {
		_ = s.im.Destroy()
	}
	if s.ptr != nil {
		_ = s.ptr.Destroy()
	}
	if s.kbd != nil {
		_ = s.kbd.Destroy()
	}
	if s.imMgr != nil {
		_ = s.imMgr.Destroy()
	}
	if s.ptrMgr != nil {
		_ = s.ptrMgr.Destroy()
	}
	if s.kbdMgr != nil {
		_ = s.kbdMgr.Destroy()
	}
	if s.display != nil {
		return s.display.Close()
	}
	return nil
}
