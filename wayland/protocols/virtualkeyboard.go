// Package protocols contains thin wlturbo proxies for the unstable Wayland
// extensions Quill injects input through: zwp_virtual_keyboard_v1,
// zwlr_virtual_pointer_v1 and zwp_input_method_v2. Each type mirrors one
// protocol object; request methods marshal in declaration order per the
// protocol XML.
package protocols

import (
	"fmt"

	"github.com/bnema/wlturbo/wl"
)

// Global interface names advertised by the registry.
const (
	VirtualKeyboardManagerInterface = "zwp_virtual_keyboard_manager_v1"
	VirtualKeyboardInterface        = "zwp_virtual_keyboard_v1"
)

// KeymapFormatXKBv1 is the only keymap format the protocol defines.
const KeymapFormatXKBv1 = 1

// Key states for VirtualKeyboard.Key.
const (
	KeyStateReleased = 0
	KeyStatePressed  = 1
)

// VirtualKeyboardManager creates virtual keyboard devices for a seat.
type VirtualKeyboardManager struct {
	wl.BaseProxy
}

// NewVirtualKeyboardManager returns a manager proxy. Its object ID is
// assigned when the caller binds it through the registry.
func NewVirtualKeyboardManager(ctx *wl.Context) *VirtualKeyboardManager {
	m := &VirtualKeyboardManager{}
	m.SetContext(ctx)
	return m
}

// CreateVirtualKeyboard creates a virtual keyboard for the seat.
func (m *VirtualKeyboardManager) CreateVirtualKeyboard(seat *wl.Seat) (*VirtualKeyboard, error) {
	kbd := newVirtualKeyboard(m.Context())
	const opcode = 0
	if err := m.Context().SendRequest(m, opcode, seat, kbd); err != nil {
		m.Context().Unregister(kbd)
		return nil, fmt.Errorf("create_virtual_keyboard: %w", err)
	}
	return kbd, nil
}

// Destroy drops the manager proxy. The protocol has no destructor request.
func (m *VirtualKeyboardManager) Destroy() error {
	m.Context().Unregister(m)
	return nil
}

// Dispatch implements wl.Proxy; the manager has no events.
func (m *VirtualKeyboardManager) Dispatch(event *wl.Event) {}

// VirtualKeyboard is one virtual keyboard device.
type VirtualKeyboard struct {
	wl.BaseProxy
}

func newVirtualKeyboard(ctx *wl.Context) *VirtualKeyboard {
	kbd := &VirtualKeyboard{}
	kbd.SetContext(ctx)
	kbd.SetID(ctx.AllocateID())
	ctx.Register(kbd)
	return kbd
}

// Keymap uploads a keymap file. The compositor reads size bytes from fd;
// the buffer must stay null terminated and seeked to the start.
func (k *VirtualKeyboard) Keymap(format uint32, fd int, size uint32) error {
	const opcode = 0
	if fd < 0 {
		return fmt.Errorf("keymap: invalid file descriptor %d", fd)
	}
	return k.Context().SendRequestWithFDs(k, opcode, []int{fd}, format, uintptr(fd), size)
}

// Key sends a press or release for a raw evdev keycode (XKB keycode − 8).
func (k *VirtualKeyboard) Key(timeMs, keycode, state uint32) error {
	const opcode = 1
	return k.Context().SendRequest(k, opcode, timeMs, keycode, state)
}

// Modifiers pushes the full XKB modifier state.
func (k *VirtualKeyboard) Modifiers(depressed, latched, locked, group uint32) error {
	const opcode = 2
	return k.Context().SendRequest(k, opcode, depressed, latched, locked, group)
}

// Destroy destroys the device.
func (k *VirtualKeyboard) Destroy() error {
	const opcode = 3
	err := k.Context().SendRequest(k, opcode)
	k.Context().Unregister(k)
	return err
}

// Dispatch implements wl.Proxy; the keyboard has no events.
func (k *VirtualKeyboard) Dispatch(event *wl.Event) {}
