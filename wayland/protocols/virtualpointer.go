package protocols

import (
	"fmt"

	"github.com/bnema/wlturbo/wl"
)

// Global interface names for the wlroots virtual pointer protocol.
const (
	VirtualPointerManagerInterface = "zwlr_virtual_pointer_manager_v1"
	VirtualPointerInterface        = "zwlr_virtual_pointer_v1"
)

// Button states for VirtualPointer.Button.
const (
	ButtonStateReleased = 0
	ButtonStatePressed  = 1
)

// Axis identifiers for VirtualPointer.Axis.
const (
	AxisVerticalScroll   = 0
	AxisHorizontalScroll = 1
)

// AxisSourceWheel marks scroll events as coming from a wheel.
const AxisSourceWheel = 0

// Fixed converts a value to the wire's 24.8 fixed point representation.
func Fixed(v float64) int32 { return int32(v * 256) }

// VirtualPointerManager creates virtual pointer devices.
type VirtualPointerManager struct {
	wl.BaseProxy
}

// NewVirtualPointerManager returns a manager proxy. Its object ID is
// assigned when the caller binds it through the registry.
func NewVirtualPointerManager(ctx *wl.Context) *VirtualPointerManager {
	m := &VirtualPointerManager{}
	m.SetContext(ctx)
	return m
}

// CreateVirtualPointer creates a virtual pointer for the seat.
func (m *VirtualPointerManager) CreateVirtualPointer(seat *wl.Seat) (*VirtualPointer, error) {
	ptr := &VirtualPointer{}
	ctx := m.Context()
	ptr.SetContext(ctx)
	ptr.SetID(ctx.AllocateID())
	ctx.Register(ptr)

	const opcode = 0
	if err := ctx.SendRequest(m, opcode, seat, ptr); err != nil {
		ctx.Unregister(ptr)
		return nil, fmt.Errorf("create_virtual_pointer: %w", err)
	}
	return ptr, nil
}

// Destroy destroys the manager.
func (m *VirtualPointerManager) Destroy() error {
	const opcode = 1
	err := m.Context().SendRequest(m, opcode)
	m.Context().Unregister(m)
	return err
}

// Dispatch implements wl.Proxy; the manager has no events.
func (m *VirtualPointerManager) Dispatch(event *wl.Event) {}

// VirtualPointer is one virtual pointer device. Events take effect when a
// Frame is sent.
type VirtualPointer struct {
	wl.BaseProxy
}

// Motion moves the pointer relative to its current position.
func (p *VirtualPointer) Motion(timeMs uint32, dx, dy float64) error {
	const opcode = 0
	return p.Context().SendRequest(p, opcode, timeMs, Fixed(dx), Fixed(dy))
}

// MotionAbsolute positions the pointer within an extent-sized grid.
func (p *VirtualPointer) MotionAbsolute(timeMs, x, y, xExtent, yExtent uint32) error {
	const opcode = 1
	return p.Context().SendRequest(p, opcode, timeMs, x, y, xExtent, yExtent)
}

// Button sends a press or release for a Linux input button code.
func (p *VirtualPointer) Button(timeMs, button, state uint32) error {
	const opcode = 2
	return p.Context().SendRequest(p, opcode, timeMs, button, state)
}

// Axis sends a scroll step on the given axis.
func (p *VirtualPointer) Axis(timeMs uint32, axis uint32, value float64) error {
	const opcode = 3
	return p.Context().SendRequest(p, opcode, timeMs, axis, Fixed(value))
}

// Frame commits the pending pointer events as one logical frame.
func (p *VirtualPointer) Frame() error {
	const opcode = 4
	return p.Context().SendRequest(p, opcode)
}

// AxisSource sets the source for subsequent axis events in this frame.
func (p *VirtualPointer) AxisSource(source uint32) error {
	const opcode = 5
	return p.Context().SendRequest(p, opcode, source)
}

// Destroy destroys the device.
func (p *VirtualPointer) Destroy() error {
	const opcode = 8
	err := p.Context().SendRequest(p, opcode)
	p.Context().Unregister(p)
	return err
}

// Dispatch implements wl.Proxy; the pointer has no events.
func (p *VirtualPointer) Dispatch(event *wl.Event) {}
