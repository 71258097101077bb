package protocols

import (
	"fmt"

	"github.com/bnema/wlturbo/wl"
)

// Global interface names for the input method protocol.
const (
	InputMethodManagerInterface = "zwp_input_method_manager_v2"
	InputMethodInterface        = "zwp_input_method_v2"
)

// InputMethodManager hands out per-seat input method objects.
type InputMethodManager struct {
	wl.BaseProxy
}

// NewInputMethodManager returns a manager proxy. Its object ID is assigned
// when the caller binds it through the registry.
func NewInputMethodManager(ctx *wl.Context) *InputMethodManager {
	m := &InputMethodManager{}
	m.SetContext(ctx)
	return m
}

// GetInputMethod requests the input method for a seat. The compositor
// grants at most one per seat; a second request yields an unavailable one.
func (m *InputMethodManager) GetInputMethod(seat *wl.Seat) (*InputMethod, error) {
	im := &InputMethod{}
	ctx := m.Context()
	im.SetContext(ctx)
	im.SetID(ctx.AllocateID())
	ctx.Register(im)

	const opcode = 0
	if err := ctx.SendRequest(m, opcode, seat, im); err != nil {
		ctx.Unregister(im)
		return nil, fmt.Errorf("get_input_method: %w", err)
	}
	return im, nil
}

// Destroy destroys the manager.
func (m *InputMethodManager) Destroy() error {
	const opcode = 1
	err := m.Context().SendRequest(m, opcode)
	m.Context().Unregister(m)
	return err
}

// Dispatch implements wl.Proxy; the manager has no events.
func (m *InputMethodManager) Dispatch(event *wl.Event) {}

// InputMethod commits text directly into the focused client, skipping
// per-key simulation entirely.
type InputMethod struct {
	wl.BaseProxy
}

// CommitString queues text to insert at the cursor.
func (im *InputMethod) CommitString(text string) error {
	const opcode = 0
	return im.Context().SendRequest(im, opcode, text)
}

// Commit applies all queued state changes. The serial must count the done
// events received so far.
func (im *InputMethod) Commit(serial uint32) error {
	const opcode = 3
	return im.Context().SendRequest(im, opcode, serial)
}

// Destroy destroys the input method.
func (im *InputMethod) Destroy() error {
	const opcode = 6
	err := im.Context().SendRequest(im, opcode)
	im.Context().Unregister(im)
	return err
}

// Dispatch implements wl.Proxy. Activation state events are ignored; Quill
// only pushes text.
func (im *InputMethod) Dispatch(event *wl.Event) {}
