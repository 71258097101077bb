// Package wayland injects keyboard and mouse input through the
// virtual-keyboard, virtual-pointer and input-method Wayland extensions.
// Bindings accumulate in the shared keymap engine; whenever the binding set
// changed, the whole layout is reserialized and uploaded to the compositor
// before the key event that depends on it.
package wayland

// Compositor is the set of operations the keyboard and mouse need from a
// Wayland session. Keeping the connection behind this interface keeps the
// engine logic testable without a compositor; Session is the real
// implementation.
type Compositor interface {
	// UploadKeymap transmits a serialized XKB keymap document.
	UploadKeymap(layout []byte) error
	// SendKey emits a key event for a raw evdev keycode.
	SendKey(timeMs, keycode uint32, pressed bool) error
	// SendModifiers pushes the full XKB modifier state.
	SendModifiers(depressed, latched, locked, group uint32) error
	// CommitText inserts text through the input method, when available.
	CommitText(text string) error

	// Motion, MotionAbsolute, Button, Axis and Frame drive the virtual
	// pointer; Frame commits the preceding events.
	Motion(timeMs uint32, dx, dy float64) error
	MotionAbsolute(timeMs, x, y, xExtent, yExtent uint32) error
	Button(timeMs, button uint32, pressed bool) error
	Axis(timeMs uint32, horizontal bool, value float64) error
	Frame() error

	// Roundtrip blocks until the compositor acknowledged everything sent.
	Roundtrip() error
	Close() error
}
