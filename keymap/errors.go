package keymap

import "errors"

// Error taxonomy shared by both backends. All engine operations return one
// of these (possibly wrapped); nothing is retried internally because
// retrying a half-applied mapping change risks protocol desync.
var (
	// ErrUnsupported marks an operation on a key that has no symbol
	// representation, e.g. translating a raw keycode.
	ErrUnsupported = errors.New("operation not supported for this key")

	// ErrAllocationFailed marks a bind attempt with no free slot. The
	// caller must make room first.
	ErrAllocationFailed = errors.New("no free keycode slot")

	// ErrExhausted marks the hard failure where every bound slot backs a
	// held key and no room can be made.
	ErrExhausted = errors.New("all keycode slots are bound to held keys")

	// ErrSerialization marks a layout that could not be serialized.
	ErrSerialization = errors.New("keymap layout serialization failed")

	// ErrTransport wraps failures from the display-server connection.
	ErrTransport = errors.New("display server transport failure")
)
