// Package keymap implements the keycode allocation engine shared by the X11
// and Wayland backends. A display server exposes a bounded range of keycode
// slots (typically 8..255); typing arbitrary text requires binding keysyms
// to free slots on demand, evicting unheld bindings under pressure and
// regenerating the layout description the server sees.
//
// The engine is single threaded by design. Callers that share one engine
// across goroutines must serialize access themselves.
package keymap

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/quill-input/quill/key"
	"github.com/quill-input/quill/keysym"
)

// Keycode is a slot in the display server's keyboard mapping.
type Keycode uint16

// DefaultKeyDelay is the wait enforced between two events that reuse the
// same keycode. Sending the same keycode twice before the server processed
// the first event drops keystrokes.
const DefaultKeyDelay = 12 * time.Millisecond

// Binder applies a single symbol binding to the display server. The X11
// backend changes the mapping for one keycode; the Wayland backend records
// the change and uploads the whole regenerated layout later.
type Binder interface {
	BindKey(slot Keycode, sym keysym.Keysym) error
}

// SlotState describes one keycode slot for introspection.
type SlotState struct {
	Slot Keycode
	Sym  keysym.Keysym
	Held bool
}

// Engine owns the keycode ledger for one display-server connection.
type Engine struct {
	min, max Keycode
	unused   []Keycode                  // free slots, oldest freed first
	bindings map[keysym.Keysym]Keycode  // symbol -> slot
	slots    map[Keycode]keysym.Keysym  // slot -> symbol
	held     map[key.Key]keysym.Keysym  // pressed logical keys and their symbol
	dirty    bool

	binder Binder
	logger *slog.Logger

	keyDelay  time.Duration
	lastKeys  []Keycode
	lastEvent time.Time
	pending   time.Duration
}

// NewEngine creates an engine for the slot range [min, max] with the given
// initially free slots (in reuse order). The binder is consulted on every
// bind and unbind.
func NewEngine(min, max Keycode, free []Keycode, binder Binder, logger *slog.Logger) *Engine {
	return &Engine{
		min:      min,
		max:      max,
		unused:   slices.Clone(free),
		bindings: make(map[keysym.Keysym]Keycode),
		slots:    make(map[Keycode]keysym.Keysym),
		held:     make(map[key.Key]keysym.Keysym),
		binder:   binder,
		logger:   logger,
		keyDelay: DefaultKeyDelay,
	}
}

// Resolve answers "what keycode should I send for this logical key right
// now". Raw keycodes are returned verbatim. Symbol keys are translated,
// looked up, and bound to a free slot if needed, evicting unheld bindings
// when the free queue is empty.
func (e *Engine) Resolve(k key.Key) (Keycode, error) {
	if raw, ok := k.(key.Raw); ok {
		kc := Keycode(raw)
		e.noteUse(kc)
		return kc, nil
	}
	sym, err := keysym.FromKey(k)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if kc, ok := e.bindings[sym]; ok {
		e.noteUse(kc)
		return kc, nil
	}
	if len(e.unused) == 0 {
		if _, err := e.MakeRoom(); err != nil {
			return 0, err
		}
	}
	kc, err := e.bind(sym)
	if err != nil {
		return 0, err
	}
	e.noteUse(kc)
	return kc, nil
}

// bind pops the oldest free slot and records the binding.
func (e *Engine) bind(sym keysym.Keysym) (Keycode, error) {
	if len(e.unused) == 0 {
		return 0, ErrAllocationFailed
	}
	kc := e.unused[0]
	e.unused = e.unused[1:]
	if err := e.binder.BindKey(kc, sym); err != nil {
		e.unused = append([]Keycode{kc}, e.unused...)
		return 0, fmt.Errorf("bind %s to slot %d: %w", sym.Name(), kc, err)
	}
	e.bindings[sym] = kc
	e.slots[kc] = sym
	e.dirty = true
	e.logger.Debug("bound keysym", "sym", sym.Name(), "slot", kc)
	return kc, nil
}

// unbind frees the slot backing sym and appends it to the free queue.
// Unbinding a symbol that is not bound is a no-op.
func (e *Engine) unbind(sym keysym.Keysym) error {
	kc, ok := e.bindings[sym]
	if !ok {
		return nil
	}
	if err := e.binder.BindKey(kc, keysym.NoSymbol); err != nil {
		return fmt.Errorf("unbind slot %d: %w", kc, err)
	}
	delete(e.bindings, sym)
	delete(e.slots, kc)
	e.unused = append(e.unused, kc)
	e.dirty = true
	return nil
}

// MakeRoom evicts every binding that does not back a held key. It reports
// whether any slot was freed; with free slots already available it does
// nothing. When every bound slot backs a held key it fails with
// ErrExhausted.
func (e *Engine) MakeRoom() (bool, error) {
	if len(e.unused) > 0 {
		return false, nil
	}
	heldSyms := make(map[keysym.Keysym]bool, len(e.held))
	for _, sym := range e.held {
		heldSyms[sym] = true
	}
	var evict []keysym.Keysym
	for sym := range e.bindings {
		if !heldSyms[sym] {
			evict = append(evict, sym)
		}
	}
	if len(evict) == 0 {
		return false, ErrExhausted
	}
	for _, sym := range evict {
		if err := e.unbind(sym); err != nil {
			return false, err
		}
	}
	e.logger.Debug("evicted unheld bindings", "count", len(evict))
	return true, nil
}

// MarkHeld records a logical key as pressed. Its binding becomes immune to
// eviction until MarkReleased.
func (e *Engine) MarkHeld(k key.Key) {
	sym, err := keysym.FromKey(k)
	if err != nil {
		// Raw keycodes have no binding to protect.
		sym = keysym.NoSymbol
	}
	e.held[k] = sym
}

// MarkReleased records a logical key as no longer pressed.
func (e *Engine) MarkReleased(k key.Key) {
	delete(e.held, k)
}

// noteUse records delay bookkeeping for a resolved keycode. Reusing a
// keycode from the current batch schedules the remainder of the full key
// delay; a fresh keycode only needs a minimal gap and extends the batch.
func (e *Engine) noteUse(kc Keycode) {
	if slices.Contains(e.lastKeys, kc) {
		d := e.keyDelay - time.Since(e.lastEvent)
		if d < 0 {
			d = 0
		}
		e.pending = d
		e.lastKeys = e.lastKeys[:0]
	} else {
		e.pending = time.Millisecond
	}
	e.lastKeys = append(e.lastKeys, kc)
}

// PendingDelay consumes and returns the delay to apply before the next key
// event, and stamps the batch clock.
func (e *Engine) PendingDelay() time.Duration {
	d := e.pending
	e.pending = 0
	e.lastEvent = time.Now()
	return d
}

// Dirty reports whether the binding set changed since the last successful
// layout regeneration.
func (e *Engine) Dirty() bool { return e.dirty }

// Bounds returns the slot range the engine allocates from.
func (e *Engine) Bounds() (min, max Keycode) { return e.min, e.max }

// HeldCount returns the number of logical keys currently pressed.
func (e *Engine) HeldCount() int { return len(e.held) }

// BoundCount returns the number of live bindings.
func (e *Engine) BoundCount() int { return len(e.bindings) }

// Dump returns the current slot states sorted by keycode, for logging,
// tests and the status API.
func (e *Engine) Dump() []SlotState {
	heldSyms := make(map[keysym.Keysym]bool, len(e.held))
	for _, sym := range e.held {
		heldSyms[sym] = true
	}
	out := make([]SlotState, 0, len(e.slots))
	for kc, sym := range e.slots {
		out = append(out, SlotState{Slot: kc, Sym: sym, Held: heldSyms[sym]})
	}
	slices.SortFunc(out, func(a, b SlotState) int { return int(a.Slot) - int(b.Slot) })
	return out
}

// Teardown releases every held key through send, then unbinds everything.
// It must be called exactly once before the connection is discarded;
// skipping the releases would leave keys stuck down on the host.
func (e *Engine) Teardown(send func(Keycode, bool) error) error {
	var errs []error
	for k, sym := range e.held {
		kc, ok := e.bindings[sym]
		if !ok {
			if raw, isRaw := k.(key.Raw); isRaw {
				kc = Keycode(raw)
			} else {
				continue
			}
		}
		if err := send(kc, false); err != nil {
			errs = append(errs, fmt.Errorf("release slot %d: %w", kc, err))
		}
	}
	clear(e.held)
	for sym := range e.bindings {
		if err := e.unbind(sym); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
