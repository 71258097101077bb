package keymap_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-input/quill/key"
	"github.com/quill-input/quill/keymap"
	"github.com/quill-input/quill/keysym"
)

// recordingBinder captures every BindKey call so tests can assert on the
// exact sequence of mapping changes.
type recordingBinder struct {
	calls []bindCall
	fail  error
}

type bindCall struct {
	slot keymap.Keycode
	sym  keysym.Keysym
}

func (b *recordingBinder) BindKey(slot keymap.Keycode, sym keysym.Keysym) error {
	if b.fail != nil {
		return b.fail
	}
	b.calls = append(b.calls, bindCall{slot: slot, sym: sym})
	return nil
}

func freeRange(min, max keymap.Keycode) []keymap.Keycode {
	out := make([]keymap.Keycode, 0, max-min+1)
	for kc := min; kc <= max; kc++ {
		out = append(out, kc)
	}
	return out
}

func newTestEngine(free []keymap.Keycode) (*keymap.Engine, *recordingBinder) {
	b := &recordingBinder{}
	return keymap.NewEngine(8, 255, free, b, slog.Default()), b
}

func TestResolveAllocatesUniqueSlots(t *testing.T) {
	e, _ := newTestEngine(freeRange(8, 255))
	seen := map[keymap.Keycode]bool{}
	for r := rune(0x2600); r < 0x2600+100; r++ {
		kc, err := e.Resolve(key.Char(r))
		require.NoError(t, err)
		assert.False(t, seen[kc], "slot %d handed out twice", kc)
		seen[kc] = true
	}
	assert.Equal(t, 100, e.BoundCount())
}

func TestResolveReusesExistingBinding(t *testing.T) {
	e, b := newTestEngine(freeRange(8, 255))
	first, err := e.Resolve(key.Char('a'))
	require.NoError(t, err)
	second, err := e.Resolve(key.Char('a'))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, b.calls, 1)
}

func TestResolveRawBypassesTranslation(t *testing.T) {
	e, b := newTestEngine(freeRange(8, 255))
	kc, err := e.Resolve(key.Raw(42))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(42), kc)
	assert.Empty(t, b.calls)
	assert.Equal(t, 0, e.BoundCount())
}

func TestFreedSlotsReusedFIFO(t *testing.T) {
	e, _ := newTestEngine([]keymap.Keycode{10, 11, 12})
	a, err := e.Resolve(key.Char('a'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(10), a)
	b, err := e.Resolve(key.Char('b'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(11), b)
	c, err := e.Resolve(key.Char('c'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(12), c)

	// Exhaust and evict: nothing is held, so all three come back in the
	// order they were freed.
	d, err := e.Resolve(key.Char('d'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(10), d)
	ee, err := e.Resolve(key.Char('e'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(11), ee)
}

func TestMakeRoomSparesHeldKeys(t *testing.T) {
	e, _ := newTestEngine([]keymap.Keycode{8, 9})
	slotA, err := e.Resolve(key.Char('a'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(8), slotA)
	_, err = e.Resolve(key.Char('b'))
	require.NoError(t, err)
	e.MarkHeld(key.Char('a'))

	freed, err := e.MakeRoom()
	require.NoError(t, err)
	assert.True(t, freed)

	// 'a' survives with its slot, 'b' was evicted and rebinding it reuses
	// the freed slot 9.
	again, err := e.Resolve(key.Char('a'))
	require.NoError(t, err)
	assert.Equal(t, slotA, again)
	slotB, err := e.Resolve(key.Char('b'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(9), slotB)
}

func TestMakeRoomNoopWithFreeSlots(t *testing.T) {
	e, _ := newTestEngine([]keymap.Keycode{8, 9})
	freed, err := e.MakeRoom()
	require.NoError(t, err)
	assert.False(t, freed)
}

func TestExhaustionSurfacesTypedError(t *testing.T) {
	free := freeRange(8, 255)
	e, _ := newTestEngine(free)
	for i, kc := range free {
		k := key.Char(rune(0x4e00 + i))
		got, err := e.Resolve(k)
		require.NoError(t, err)
		assert.Equal(t, kc, got)
		e.MarkHeld(k)
	}
	_, err := e.Resolve(key.Char('☃'))
	assert.ErrorIs(t, err, keymap.ErrExhausted)
}

func TestHeldSlotStableUnderPressure(t *testing.T) {
	free := freeRange(8, 255)
	e, _ := newTestEngine(free)
	var heldSlot keymap.Keycode
	for i := range free {
		k := key.Char(rune(0x3000 + i))
		kc, err := e.Resolve(k)
		require.NoError(t, err)
		if i == 17 {
			heldSlot = kc
			e.MarkHeld(k)
		}
	}
	freed, err := e.MakeRoom()
	require.NoError(t, err)
	assert.True(t, freed)
	kc, err := e.Resolve(key.Char(rune(0x3000 + 17)))
	require.NoError(t, err)
	assert.Equal(t, heldSlot, kc)
}

func TestTeardownReleasesBeforeUnbinding(t *testing.T) {
	e, b := newTestEngine(freeRange(8, 255))
	for _, k := range []key.Key{key.Char('x'), key.Char('y'), key.Return} {
		_, err := e.Resolve(k)
		require.NoError(t, err)
		e.MarkHeld(k)
	}
	bindsBefore := len(b.calls)

	var releases int
	err := e.Teardown(func(kc keymap.Keycode, pressed bool) error {
		assert.False(t, pressed)
		// No unbind may have happened yet while releases are in flight.
		assert.Len(t, b.calls, bindsBefore)
		releases++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, releases)
	assert.Equal(t, 0, e.BoundCount())
	assert.Equal(t, 0, e.HeldCount())

	// Every teardown unbind wrote NoSymbol.
	for _, call := range b.calls[bindsBefore:] {
		assert.Equal(t, keysym.NoSymbol, call.sym)
	}
	assert.Len(t, b.calls, bindsBefore+3)
}

func TestBinderFailureLeavesSlotFree(t *testing.T) {
	b := &recordingBinder{fail: assert.AnError}
	e := keymap.NewEngine(8, 255, []keymap.Keycode{8}, b, slog.Default())
	_, err := e.Resolve(key.Char('a'))
	require.Error(t, err)
	assert.Equal(t, 0, e.BoundCount())

	// The slot is reusable once the binder recovers.
	b.fail = nil
	kc, err := e.Resolve(key.Char('a'))
	require.NoError(t, err)
	assert.Equal(t, keymap.Keycode(8), kc)
}

func TestDumpReflectsHeldState(t *testing.T) {
	e, _ := newTestEngine([]keymap.Keycode{8, 9})
	_, err := e.Resolve(key.Char('a'))
	require.NoError(t, err)
	_, err = e.Resolve(key.Char('b'))
	require.NoError(t, err)
	e.MarkHeld(key.Char('b'))

	dump := e.Dump()
	require.Len(t, dump, 2)
	assert.Equal(t, keymap.Keycode(8), dump[0].Slot)
	assert.False(t, dump[0].Held)
	assert.True(t, dump[1].Held)
}
