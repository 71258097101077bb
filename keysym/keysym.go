// Package keysym maps logical keys to X11/XKB keysym values and back to the
// textual names used in XKB layout documents.
package keysym

import (
	"errors"
	"fmt"

	"github.com/quill-input/quill/key"
)

// Keysym is a protocol-level symbol identifier as defined by the X11
// keysym space. Wayland keymaps use the same values through XKB.
type Keysym uint32

// ErrNoSymbol is returned when a key has no symbol representation.
// Raw keycodes must bypass translation and be sent verbatim.
var ErrNoSymbol = errors.New("key has no symbol representation")

// NoSymbol unbinds a keycode slot when written to a keyboard mapping.
const NoSymbol Keysym = 0

// Selected keysym values from the X11 keysym definitions.
const (
	SymSpace       Keysym = 0x0020
	SymBackspace   Keysym = 0xff08
	SymTab         Keysym = 0xff09
	SymReturn      Keysym = 0xff0d
	SymPause       Keysym = 0xff13
	SymScrollLock  Keysym = 0xff14
	SymEscape      Keysym = 0xff1b
	SymKanji       Keysym = 0xff21
	SymHangul      Keysym = 0xff31
	SymHanja       Keysym = 0xff34
	SymHome        Keysym = 0xff50
	SymLeft        Keysym = 0xff51
	SymUp          Keysym = 0xff52
	SymRight       Keysym = 0xff53
	SymDown        Keysym = 0xff54
	SymPageUp      Keysym = 0xff55
	SymPageDown    Keysym = 0xff56
	SymEnd         Keysym = 0xff57
	SymPrint       Keysym = 0xff61
	SymInsert      Keysym = 0xff63
	SymMenu        Keysym = 0xff67
	SymNumLock     Keysym = 0xff7f
	SymF1          Keysym = 0xffbe
	SymShiftL      Keysym = 0xffe1
	SymShiftR      Keysym = 0xffe2
	SymControlL    Keysym = 0xffe3
	SymControlR    Keysym = 0xffe4
	SymCapsLock    Keysym = 0xffe5
	SymMetaL       Keysym = 0xffe7
	SymMetaR       Keysym = 0xffe8
	SymAltL        Keysym = 0xffe9
	SymAltR        Keysym = 0xffea
	SymSuperL      Keysym = 0xffeb
	SymSuperR      Keysym = 0xffec
	SymDelete      Keysym = 0xffff
	unicodeOffset  Keysym = 0x01000000
	unicodePattern Keysym = 0xff000000
)

var namedSyms = map[key.Named]Keysym{
	key.Return:      SymReturn,
	key.Tab:         SymTab,
	key.Space:       SymSpace,
	key.Backspace:   SymBackspace,
	key.Delete:      SymDelete,
	key.Escape:      SymEscape,
	key.Insert:      SymInsert,
	key.Home:        SymHome,
	key.End:         SymEnd,
	key.PageUp:      SymPageUp,
	key.PageDown:    SymPageDown,
	key.UpArrow:     SymUp,
	key.DownArrow:   SymDown,
	key.LeftArrow:   SymLeft,
	key.RightArrow:  SymRight,
	key.Shift:       SymShiftL,
	key.RShift:      SymShiftR,
	key.Control:     SymControlL,
	key.RControl:    SymControlR,
	key.Alt:         SymAltL,
	key.RAlt:        SymAltR,
	key.Meta:        SymSuperL,
	key.RMeta:       SymSuperR,
	key.CapsLock:    SymCapsLock,
	key.NumLock:     SymNumLock,
	key.ScrollLock:  SymScrollLock,
	key.PrintScreen: SymPrint,
	key.Pause:       SymPause,
	key.Menu:        SymMenu,
	key.Hangul:      SymHangul,
	key.Hanja:       SymHanja,
	key.Kanji:       SymKanji,
}

// FromChar translates a literal character. Newline and tab resolve to the
// Return and Tab keysyms; code-point derived names do not reach the right
// symbol for them. Latin-1 characters are their own keysym value, everything
// else lives in the Unicode keysym plane.
func FromChar(r rune) Keysym {
	switch r {
	case '\n':
		return SymReturn
	case '\t':
		return SymTab
	}
	if r < 0x100 {
		return Keysym(r)
	}
	return unicodeOffset | Keysym(r)
}

// FromKey translates a logical key to its keysym. Raw keycodes fail with
// ErrNoSymbol. An unrecognized named key is a programming error in the
// table above.
func FromKey(k key.Key) (Keysym, error) {
	switch v := k.(type) {
	case key.Char:
		return FromChar(rune(v)), nil
	case key.Raw:
		return NoSymbol, fmt.Errorf("%w: %s", ErrNoSymbol, v)
	case key.Named:
		if s, ok := namedSyms[v]; ok {
			return s, nil
		}
		if v >= key.F1 && v <= key.F35 {
			return SymF1 + Keysym(v-key.F1), nil
		}
		panic(fmt.Sprintf("keysym: named key %v missing from table", v))
	default:
		panic(fmt.Sprintf("keysym: unknown key variant %T", k))
	}
}

var symNames = func() map[Keysym]string {
	m := map[Keysym]string{
		SymSpace: "space", SymBackspace: "BackSpace", SymTab: "Tab",
		SymReturn: "Return", SymPause: "Pause", SymScrollLock: "Scroll_Lock",
		SymEscape: "Escape", SymKanji: "Kanji", SymHangul: "Hangul",
		SymHanja: "Hangul_Hanja", SymHome: "Home", SymLeft: "Left",
		SymUp: "Up", SymRight: "Right", SymDown: "Down", SymPageUp: "Prior",
		SymPageDown: "Next", SymEnd: "End", SymPrint: "Print",
		SymInsert: "Insert", SymMenu: "Menu", SymNumLock: "Num_Lock",
		SymShiftL: "Shift_L", SymShiftR: "Shift_R",
		SymControlL: "Control_L", SymControlR: "Control_R",
		SymCapsLock: "Caps_Lock", SymMetaL: "Meta_L", SymMetaR: "Meta_R",
		SymAltL: "Alt_L", SymAltR: "Alt_R",
		SymSuperL: "Super_L", SymSuperR: "Super_R", SymDelete: "Delete",
	}
	for i := Keysym(0); i < 35; i++ {
		m[SymF1+i] = fmt.Sprintf("F%d", i+1)
	}
	return m
}()

// Name returns the XKB symbol name for a keysym, as accepted inside an
// xkb_symbols block. Unicode-plane and Latin-1 symbols use the U<codepoint>
// form; anything else falls back to a hexadecimal literal.
func (s Keysym) Name() string {
	if n, ok := symNames[s]; ok {
		return n
	}
	if s&unicodePattern == unicodeOffset {
		return fmt.Sprintf("U%04X", uint32(s&^unicodePattern))
	}
	if s >= 0x20 && s < 0x100 {
		return fmt.Sprintf("U%04X", uint32(s))
	}
	return fmt.Sprintf("0x%08x", uint32(s))
}
