// Package key defines the logical key values accepted by the input
// backends. A Key is one of three variants: a literal character, a named
// non-character key (Return, F5, modifiers, ...), or a raw protocol keycode
// that bypasses symbol translation entirely.
package key

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Key is a logical key request. Exactly one of the three concrete types
// below implements it.
type Key interface {
	fmt.Stringer
	isKey()
}

// Char is a literal character to type.
type Char rune

func (Char) isKey()           {}
func (c Char) String() string { return string(rune(c)) }

// Raw is a protocol-level keycode sent verbatim, skipping translation.
type Raw uint16

func (Raw) isKey()           {}
func (r Raw) String() string { return "raw:" + strconv.Itoa(int(r)) }

// Named is a non-character key identified by name.
type Named int

func (Named) isKey() {}

// Named key values. The set follows the common X11/Wayland keysym surface:
// modifiers, editing and navigation keys, function keys and a few
// locale/IME keys.
const (
	Return Named = iota
	Tab
	Space
	Backspace
	Delete
	Escape
	Insert
	Home
	End
	PageUp
	PageDown
	UpArrow
	DownArrow
	LeftArrow
	RightArrow
	Shift
	RShift
	Control
	RControl
	Alt
	RAlt
	Meta
	RMeta
	CapsLock
	NumLock
	ScrollLock
	PrintScreen
	Pause
	Menu
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24
	F25
	F26
	F27
	F28
	F29
	F30
	F31
	F32
	F33
	F34
	F35
	Hangul
	Hanja
	Kanji
	namedCount
)

var namedNames = map[Named]string{
	Return: "return", Tab: "tab", Space: "space", Backspace: "backspace",
	Delete: "delete", Escape: "escape", Insert: "insert", Home: "home",
	End: "end", PageUp: "pageup", PageDown: "pagedown",
	UpArrow: "up", DownArrow: "down", LeftArrow: "left", RightArrow: "right",
	Shift: "shift", RShift: "rshift", Control: "control", RControl: "rcontrol",
	Alt: "alt", RAlt: "ralt", Meta: "meta", RMeta: "rmeta",
	CapsLock: "capslock", NumLock: "numlock", ScrollLock: "scrolllock",
	PrintScreen: "printscreen", Pause: "pause", Menu: "menu",
	Hangul: "hangul", Hanja: "hanja", Kanji: "kanji",
}

func (n Named) String() string {
	if s, ok := namedNames[n]; ok {
		return s
	}
	if n >= F1 && n <= F35 {
		return "f" + strconv.Itoa(int(n-F1)+1)
	}
	return "named(" + strconv.Itoa(int(n)) + ")"
}

var namesToNamed = func() map[string]Named {
	m := make(map[string]Named, int(namedCount))
	for n := Named(0); n < namedCount; n++ {
		m[n.String()] = n
	}
	// Common aliases accepted on the CLI and the API.
	m["enter"] = Return
	m["esc"] = Escape
	m["ctrl"] = Control
	m["rctrl"] = RControl
	m["super"] = Meta
	m["win"] = Meta
	m["del"] = Delete
	return m
}()

// Parse converts a textual key description to a Key. It accepts a named key
// ("return", "f5", "ctrl"), a raw keycode ("raw:57"), or a single character.
func Parse(s string) (Key, error) {
	if s == "" {
		return nil, fmt.Errorf("empty key")
	}
	lower := strings.ToLower(s)
	if rest, ok := strings.CutPrefix(lower, "raw:"); ok {
		code, err := strconv.ParseUint(rest, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid raw keycode %q: %w", rest, err)
		}
		return Raw(code), nil
	}
	if n, ok := namesToNamed[lower]; ok {
		return n, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	}
	return nil, fmt.Errorf("unknown key %q", s)
}
