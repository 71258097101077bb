package keymap

import (
	"bytes"
	"fmt"
	"strings"
)

// The static parts of the XKB keymap document. Only the symbols block
// changes between regenerations; keycode names come from the xfree86
// include so <I{n}> resolves for the whole 8..255 range.
const (
	layoutHeader = `xkb_keymap {
	xkb_keycodes { include "xfree86+aliases(qwerty)" };
	xkb_types { include "complete" };
	xkb_compatibility { include "complete" };
	xkb_symbols {
`
	layoutFooter = `	};
};
`
)

// Layout serializes the current bindings into a full XKB keymap document.
// It returns (nil, false, nil) when nothing changed since the last call;
// otherwise it returns the document and clears the dirty flag. Two calls
// without an intervening bind or unbind therefore yield the buffer exactly
// once.
func (e *Engine) Layout() ([]byte, bool, error) {
	if !e.dirty {
		return nil, false, nil
	}
	var buf bytes.Buffer
	buf.WriteString(layoutHeader)
	for _, st := range e.Dump() {
		name := st.Sym.Name()
		if name == "" || strings.ContainsAny(name, " \t\n{}[]<>") {
			return nil, false, fmt.Errorf("%w: bad symbol name %q for slot %d",
				ErrSerialization, name, st.Slot)
		}
		fmt.Fprintf(&buf, "		key <I%d> { [ %s ] };\n", st.Slot, name)
	}
	buf.WriteString(layoutFooter)
	e.dirty = false
	return buf.Bytes(), true, nil
}
