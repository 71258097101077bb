package keysym_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-input/quill/key"
	"github.com/quill-input/quill/keysym"
)

func TestFromChar(t *testing.T) {
	tests := []struct {
		name string
		in   rune
		want keysym.Keysym
	}{
		{name: "newline maps to Return", in: '\n', want: keysym.SymReturn},
		{name: "tab maps to Tab", in: '\t', want: keysym.SymTab},
		{name: "latin1 is identity", in: 'a', want: 0x61},
		{name: "latin1 upper", in: 'A', want: 0x41},
		{name: "unicode plane", in: '€', want: 0x01000000 | 0x20ac},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keysym.FromChar(tt.in))
		})
	}
}

func TestFromCharCaseDistinct(t *testing.T) {
	assert.NotEqual(t, keysym.FromChar('a'), keysym.FromChar('A'))
}

func TestFromKey(t *testing.T) {
	sym, err := keysym.FromKey(key.Return)
	assert.NoError(t, err)
	assert.Equal(t, keysym.SymReturn, sym)

	sym, err = keysym.FromKey(key.F12)
	assert.NoError(t, err)
	assert.Equal(t, keysym.SymF1+11, sym)

	sym, err = keysym.FromKey(key.Char('x'))
	assert.NoError(t, err)
	assert.Equal(t, keysym.Keysym('x'), sym)

	_, err = keysym.FromKey(key.Raw(30))
	assert.ErrorIs(t, err, keysym.ErrNoSymbol)
}

func TestName(t *testing.T) {
	assert.Equal(t, "Return", keysym.SymReturn.Name())
	assert.Equal(t, "F5", (keysym.SymF1 + 4).Name())
	assert.Equal(t, "U0061", keysym.FromChar('a').Name())
	assert.Equal(t, "U20AC", keysym.FromChar('€').Name())
	assert.Equal(t, "Prior", keysym.SymPageUp.Name())
}
