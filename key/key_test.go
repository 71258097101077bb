package key_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-input/quill/key"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    key.Key
		wantErr bool
	}{
		{name: "named", in: "return", want: key.Return},
		{name: "named alias", in: "enter", want: key.Return},
		{name: "named uppercase", in: "Escape", want: key.Escape},
		{name: "function key", in: "f12", want: key.F12},
		{name: "high function key", in: "f35", want: key.F35},
		{name: "raw keycode", in: "raw:57", want: key.Raw(57)},
		{name: "single char", in: "a", want: key.Char('a')},
		{name: "unicode char", in: "é", want: key.Char('é')},
		{name: "empty", in: "", wantErr: true},
		{name: "multi char garbage", in: "notakey", wantErr: true},
		{name: "raw overflow", in: "raw:70000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := key.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamedString(t *testing.T) {
	assert.Equal(t, "f1", key.F1.String())
	assert.Equal(t, "f24", key.F24.String())
	assert.Equal(t, "shift", key.Shift.String())
	assert.Equal(t, "raw:8", key.Raw(8).String())
}
