package handler_test

import (
	"fmt"

	"github.com/quill-input/quill"
	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/key"
	"github.com/quill-input/quill/keymap"
)

// fakeInjector records every injected action so tests can assert on what a
// handler asked the backend to do.
type fakeInjector struct {
	typed   []string
	keys    []string
	buttons []string
	moves   []string
	scrolls []string
	x, y    int
	noLoc   bool
	failAll error
}

func (f *fakeInjector) Key(k key.Key, dir input.Direction) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.keys = append(f.keys, fmt.Sprintf("%s:%s", k, dir))
	return nil
}

func (f *fakeInjector) Text(s string) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.typed = append(f.typed, s)
	return nil
}

func (f *fakeInjector) Button(btn input.Button, dir input.Direction) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.buttons = append(f.buttons, fmt.Sprintf("%s:%s", btn, dir))
	return nil
}

func (f *fakeInjector) MoveRel(dx, dy int) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.x += dx
	f.y += dy
	f.moves = append(f.moves, fmt.Sprintf("rel:%d,%d", dx, dy))
	return nil
}

func (f *fakeInjector) MoveAbs(x, y int) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.x, f.y = x, y
	f.moves = append(f.moves, fmt.Sprintf("abs:%d,%d", x, y))
	return nil
}

func (f *fakeInjector) Scroll(axis input.Axis, amount int) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.scrolls = append(f.scrolls, fmt.Sprintf("%d:%d", axis, amount))
	return nil
}

func (f *fakeInjector) Location() (int, int, error) {
	if f.noLoc {
		return 0, 0, fmt.Errorf("%w: pointer location", keymap.ErrUnsupported)
	}
	return f.x, f.y, nil
}

func (f *fakeInjector) DisplaySize() (int, int, error) { return 1920, 1080, nil }

func (f *fakeInjector) Status() quill.Status {
	return quill.Status{Backend: "fake", Bound: 3, Held: 1}
}

func (f *fakeInjector) Teardown() error { return nil }
