// Package input holds the small value types shared by the keyboard and
// mouse backends.
package input

import "fmt"

// Direction selects the phase of a key or button action.
type Direction int

const (
	// Press pushes and keeps the key or button down.
	Press Direction = iota
	// Release lets a previously pressed key or button go.
	Release
	// Click is a press immediately followed by a release.
	Click
)

// ParseDirection converts the textual form used by the CLI and the API.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "press":
		return Press, nil
	case "release":
		return Release, nil
	case "click", "":
		return Click, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	switch d {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "click"
	}
}

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonBack
	ButtonForward
)

// ParseButton converts the textual form used by the CLI and the API.
func ParseButton(s string) (Button, error) {
	switch s {
	case "left", "":
		return ButtonLeft, nil
	case "middle":
		return ButtonMiddle, nil
	case "right":
		return ButtonRight, nil
	case "back":
		return ButtonBack, nil
	case "forward":
		return ButtonForward, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// Axis selects a scroll direction.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// ParseAxis converts the textual form used by the CLI and the API.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "vertical", "v", "":
		return AxisVertical, nil
	case "horizontal", "h":
		return AxisHorizontal, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}
