package mouse

import "fmt"

// Button identifies one of the three tracked pointer buttons.
type Button uint8

const (
	// ButtonLeft is the primary (left) button.
	ButtonLeft Button = iota + 1
	// ButtonRight is the secondary (right) button.
	ButtonRight
	// ButtonWheel is the wheel (middle) button.
	ButtonWheel
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonWheel:
		return "wheel"
	default:
		return "none"
	}
}

// ParseButton parses the output of Button.String.
func ParseButton(s string) (Button, bool) {
	switch s {
	case "left":
		return ButtonLeft, true
	case "right":
		return ButtonRight, true
	case "wheel":
		return ButtonWheel, true
	default:
		return 0, false
	}
}

// Kind is the type of a pointer event.
type Kind uint8

const (
	// KindMove is pointer motion.
	KindMove Kind = iota + 1
	// KindEnter marks the pointer entering the client area.
	KindEnter
	// KindLeave marks the pointer leaving the client area.
	KindLeave
	// KindLeftPress is the left button going down.
	KindLeftPress
	// KindLeftRelease is the left button going up.
	KindLeftRelease
	// KindRightPress is the right button going down.
	KindRightPress
	// KindRightRelease is the right button going up.
	KindRightRelease
	// KindWheelPress is the wheel button going down.
	KindWheelPress
	// KindWheelRelease is the wheel button going up.
	KindWheelRelease
	// KindWheelUp is one wheel notch away from the user.
	KindWheelUp
	// KindWheelDown is one wheel notch toward the user.
	KindWheelDown
)

var kindNames = map[Kind]string{
	KindMove:         "move",
	KindEnter:        "enter",
	KindLeave:        "leave",
	KindLeftPress:    "left-press",
	KindLeftRelease:  "left-release",
	KindRightPress:   "right-press",
	KindRightRelease: "right-release",
	KindWheelPress:   "wheel-press",
	KindWheelRelease: "wheel-release",
	KindWheelUp:      "wheel-up",
	KindWheelDown:    "wheel-down",
}

// String returns a string representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "none"
}

// IsWheel returns true for wheel notch events.
func (k Kind) IsWheel() bool {
	return k == KindWheelUp || k == KindWheelDown
}

// IsButton returns true for button press and release events.
func (k Kind) IsButton() bool {
	return k >= KindLeftPress && k <= KindWheelRelease
}

// pressKind and releaseKind map a button to its event kinds.
func pressKind(b Button) Kind {
	switch b {
	case ButtonLeft:
		return KindLeftPress
	case ButtonRight:
		return KindRightPress
	case ButtonWheel:
		return KindWheelPress
	}
	panic(fmt.Sprintf("mouse: invalid button %d", b))
}

func releaseKind(b Button) Kind {
	switch b {
	case ButtonLeft:
		return KindLeftRelease
	case ButtonRight:
		return KindRightRelease
	case ButtonWheel:
		return KindWheelRelease
	}
	panic(fmt.Sprintf("mouse: invalid button %d", b))
}

// Position is a client-area coordinate in the platform's signed 16-bit range.
type Position struct {
	X int16
	Y int16
}

// Event is a self-contained pointer event: it carries the full button state
// and position at the time it was recorded, not a diff.
type Event struct {
	Kind  Kind
	Left  bool
	Right bool
	Wheel bool
	X     int16
	Y     int16
}

// Position returns the event coordinates.
func (e Event) Position() Position {
	return Position{X: e.X, Y: e.Y}
}

// String returns a compact representation such as "left-press (10,4) [L--]".
func (e Event) String() string {
	buttons := []byte("---")
	if e.Left {
		buttons[0] = 'L'
	}
	if e.Wheel {
		buttons[1] = 'W'
	}
	if e.Right {
		buttons[2] = 'R'
	}
	return fmt.Sprintf("%s (%d,%d) [%s]", e.Kind, e.X, e.Y, buttons)
}
