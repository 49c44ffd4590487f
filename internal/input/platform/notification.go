// Package platform defines the raw notifications delivered by a platform
// window and the helpers that pack and decode their parameters.
//
// Parameters follow the Win32 window-message layout: coordinates are two
// signed 16-bit values packed into the low 32 bits of LParam, the wheel
// delta is the signed high word of WParam, and the key-repeat flag is bit
// 30 of LParam. Non-Windows platforms build notifications with the same
// helpers so that the translator has a single decoding path.
package platform

import (
	"fmt"

	"github.com/dshills/inputcore/internal/input/mouse"
)

// Kind identifies a raw notification.
type Kind uint8

const (
	// KindUnknown is any notification the core does not handle.
	KindUnknown Kind = iota
	// KindKeyDown is a key press (WM_KEYDOWN).
	KindKeyDown
	// KindKeyUp is a key release (WM_KEYUP).
	KindKeyUp
	// KindSysKeyDown is a system key press (WM_SYSKEYDOWN).
	KindSysKeyDown
	// KindSysKeyUp is a system key release (WM_SYSKEYUP).
	KindSysKeyUp
	// KindChar is a composed character (WM_CHAR).
	KindChar
	// KindPointerMove is pointer motion (WM_MOUSEMOVE).
	KindPointerMove
	// KindButtonDown is a pointer button press.
	KindButtonDown
	// KindButtonUp is a pointer button release.
	KindButtonUp
	// KindWheelRotate is wheel rotation (WM_MOUSEWHEEL).
	KindWheelRotate
	// KindFocusLost is keyboard focus leaving the window (WM_KILLFOCUS).
	KindFocusLost
	// KindResize is a client-area size change (WM_SIZE).
	KindResize
	// KindClose is a close request (WM_CLOSE).
	KindClose

	// NumKinds is the number of defined kinds.
	NumKinds = int(KindClose) + 1
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindKeyDown:     "key-down",
	KindKeyUp:       "key-up",
	KindSysKeyDown:  "sys-key-down",
	KindSysKeyUp:    "sys-key-up",
	KindChar:        "char",
	KindPointerMove: "pointer-move",
	KindButtonDown:  "button-down",
	KindButtonUp:    "button-up",
	KindWheelRotate: "wheel",
	KindFocusLost:   "focus-lost",
	KindResize:      "resize",
	KindClose:       "close",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind parses the output of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return KindUnknown, false
}

// Kinds returns every known kind, KindUnknown first.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// Notification is one raw input notification.
type Notification struct {
	Kind   Kind
	WParam uint64
	LParam int64

	// Button is set for KindButtonDown and KindButtonUp.
	Button mouse.Button
}

// String returns a compact representation for logs.
func (n Notification) String() string {
	switch n.Kind {
	case KindButtonDown, KindButtonUp:
		return fmt.Sprintf("%s %s", n.Kind, n.Button)
	case KindPointerMove, KindWheelRotate:
		x, y := MakePoints(n.LParam)
		return fmt.Sprintf("%s (%d,%d) w=%#x", n.Kind, x, y, n.WParam)
	default:
		return fmt.Sprintf("%s w=%#x l=%#x", n.Kind, n.WParam, n.LParam)
	}
}

// KeyDown builds a key-down notification. A set repeat flag means the key
// was already down when this notification was generated.
func KeyDown(code uint8, repeat bool) Notification {
	return Notification{Kind: KindKeyDown, WParam: uint64(code), LParam: keyLParam(repeat)}
}

// SysKeyDown builds a system key-down notification.
func SysKeyDown(code uint8, repeat bool) Notification {
	return Notification{Kind: KindSysKeyDown, WParam: uint64(code), LParam: keyLParam(repeat)}
}

// KeyUp builds a key-up notification.
func KeyUp(code uint8) Notification {
	return Notification{Kind: KindKeyUp, WParam: uint64(code), LParam: keyUpLParam}
}

// SysKeyUp builds a system key-up notification.
func SysKeyUp(code uint8) Notification {
	return Notification{Kind: KindSysKeyUp, WParam: uint64(code), LParam: keyUpLParam}
}

// Char builds a character notification. code is not validated here.
func Char(code uint32) Notification {
	return Notification{Kind: KindChar, WParam: uint64(code), LParam: 1}
}

// Move builds a pointer-move notification. mk holds the buttons down at
// the time of the move.
func Move(x, y int16, mk ButtonMask) Notification {
	return Notification{Kind: KindPointerMove, WParam: uint64(mk), LParam: PackPoints(x, y)}
}

// ButtonDown builds a button press at (x, y).
func ButtonDown(b mouse.Button, x, y int16) Notification {
	return Notification{Kind: KindButtonDown, Button: b, WParam: uint64(MaskOf(b)), LParam: PackPoints(x, y)}
}

// ButtonUp builds a button release at (x, y).
func ButtonUp(b mouse.Button, x, y int16) Notification {
	return Notification{Kind: KindButtonUp, Button: b, LParam: PackPoints(x, y)}
}

// Wheel builds a wheel notification with a raw delta at (x, y).
func Wheel(x, y int16, delta int16, mk ButtonMask) Notification {
	return Notification{Kind: KindWheelRotate, WParam: PackWheel(delta, mk), LParam: PackPoints(x, y)}
}

// FocusLost builds a focus-lost notification.
func FocusLost() Notification {
	return Notification{Kind: KindFocusLost}
}

// Resize builds a client-area resize notification.
func Resize(width, height uint16) Notification {
	return Notification{Kind: KindResize, LParam: PackPoints(int16(width), int16(height))}
}

// Close builds a close notification.
func Close() Notification {
	return Notification{Kind: KindClose}
}
