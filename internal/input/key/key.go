package key

import "fmt"

// NumCodes is the size of the pressed-key bitmap. Valid codes are 0..NumCodes-1.
const NumCodes = 256

// Code identifies a key. It is an opaque value already resolved by the
// platform (a virtual-key code on Windows); the keyboard state never
// interprets it.
type Code uint16

// String returns the code in hexadecimal form.
func (c Code) String() string {
	return fmt.Sprintf("0x%02X", uint16(c))
}

// Valid reports whether c indexes the pressed-key bitmap.
func (c Code) Valid() bool {
	return c < NumCodes
}

// Transition is the direction of a key change.
type Transition uint8

const (
	// Press indicates the key went down.
	Press Transition = iota + 1
	// Release indicates the key went up.
	Release
)

// String returns a string representation of the transition.
func (t Transition) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "none"
	}
}
