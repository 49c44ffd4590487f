package platform

import "github.com/dshills/inputcore/internal/input/mouse"

// ButtonMask is the set of buttons reported in the WParam of pointer
// notifications (the MK_* flags).
type ButtonMask uint16

const (
	// MaskLeft is MK_LBUTTON.
	MaskLeft ButtonMask = 0x0001
	// MaskRight is MK_RBUTTON.
	MaskRight ButtonMask = 0x0002
	// MaskShift is MK_SHIFT.
	MaskShift ButtonMask = 0x0004
	// MaskControl is MK_CONTROL.
	MaskControl ButtonMask = 0x0008
	// MaskMiddle is MK_MBUTTON.
	MaskMiddle ButtonMask = 0x0010

	// MaskButtons covers the three tracked buttons.
	MaskButtons = MaskLeft | MaskRight | MaskMiddle
)

// AnyButton reports whether any tracked button is down.
func (m ButtonMask) AnyButton() bool {
	return m&MaskButtons != 0
}

// MaskOf returns the MK flag for a pointer button.
func MaskOf(b mouse.Button) ButtonMask {
	switch b {
	case mouse.ButtonLeft:
		return MaskLeft
	case mouse.ButtonRight:
		return MaskRight
	case mouse.ButtonWheel:
		return MaskMiddle
	default:
		return 0
	}
}

// repeatBit is the previous-key-state flag of a key notification.
const repeatBit = 30

// keyUpLParam has the previous-state and transition bits set, as the
// platform does for every key-up.
const keyUpLParam int64 = 1 | 1<<repeatBit | 1<<31

func keyLParam(repeat bool) int64 {
	lp := int64(1) // repeat count
	if repeat {
		lp |= 1 << repeatBit
	}
	return lp
}

// RepeatFlag reports whether bit 30 of a key notification's LParam is set.
func RepeatFlag(lparam int64) bool {
	return (lparam>>repeatBit)&1 == 1
}

// PackPoints packs two signed 16-bit coordinates into an LParam: x in the
// low word, y in the high word.
func PackPoints(x, y int16) int64 {
	return int64(int32(uint32(uint16(x)) | uint32(uint16(y))<<16))
}

// MakePoints splits the low 32 bits of an LParam into signed x and y.
func MakePoints(lparam int64) (x, y int16) {
	coords := int32(lparam)
	x = int16(coords & 0xFFFF)
	y = int16(coords >> 16)
	return x, y
}

// MakeSize splits an LParam into unsigned width and height.
func MakeSize(lparam int64) (width, height uint16) {
	coords := uint32(lparam)
	return uint16(coords & 0xFFFF), uint16(coords >> 16)
}

// PackWheel packs a wheel delta into the high word of a WParam with the
// button flags in the low word.
func PackWheel(delta int16, mk ButtonMask) uint64 {
	return uint64(uint16(delta))<<16 | uint64(mk)
}

// WheelDelta returns the signed wheel delta from the high word of WParam.
func WheelDelta(wparam uint64) int16 {
	return int16(uint16(wparam >> 16))
}

// Buttons returns the button flags from the low word of WParam.
func Buttons(wparam uint64) ButtonMask {
	return ButtonMask(wparam & 0xFFFF)
}

// Bounds is the client area used for enter/leave detection. Both edges are
// inclusive: a pointer at (Width, Height) is still inside.
type Bounds struct {
	Width  int16 `json:"width" yaml:"width"`
	Height int16 `json:"height" yaml:"height"`
}

// Contains reports whether (x, y) lies within the client area.
func (b Bounds) Contains(x, y int16) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}
