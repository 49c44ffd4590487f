package input

import (
	"github.com/tidwall/sjson"

	"github.com/dshills/inputcore/internal/input/key"
	"github.com/dshills/inputcore/internal/input/platform"
)

// Snapshot is an immutable copy of the level-triggered state.
type Snapshot struct {
	Seq        uint64
	Pressed    []key.Code
	AutoRepeat bool
	KeyQueue   int
	CharQueue  int

	X, Y    int16
	Inside  bool
	Left    bool
	Right   bool
	Wheel   bool
	Carry   int32
	Pointer int

	Bounds   platform.Bounds
	Captured bool
}

// Snapshot copies the current state without popping anything.
func (c *Context) Snapshot() Snapshot {
	x, y := c.pointer.Position()
	return Snapshot{
		Seq:        c.seq,
		Pressed:    c.keyboard.PressedCodes(),
		AutoRepeat: c.keyboard.AutoRepeatEnabled(),
		KeyQueue:   c.keyboard.KeyQueueLen(),
		CharQueue:  c.keyboard.CharQueueLen(),
		X:          x,
		Y:          y,
		Inside:     c.pointer.Inside(),
		Left:       c.pointer.LeftPressed(),
		Right:      c.pointer.RightPressed(),
		Wheel:      c.pointer.WheelPressed(),
		Carry:      c.pointer.WheelCarry(),
		Pointer:    c.pointer.Len(),
		Bounds:     c.bounds,
		Captured:   c.captured,
	}
}

// JSON renders the snapshot as a JSON document.
func (s Snapshot) JSON() (string, error) {
	pressed := make([]int, len(s.Pressed))
	for i, c := range s.Pressed {
		pressed[i] = int(c)
	}

	fields := []struct {
		path  string
		value any
	}{
		{"frame", s.Seq},
		{"keyboard.pressed", pressed},
		{"keyboard.auto_repeat", s.AutoRepeat},
		{"keyboard.queued.keys", s.KeyQueue},
		{"keyboard.queued.chars", s.CharQueue},
		{"pointer.x", s.X},
		{"pointer.y", s.Y},
		{"pointer.inside", s.Inside},
		{"pointer.buttons.left", s.Left},
		{"pointer.buttons.right", s.Right},
		{"pointer.buttons.wheel", s.Wheel},
		{"pointer.wheel_carry", s.Carry},
		{"pointer.queued", s.Pointer},
		{"window.width", s.Bounds.Width},
		{"window.height", s.Bounds.Height},
		{"window.captured", s.Captured},
	}

	doc := "{}"
	for _, f := range fields {
		var err error
		doc, err = sjson.Set(doc, f.path, f.value)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
