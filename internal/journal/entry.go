package journal

import (
	"fmt"
	"strings"

	"github.com/dshills/inputcore/internal/input/mouse"
	"github.com/dshills/inputcore/internal/input/platform"
)

// Entry is one recorded notification in a readable form. Journals written
// by a Recorder fill Seq, Batch and OffsetMS; hand-written scenarios may
// omit them.
type Entry struct {
	Seq uint64 `json:"seq,omitempty" yaml:"seq,omitempty"`
	// Batch numbers the source batch the entry arrived in, from 1.
	Batch    uint64 `json:"batch,omitempty" yaml:"batch,omitempty"`
	OffsetMS int64  `json:"offset_ms,omitempty" yaml:"offset_ms,omitempty"`

	// Kind is a platform.Kind name such as "key-down" or "pointer-move".
	Kind string `json:"kind" yaml:"kind"`

	// Key notifications.
	Code   uint16 `json:"code,omitempty" yaml:"code,omitempty"`
	Repeat bool   `json:"repeat,omitempty" yaml:"repeat,omitempty"`

	// Char carries the raw character code as delivered, invalid or not.
	// Text is a scenario shorthand that expands to one char notification
	// per rune.
	Char uint64 `json:"char,omitempty" yaml:"char,omitempty"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Pointer notifications.
	X       int16    `json:"x,omitempty" yaml:"x,omitempty"`
	Y       int16    `json:"y,omitempty" yaml:"y,omitempty"`
	Buttons []string `json:"buttons,omitempty" yaml:"buttons,omitempty"`
	Button  string   `json:"button,omitempty" yaml:"button,omitempty"`
	Delta   int16    `json:"delta,omitempty" yaml:"delta,omitempty"`

	// Resize notifications.
	Width  uint16 `json:"width,omitempty" yaml:"width,omitempty"`
	Height uint16 `json:"height,omitempty" yaml:"height,omitempty"`
}

// EntryOf records n as an entry.
func EntryOf(n platform.Notification) Entry {
	e := Entry{Kind: n.Kind.String()}

	switch n.Kind {
	case platform.KindKeyDown, platform.KindSysKeyDown:
		e.Code = uint16(n.WParam)
		e.Repeat = platform.RepeatFlag(n.LParam)
	case platform.KindKeyUp, platform.KindSysKeyUp:
		e.Code = uint16(n.WParam)
	case platform.KindChar:
		e.Char = n.WParam
	case platform.KindPointerMove:
		e.X, e.Y = platform.MakePoints(n.LParam)
		e.Buttons = maskNames(platform.Buttons(n.WParam))
	case platform.KindButtonDown, platform.KindButtonUp:
		e.X, e.Y = platform.MakePoints(n.LParam)
		e.Button = n.Button.String()
	case platform.KindWheelRotate:
		e.X, e.Y = platform.MakePoints(n.LParam)
		e.Delta = platform.WheelDelta(n.WParam)
		e.Buttons = maskNames(platform.Buttons(n.WParam))
	case platform.KindResize:
		e.Width, e.Height = platform.MakeSize(n.LParam)
	}
	return e
}

// Notifications rebuilds the notifications the entry describes. A Text
// entry yields one notification per rune; every other entry yields one.
func (e Entry) Notifications() ([]platform.Notification, error) {
	kind, ok := platform.ParseKind(e.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}

	switch kind {
	case platform.KindKeyDown, platform.KindSysKeyDown, platform.KindKeyUp, platform.KindSysKeyUp:
		if e.Code > 0xFF {
			return nil, fmt.Errorf("%w: key code %d", ErrInvalidEntry, e.Code)
		}
	}

	var n platform.Notification
	switch kind {
	case platform.KindKeyDown:
		n = platform.KeyDown(uint8(e.Code), e.Repeat)
	case platform.KindSysKeyDown:
		n = platform.SysKeyDown(uint8(e.Code), e.Repeat)
	case platform.KindKeyUp:
		n = platform.KeyUp(uint8(e.Code))
	case platform.KindSysKeyUp:
		n = platform.SysKeyUp(uint8(e.Code))
	case platform.KindChar:
		if e.Text != "" {
			out := make([]platform.Notification, 0, len(e.Text))
			for _, r := range e.Text {
				out = append(out, platform.Char(uint32(r)))
			}
			return out, nil
		}
		n = platform.Notification{Kind: platform.KindChar, WParam: e.Char, LParam: 1}
	case platform.KindPointerMove:
		mk, err := parseMask(e.Buttons)
		if err != nil {
			return nil, err
		}
		n = platform.Move(e.X, e.Y, mk)
	case platform.KindButtonDown, platform.KindButtonUp:
		b, ok := mouse.ParseButton(e.Button)
		if !ok {
			return nil, fmt.Errorf("%w: button %q", ErrInvalidEntry, e.Button)
		}
		if kind == platform.KindButtonDown {
			n = platform.ButtonDown(b, e.X, e.Y)
		} else {
			n = platform.ButtonUp(b, e.X, e.Y)
		}
	case platform.KindWheelRotate:
		mk, err := parseMask(e.Buttons)
		if err != nil {
			return nil, err
		}
		n = platform.Wheel(e.X, e.Y, e.Delta, mk)
	case platform.KindFocusLost:
		n = platform.FocusLost()
	case platform.KindResize:
		n = platform.Resize(e.Width, e.Height)
	case platform.KindClose:
		n = platform.Close()
	default:
		n = platform.Notification{Kind: kind}
	}
	return []platform.Notification{n}, nil
}

var maskOrder = []struct {
	name string
	mask platform.ButtonMask
}{
	{"left", platform.MaskLeft},
	{"right", platform.MaskRight},
	{"shift", platform.MaskShift},
	{"control", platform.MaskControl},
	{"middle", platform.MaskMiddle},
}

func maskNames(mk platform.ButtonMask) []string {
	var names []string
	for _, m := range maskOrder {
		if mk&m.mask != 0 {
			names = append(names, m.name)
		}
	}
	return names
}

func parseMask(names []string) (platform.ButtonMask, error) {
	var mk platform.ButtonMask
	for _, name := range names {
		found := false
		for _, m := range maskOrder {
			if strings.EqualFold(name, m.name) {
				mk |= m.mask
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: button flag %q", ErrInvalidEntry, name)
		}
	}
	return mk, nil
}
