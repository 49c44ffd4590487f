package input

import (
	"fmt"
	"math"
	"time"

	"github.com/dshills/inputcore/internal/input/key"
	"github.com/dshills/inputcore/internal/input/platform"
)

// Translate applies one raw notification to the keyboard and pointer
// state. Notifications the core does not handle are ignored.
//
// A malformed character code is returned as a *TranslateError and leaves
// the state untouched. A key code outside 0..255 panics.
func (c *Context) Translate(n platform.Notification) error {
	start := time.Now()
	handled, err := c.translate(n)
	c.metrics.RecordNotification(n.Kind, time.Since(start))
	switch {
	case err != nil:
		c.metrics.RecordDecodeFailure()
	case !handled:
		c.metrics.RecordIgnored()
	}
	return err
}

func (c *Context) translate(n platform.Notification) (bool, error) {
	switch n.Kind {
	case platform.KindKeyDown, platform.KindSysKeyDown:
		code := keyCode(n)
		if platform.RepeatFlag(n.LParam) {
			c.keyboard.EnableAutoRepeat()
		}
		c.keyboard.OnKeyPress(code)

	case platform.KindKeyUp, platform.KindSysKeyUp:
		code := keyCode(n)
		c.keyboard.DisableAutoRepeat()
		c.keyboard.OnKeyRelease(code)

	case platform.KindChar:
		if n.WParam > math.MaxUint32 {
			return true, &TranslateError{Kind: n.Kind, Err: &key.CharError{Code: n.WParam}}
		}
		if err := c.keyboard.OnChar(uint32(n.WParam)); err != nil {
			return true, &TranslateError{Kind: n.Kind, Err: err}
		}

	case platform.KindFocusLost:
		// Releases that happen while unfocused are never delivered.
		c.keyboard.Reset()

	case platform.KindPointerMove:
		c.translateMove(n)

	case platform.KindButtonDown:
		c.pointer.OnButtonPress(n.Button)

	case platform.KindButtonUp:
		c.pointer.OnButtonRelease(n.Button)

	case platform.KindWheelRotate:
		x, y := platform.MakePoints(n.LParam)
		c.pointer.OnWheelDelta(x, y, platform.WheelDelta(n.WParam))

	case platform.KindResize:
		w, h := platform.MakeSize(n.LParam)
		c.bounds = platform.Bounds{Width: clampInt16(w), Height: clampInt16(h)}

	default:
		return false, nil
	}
	return true, nil
}

// translateMove applies the boundary rule. Entering acquires capture so a
// drag that leaves the client area keeps reporting; leaving without a
// button held releases it.
func (c *Context) translateMove(n platform.Notification) {
	x, y := platform.MakePoints(n.LParam)

	if c.bounds.Contains(x, y) {
		if !c.pointer.Inside() {
			c.setCapture()
			c.pointer.OnEnter()
		}
		c.pointer.OnMove(x, y)
		return
	}

	if platform.Buttons(n.WParam).AnyButton() {
		c.pointer.OnMove(x, y)
		return
	}

	if c.pointer.Inside() {
		c.releaseCapture()
		c.pointer.OnLeave()
	}
}

func keyCode(n platform.Notification) key.Code {
	if n.WParam >= key.NumCodes {
		panic(fmt.Sprintf("input: %s with key code %d out of range", n.Kind, n.WParam))
	}
	return key.Code(n.WParam)
}

func clampInt16(v uint16) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}
