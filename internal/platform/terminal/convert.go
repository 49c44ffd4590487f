package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputcore/internal/input/mouse"
	"github.com/dshills/inputcore/internal/input/platform"
)

// wheelStep is the raw delta reported for one terminal wheel event.
const wheelStep = 120

// result is the outcome of converting one tcell event.
type result struct {
	now       []platform.Notification
	interrupt bool
}

// heldKey is a synthesized key-up waiting for its key to go quiet.
type heldKey struct {
	code uint8
	up   platform.Notification
	due  time.Time
}

// converter turns tcell events into platform notifications. It holds back
// the key-up of every pressed key until the key has been quiet for the
// repeat window, and remembers the last pointer state for button diffs.
type converter struct {
	repeatWindow time.Duration

	held []heldKey

	mouseSeen bool
	mouseX    int16
	mouseY    int16
	buttons   tcell.ButtonMask
}

func (c *converter) convert(ev tcell.Event) result {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return c.convertKey(e)

	case *tcell.EventMouse:
		return result{now: c.convertMouse(e)}

	case *tcell.EventResize:
		w, h := e.Size()
		return result{now: []platform.Notification{platform.Resize(uint16(clamp16(w)), uint16(clamp16(h)))}}

	case *tcell.EventFocus:
		if !e.Focused {
			return result{now: []platform.Notification{platform.FocusLost()}}
		}
	}
	return result{}
}

func (c *converter) convertKey(e *tcell.EventKey) result {
	k := e.Key()
	if k == tcell.KeyCtrlC || k == tcell.KeyETX {
		return result{interrupt: true}
	}

	code, ch, ctrl := keyCode(k, e.Rune())

	at := e.When()
	sys := e.Modifiers()&tcell.ModAlt != 0

	var res result
	if ctrl {
		res.now = append(res.now, c.keyDown(platform.VKControl, false))
	}
	if code != 0 {
		res.now = append(res.now, c.keyDown(code, sys))
	}
	if ch != 0 {
		res.now = append(res.now, platform.Char(uint32(ch)))
	}
	if code != 0 {
		c.hold(code, keyUp(code, sys), at)
	}
	if ctrl {
		c.hold(platform.VKControl, platform.KeyUp(platform.VKControl), at)
	}
	return res
}

// keyDown builds a key-down. It is a repeat only when the key's previous
// key-up is still held back, that is when the key never went up.
func (c *converter) keyDown(code uint8, sys bool) platform.Notification {
	repeat := c.unhold(code)
	if sys {
		return platform.SysKeyDown(code, repeat)
	}
	return platform.KeyDown(code, repeat)
}

func (c *converter) hold(code uint8, up platform.Notification, at time.Time) {
	c.held = append(c.held, heldKey{code: code, up: up, due: at.Add(c.repeatWindow)})
}

// unhold drops the held key-up for code and reports whether there was one.
func (c *converter) unhold(code uint8) bool {
	for i, h := range c.held {
		if h.code == code {
			c.held = append(c.held[:i], c.held[i+1:]...)
			return true
		}
	}
	return false
}

// release returns the held key-ups due at now, in press order.
func (c *converter) release(now time.Time) []platform.Notification {
	var out []platform.Notification
	kept := c.held[:0]
	for _, h := range c.held {
		if h.due.After(now) {
			kept = append(kept, h)
			continue
		}
		out = append(out, h.up)
	}
	c.held = kept
	return out
}

// releaseAll returns every held key-up.
func (c *converter) releaseAll() []platform.Notification {
	var out []platform.Notification
	for _, h := range c.held {
		out = append(out, h.up)
	}
	c.held = nil
	return out
}

// nextRelease returns when the earliest held key-up falls due.
func (c *converter) nextRelease() (time.Time, bool) {
	if len(c.held) == 0 {
		return time.Time{}, false
	}
	next := c.held[0].due
	for _, h := range c.held[1:] {
		if h.due.Before(next) {
			next = h.due
		}
	}
	return next, true
}

func keyUp(code uint8, sys bool) platform.Notification {
	if sys {
		return platform.SysKeyUp(code)
	}
	return platform.KeyUp(code)
}

// keyCode maps a tcell key to a virtual-key code and the character it
// types, if any. ctrl is set for control-letter chords.
func keyCode(k tcell.Key, r rune) (code uint8, ch rune, ctrl bool) {
	switch k {
	case tcell.KeyRune:
		code, _ = platform.VKForRune(r)
		return code, r, false
	case tcell.KeyEnter:
		return platform.VKReturn, '\r', false
	case tcell.KeyTab:
		return platform.VKTab, '\t', false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return platform.VKBack, '\b', false
	case tcell.KeyEscape:
		return platform.VKEscape, 0, false
	case tcell.KeyDelete:
		return platform.VKDelete, 0, false
	case tcell.KeyInsert:
		return platform.VKInsert, 0, false
	case tcell.KeyHome:
		return platform.VKHome, 0, false
	case tcell.KeyEnd:
		return platform.VKEnd, 0, false
	case tcell.KeyPgUp:
		return platform.VKPrior, 0, false
	case tcell.KeyPgDn:
		return platform.VKNext, 0, false
	case tcell.KeyUp:
		return platform.VKUp, 0, false
	case tcell.KeyDown:
		return platform.VKDown, 0, false
	case tcell.KeyLeft:
		return platform.VKLeft, 0, false
	case tcell.KeyRight:
		return platform.VKRight, 0, false
	case tcell.KeyPause:
		return platform.VKPause, 0, false
	}

	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		code, _ = platform.VKFunction(int(k-tcell.KeyF1) + 1)
		return code, 0, false
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return platform.VKA + uint8(k-tcell.KeyCtrlA), 0, true
	case k >= tcell.KeySOH && k <= tcell.KeySUB:
		return platform.VKA + uint8(k-tcell.KeySOH), 0, true
	}
	return 0, 0, false
}

// tracked maps tcell buttons to pointer buttons.
var tracked = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.Button1, mouse.ButtonLeft},
	{tcell.Button2, mouse.ButtonRight},
	{tcell.Button3, mouse.ButtonWheel},
}

func (c *converter) convertMouse(e *tcell.EventMouse) []platform.Notification {
	cx, cy := e.Position()
	x, y := clamp16(cx), clamp16(cy)
	buttons := e.Buttons()

	var out []platform.Notification
	held := heldMask(buttons)

	if !c.mouseSeen || x != c.mouseX || y != c.mouseY {
		out = append(out, platform.Move(x, y, held))
		c.mouseSeen = true
		c.mouseX, c.mouseY = x, y
	}

	for _, t := range tracked {
		was := c.buttons&t.mask != 0
		is := buttons&t.mask != 0
		switch {
		case is && !was:
			out = append(out, platform.ButtonDown(t.button, x, y))
		case was && !is:
			out = append(out, platform.ButtonUp(t.button, x, y))
		}
	}
	c.buttons = buttons

	if buttons&tcell.WheelUp != 0 {
		out = append(out, platform.Wheel(x, y, wheelStep, held))
	}
	if buttons&tcell.WheelDown != 0 {
		out = append(out, platform.Wheel(x, y, -wheelStep, held))
	}
	return out
}

// heldMask returns the MK flags for the buttons down in b.
func heldMask(b tcell.ButtonMask) platform.ButtonMask {
	var mk platform.ButtonMask
	for _, t := range tracked {
		if b&t.mask != 0 {
			mk |= platform.MaskOf(t.button)
		}
	}
	return mk
}
