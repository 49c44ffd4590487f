// Package key provides the keyboard state machine.
//
// State offers two ways to consume keyboard input that coexist on one
// value:
//
//   - Level-triggered: IsPressed answers "is this key down right now".
//   - Edge-triggered: PopKeyEvent drains transitions in arrival order, so a
//     key pressed and released between two polls is still observed.
//
// IsPressedAndClear sits in between: it reads the bitmap and clears the bit,
// which gives "pressed since I last asked" semantics without draining the
// queue.
//
// Characters produced by the platform's text composition are queued
// separately and drained with PopChar:
//
//	kb := key.NewState(key.DefaultConfig())
//	kb.OnKeyPress(0x0D)
//	_ = kb.OnChar('a')
//
//	for {
//	    ev, ok := kb.PopKeyEvent()
//	    if !ok {
//	        break
//	    }
//	    handle(ev)
//	}
//
// Both queues are bounded; once full, each push evicts the oldest entry.
package key
