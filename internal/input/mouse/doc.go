// Package mouse provides the pointer state machine.
//
// State tracks the last pointer position, the left, right and wheel button
// flags, whether the pointer is inside the client area, and a bounded queue
// of events. Every Event is a full snapshot (buttons plus position) so a
// consumer never needs to replay history to know the button state at the
// time of an event.
//
// # Wheel Accumulation
//
// Raw wheel deltas are summed into a carry. Each time the carry reaches one
// notch (120 units by default) a discrete WheelUp or WheelDown event is
// queued and the carry shrinks by one notch:
//
//	p := mouse.NewState(mouse.DefaultConfig())
//	for i := 0; i < 5; i++ {
//	    p.OnWheelDelta(x, y, 48) // high-resolution wheel
//	}
//	// two WheelUp events queued, carry == 0
//
// # Enter and Leave
//
// OnEnter and OnLeave must be called once per real transition; the
// translator performs the edge detection. A second OnEnter without an
// OnLeave in between panics.
//
// State is not safe for concurrent use.
package mouse
