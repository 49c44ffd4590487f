package mouse

import (
	"github.com/dshills/inputcore/internal/input/queue"
)

// DefaultWheelNotch is the platform's raw delta for one wheel notch.
const DefaultWheelNotch = 120

// Config configures pointer state.
type Config struct {
	// QueueCapacity bounds the pointer event queue.
	QueueCapacity int

	// WheelNotch is the raw wheel delta that makes one discrete notch.
	WheelNotch int
}

// DefaultConfig returns the default pointer configuration.
func DefaultConfig() Config {
	return Config{
		QueueCapacity: queue.DefaultCapacity,
		WheelNotch:    DefaultWheelNotch,
	}
}

// State is the pointer state machine: last position, button flags, whether
// the pointer is inside the client area, the sub-notch wheel carry and a
// bounded queue of events.
//
// State is not safe for concurrent use.
type State struct {
	x, y   int16
	left   bool
	right  bool
	wheel  bool
	inside bool

	wheelCarry int32
	notch      int32

	events *queue.Ring[Event]
}

// NewState creates an empty pointer state.
func NewState(config Config) *State {
	notch := config.WheelNotch
	if notch <= 0 {
		notch = DefaultWheelNotch
	}
	return &State{
		notch:  int32(notch),
		events: queue.New[Event](config.QueueCapacity),
	}
}

// Reset clears the event queue. Position, buttons and the inside flag
// persist until new input contradicts them.
func (s *State) Reset() {
	s.events.Clear()
}

// push records an event of kind k at (x, y) with the current button state.
func (s *State) push(k Kind, x, y int16) {
	s.events.Push(Event{
		Kind:  k,
		Left:  s.left,
		Right: s.right,
		Wheel: s.wheel,
		X:     x,
		Y:     y,
	})
}

// OnMove updates the position and records a move.
func (s *State) OnMove(x, y int16) {
	s.x = x
	s.y = y
	s.push(KindMove, x, y)
}

// OnEnter marks the pointer inside the client area.
// Calling it while already inside is a translator bug and panics.
func (s *State) OnEnter() {
	if s.inside {
		panic("mouse: OnEnter while already inside")
	}
	s.inside = true
	s.push(KindEnter, s.x, s.y)
}

// OnLeave marks the pointer outside the client area.
// Calling it while already outside is a translator bug and panics.
func (s *State) OnLeave() {
	if !s.inside {
		panic("mouse: OnLeave while already outside")
	}
	s.inside = false
	s.push(KindLeave, s.x, s.y)
}

// OnButtonPress records b going down.
func (s *State) OnButtonPress(b Button) {
	k := pressKind(b)
	s.setButton(b, true)
	s.push(k, s.x, s.y)
}

// OnButtonRelease records b going up.
func (s *State) OnButtonRelease(b Button) {
	k := releaseKind(b)
	s.setButton(b, false)
	s.push(k, s.x, s.y)
}

func (s *State) setButton(b Button, down bool) {
	switch b {
	case ButtonLeft:
		s.left = down
	case ButtonRight:
		s.right = down
	case ButtonWheel:
		s.wheel = down
	}
}

// PopEvent removes and returns the oldest pointer event.
func (s *State) PopEvent() (Event, bool) {
	return s.events.Pop()
}

// Position returns the last known pointer position.
func (s *State) Position() (x, y int16) {
	return s.x, s.y
}

// Inside reports whether the pointer is inside the client area.
func (s *State) Inside() bool {
	return s.inside
}

// LeftPressed reports whether the left button is down.
func (s *State) LeftPressed() bool {
	return s.left
}

// RightPressed reports whether the right button is down.
func (s *State) RightPressed() bool {
	return s.right
}

// WheelPressed reports whether the wheel button is down.
func (s *State) WheelPressed() bool {
	return s.wheel
}

// AnyPressed reports whether any tracked button is down.
func (s *State) AnyPressed() bool {
	return s.left || s.right || s.wheel
}

// Empty reports whether no pointer events are pending.
func (s *State) Empty() bool {
	return s.events.Empty()
}

// Len returns the number of pending pointer events.
func (s *State) Len() int {
	return s.events.Len()
}

// Clear drops all pending pointer events.
func (s *State) Clear() {
	s.events.Clear()
}

// Dropped returns how many pointer events were evicted because the queue
// was full.
func (s *State) Dropped() uint64 {
	return s.events.Dropped()
}
