package key

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/inputcore/internal/input/queue"
)

// Config configures keyboard state.
type Config struct {
	// QueueCapacity bounds both the key event queue and the character queue.
	QueueCapacity int
}

// DefaultConfig returns the default keyboard configuration.
func DefaultConfig() Config {
	return Config{
		QueueCapacity: queue.DefaultCapacity,
	}
}

// State is the keyboard state machine. It keeps a level-triggered bitmap of
// pressed keys next to edge-triggered queues of key transitions and
// produced characters. Every mutator updates bitmap and queue together.
//
// State is not safe for concurrent use. It is mutated by the notification
// translator and read by the frame consumer on the same goroutine.
type State struct {
	pressed    [NumCodes]bool
	events     *queue.Ring[Event]
	chars      *queue.Ring[rune]
	autoRepeat bool
}

// NewState creates an empty keyboard state.
func NewState(config Config) *State {
	s := &State{
		events: queue.New[Event](config.QueueCapacity),
		chars:  queue.New[rune](config.QueueCapacity),
	}
	s.Reset()
	return s
}

// Reset clears the bitmap and both queues. The auto-repeat flag is left
// alone; it follows the repeat bit of the next key notification.
func (s *State) Reset() {
	s.pressed = [NumCodes]bool{}
	s.events.Clear()
	s.chars.Clear()
}

// OnKeyPress records code going down.
// An out-of-range code panics: codes are validated by the platform.
func (s *State) OnKeyPress(code Code) {
	s.pressed[code] = true
	s.events.Push(Event{Transition: Press, Code: code})
}

// OnKeyRelease records code going up.
func (s *State) OnKeyRelease(code Code) {
	s.pressed[code] = false
	s.events.Push(Event{Transition: Release, Code: code})
}

// OnChar queues the character for code. If code is not a Unicode scalar
// value the state is left untouched and a *CharError is returned.
func (s *State) OnChar(code uint32) error {
	if code > unicode.MaxRune || !utf8.ValidRune(rune(code)) {
		return &CharError{Code: uint64(code)}
	}
	s.chars.Push(rune(code))
	return nil
}

// EnableAutoRepeat marks that the platform is delivering repeated key-downs.
func (s *State) EnableAutoRepeat() {
	s.autoRepeat = true
}

// DisableAutoRepeat clears the auto-repeat flag.
func (s *State) DisableAutoRepeat() {
	s.autoRepeat = false
}

// AutoRepeatEnabled returns the auto-repeat flag.
func (s *State) AutoRepeatEnabled() bool {
	return s.autoRepeat
}

// IsPressed reports whether code is currently down.
func (s *State) IsPressed(code Code) bool {
	return s.pressed[code]
}

// IsPressedAndClear reports whether code is currently down and then marks
// it released in the bitmap. The event queue is not touched.
func (s *State) IsPressedAndClear(code Code) bool {
	was := s.pressed[code]
	s.pressed[code] = false
	return was
}

// PressedCodes returns every code currently down, in ascending order.
func (s *State) PressedCodes() []Code {
	var codes []Code
	for i, down := range s.pressed {
		if down {
			codes = append(codes, Code(i))
		}
	}
	return codes
}

// PopKeyEvent removes and returns the oldest key event.
func (s *State) PopKeyEvent() (Event, bool) {
	return s.events.Pop()
}

// PopChar removes and returns the oldest character.
func (s *State) PopChar() (rune, bool) {
	return s.chars.Pop()
}

// KeyQueueEmpty reports whether no key events are pending.
func (s *State) KeyQueueEmpty() bool {
	return s.events.Empty()
}

// CharQueueEmpty reports whether no characters are pending.
func (s *State) CharQueueEmpty() bool {
	return s.chars.Empty()
}

// KeyQueueLen returns the number of pending key events.
func (s *State) KeyQueueLen() int {
	return s.events.Len()
}

// CharQueueLen returns the number of pending characters.
func (s *State) CharQueueLen() int {
	return s.chars.Len()
}

// ClearKeyQueue drops all pending key events.
func (s *State) ClearKeyQueue() {
	s.events.Clear()
}

// ClearCharQueue drops all pending characters.
func (s *State) ClearCharQueue() {
	s.chars.Clear()
}

// ClearQueues drops all pending key events and characters.
func (s *State) ClearQueues() {
	s.events.Clear()
	s.chars.Clear()
}

// Dropped returns how many key events and characters were evicted
// because their queue was full.
func (s *State) Dropped() (events, chars uint64) {
	return s.events.Dropped(), s.chars.Dropped()
}
