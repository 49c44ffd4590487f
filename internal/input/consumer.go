package input

import (
	"github.com/dshills/inputcore/internal/input/key"
	"github.com/dshills/inputcore/internal/input/mouse"
)

// KeyboardReader is the consumer's view of keyboard state.
type KeyboardReader interface {
	IsPressed(code key.Code) bool
	IsPressedAndClear(code key.Code) bool
	PopKeyEvent() (key.Event, bool)
	PopChar() (rune, bool)
	AutoRepeatEnabled() bool
	KeyQueueEmpty() bool
	CharQueueEmpty() bool
	ClearKeyQueue()
	ClearCharQueue()
	ClearQueues()
}

// PointerReader is the consumer's view of pointer state.
type PointerReader interface {
	PopEvent() (mouse.Event, bool)
	Position() (x, y int16)
	Inside() bool
	LeftPressed() bool
	RightPressed() bool
	WheelPressed() bool
	Empty() bool
	Clear()
}

var (
	_ KeyboardReader = (*key.State)(nil)
	_ PointerReader  = (*mouse.State)(nil)
)

// Frame is handed to consumers once per loop iteration, after every
// notification of that iteration has been translated.
//
// Events not popped during a frame stay queued for the next one, subject
// to eviction.
type Frame struct {
	// Seq numbers frames from 1.
	Seq uint64

	Keyboard KeyboardReader
	Pointer  PointerReader
}

// Consumer processes frames. Returning an error stops the loop.
type Consumer interface {
	Frame(f *Frame) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(f *Frame) error

// Frame implements Consumer.
func (fn ConsumerFunc) Frame(f *Frame) error {
	return fn(f)
}

// Chain runs consumers in order and stops at the first error.
type Chain []Consumer

// Frame implements Consumer.
func (c Chain) Frame(f *Frame) error {
	for _, consumer := range c {
		if err := consumer.Frame(f); err != nil {
			return err
		}
	}
	return nil
}
