package script

import "errors"

var (
	// ErrQuit is returned by Consumer.Frame when the script asks to stop.
	ErrQuit = errors.New("script requested quit")

	// ErrStateClosed is returned when using a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when calling a global that is not a
	// function, including a missing on_frame.
	ErrNotFunction = errors.New("lua global is not a function")

	// ErrTimeout is returned when a call runs past its timeout.
	ErrTimeout = errors.New("lua call timed out")
)
