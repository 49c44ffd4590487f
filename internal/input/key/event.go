package key

import "fmt"

// Event is a single recorded key transition. Events are values and are
// never modified once queued.
type Event struct {
	// Transition is Press or Release.
	Transition Transition

	// Code is the key that changed.
	Code Code
}

// IsPress returns true if the event records a key going down.
func (e Event) IsPress() bool {
	return e.Transition == Press
}

// IsRelease returns true if the event records a key going up.
func (e Event) IsRelease() bool {
	return e.Transition == Release
}

// String returns a compact representation such as "press 0x0D".
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Transition, e.Code)
}
