package app

import (
	"fmt"
	"io"
)

// View is what the line editor shows after each frame.
type View struct {
	// Line is the text being typed; Cursor is its display width in cells.
	Line   string
	Cursor int

	// History holds the committed lines that fit, oldest first.
	History []string
	// Committed holds the lines committed during this frame.
	Committed []string

	// Status describes the last pointer or key activity.
	Status string

	// Pressure is the busiest queue's share of its capacity this frame,
	// from 0 to 1; Color is the matching "#rrggbb" indicator color.
	Pressure float64
	Color    string
}

// Display renders views.
type Display interface {
	Show(v View) error
}

// LogDisplay writes each committed line to a writer. It suits replays,
// where there is no screen to draw on.
type LogDisplay struct {
	w io.Writer
}

// NewLogDisplay creates a display writing to w.
func NewLogDisplay(w io.Writer) *LogDisplay {
	return &LogDisplay{w: w}
}

// Show implements Display.
func (d *LogDisplay) Show(v View) error {
	for _, line := range v.Committed {
		if _, err := fmt.Fprintf(d.w, "> %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
