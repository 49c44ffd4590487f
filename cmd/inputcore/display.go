package main

import (
	"github.com/dshills/inputcore/internal/app"
	"github.com/dshills/inputcore/internal/platform/terminal"
)

const prompt = "> "

// screenDisplay draws editor views on the terminal window: a status line
// at the top, the prompt on the bottom row and history just above it.
type screenDisplay struct {
	win *terminal.Window
}

func newScreenDisplay(win *terminal.Window) *screenDisplay {
	return &screenDisplay{win: win}
}

// Show implements app.Display.
func (d *screenDisplay) Show(v app.View) error {
	_, height := d.win.Size()
	if height < 2 {
		return nil
	}
	d.win.Clear()

	col := d.win.DrawText(0, 0, "● ", v.Color)
	d.win.DrawText(col, 0, v.Status, "")

	bottom := height - 1
	history := v.History
	if room := bottom - 1; len(history) > room {
		history = history[len(history)-room:]
	}
	for i, line := range history {
		d.win.DrawText(len(prompt), bottom-len(history)+i, line, "")
	}

	col = d.win.DrawText(0, bottom, prompt, "")
	d.win.DrawText(col, bottom, v.Line, "")
	d.win.ShowCursor(col+v.Cursor, bottom)
	d.win.Show()
	return nil
}
