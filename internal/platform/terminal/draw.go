package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Clear blanks the back buffer.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.screen.Clear()
}

// Show flushes the back buffer to the terminal.
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.screen.Show()
}

// DrawText writes text on row starting at column col, one grapheme
// cluster per cell group, and returns the column after the last cell
// written. color is a "#rrggbb" string or empty for the default.
func (w *Window) DrawText(col, row int, text, color string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	width, height := w.screen.Size()
	if row < 0 || row >= height {
		return col
	}

	style := tcell.StyleDefault
	if color != "" {
		style = style.Foreground(tcell.GetColor(color))
	}

	state := -1
	rest := text
	for len(rest) > 0 && col < width {
		var cluster string
		var cells int
		cluster, rest, cells, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cells == 0 {
			continue
		}
		runes := []rune(cluster)
		w.screen.SetContent(col, row, runes[0], runes[1:], style)
		col += cells
	}
	return col
}

// ClearRow blanks row from column col to the right edge.
func (w *Window) ClearRow(col, row int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	width, _ := w.screen.Size()
	for x := col; x < width; x++ {
		w.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
}

// ShowCursor places the cursor at (col, row).
func (w *Window) ShowCursor(col, row int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.screen.ShowCursor(col, row)
}
