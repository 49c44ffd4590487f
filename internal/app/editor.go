package app

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/dshills/inputcore/internal/input"
	"github.com/dshills/inputcore/internal/input/key"
	"github.com/dshills/inputcore/internal/input/mouse"
	"github.com/dshills/inputcore/internal/input/platform"
)

// Pressure indicator endpoints.
const (
	idleColor = "#2ecc71"
	fullColor = "#e74c3c"
)

// DefaultHistoryRows is how many committed lines a view carries.
const DefaultHistoryRows = 10

// Editor is the built-in frame consumer: a one-line editor. Typed
// characters accumulate, backspace removes the last grapheme cluster,
// Enter commits the line and Escape quits. The wheel scrolls the history.
type Editor struct {
	display  Display
	logger   *Logger
	capacity int
	rows     int

	line    strings.Builder
	history []string
	scroll  int
	status  string
}

// NewEditor creates an editor showing views on display. capacity is the
// input queue capacity, used to compute queue pressure.
func NewEditor(display Display, capacity int, logger *Logger) *Editor {
	if capacity <= 0 {
		capacity = key.DefaultConfig().QueueCapacity
	}
	if logger == nil {
		logger = NullLogger
	}
	return &Editor{
		display:  display,
		logger:   logger,
		capacity: capacity,
		rows:     DefaultHistoryRows,
	}
}

// Frame implements input.Consumer.
func (e *Editor) Frame(f *input.Frame) error {
	chars := e.readChars(f.Keyboard)
	keys := e.readKeys(f.Keyboard)
	pointer := e.readPointer(f.Pointer)

	var committed []string
	if f.Keyboard.IsPressedAndClear(key.Code(platform.VKReturn)) {
		line := e.line.String()
		e.line.Reset()
		e.history = append(e.history, line)
		e.scroll = 0
		committed = append(committed, line)
		e.logger.Debug("committed %q", line)
	}
	quit := f.Keyboard.IsPressedAndClear(key.Code(platform.VKEscape))

	pressure := float64(max(chars, keys, pointer)) / float64(e.capacity)
	if pressure > 1 {
		pressure = 1
	}

	if e.display != nil {
		if err := e.display.Show(e.view(committed, pressure)); err != nil {
			return NewComponentError("display", "show", err)
		}
	}
	if quit {
		return ErrQuit
	}
	return nil
}

// Line returns the text being typed.
func (e *Editor) Line() string {
	return e.line.String()
}

// History returns every committed line, oldest first.
func (e *Editor) History() []string {
	return append([]string(nil), e.history...)
}

func (e *Editor) readChars(kb input.KeyboardReader) int {
	n := 0
	for {
		r, ok := kb.PopChar()
		if !ok {
			return n
		}
		n++
		switch {
		case r == '\b':
			e.backspace()
		case r < 0x20 || r == 0x7F:
			// Enter and the other control characters arrive as keys.
		default:
			e.line.WriteRune(r)
		}
	}
}

// backspace removes the last grapheme cluster of the line.
func (e *Editor) backspace() {
	s := e.line.String()
	if s == "" {
		return
	}

	last := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		last = len(s) - len(rest)
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}

	e.line.Reset()
	e.line.WriteString(s[:last])
}

func (e *Editor) readKeys(kb input.KeyboardReader) int {
	n := 0
	for {
		ev, ok := kb.PopKeyEvent()
		if !ok {
			return n
		}
		n++
		if ev.IsPress() {
			e.status = fmt.Sprintf("key %s", ev)
		}
	}
}

func (e *Editor) readPointer(p input.PointerReader) int {
	n := 0
	for {
		ev, ok := p.PopEvent()
		if !ok {
			return n
		}
		n++
		switch {
		case ev.Kind.IsWheel():
			dir := mouse.Direction(ev.Kind)
			e.scroll = min(max(e.scroll+int(dir), 0), max(len(e.history)-1, 0))
			e.status = "scroll " + dir.String()
		case ev.Kind.IsButton(), ev.Kind == mouse.KindEnter, ev.Kind == mouse.KindLeave:
			e.status = ev.String()
		}
	}
}

// view builds the view for this frame. The history window ends scroll
// lines before the newest entry.
func (e *Editor) view(committed []string, pressure float64) View {
	end := len(e.history) - e.scroll
	start := max(end-e.rows, 0)

	line := e.line.String()
	return View{
		Line:      line,
		Cursor:    uniseg.StringWidth(line),
		History:   append([]string(nil), e.history[start:end]...),
		Committed: committed,
		Status:    e.status,
		Pressure:  pressure,
		Color:     pressureColor(pressure),
	}
}

// pressureColor blends from the idle color to the full color in Lab space.
func pressureColor(p float64) string {
	idle, _ := colorful.Hex(idleColor)
	full, _ := colorful.Hex(fullColor)
	return idle.BlendLab(full, p).Clamped().Hex()
}
