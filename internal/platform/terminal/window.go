// Package terminal is a platform window backed by a tcell screen.
//
// The terminal reports key presses but never key releases, so the window
// synthesizes them: a key counts as held until no press for it has arrived
// for the repeat window, and then its key-up is delivered. A press that
// arrives while the key is still held is reported with the repeat flag
// set, the way the platform flags auto-repeat.
package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputcore/internal/input/platform"
)

// Config configures a terminal window.
type Config struct {
	// FrameInterval is the longest Next waits for input.
	FrameInterval time.Duration
	// RepeatWindow is how long a key stays held after its last press. It
	// should sit between the terminal's auto-repeat interval and the
	// fastest deliberate double press.
	RepeatWindow time.Duration
	EnableMouse  bool
	EnableFocus  bool
}

// DefaultConfig returns the default terminal configuration.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		RepeatWindow:  60 * time.Millisecond,
		EnableMouse:   true,
		EnableFocus:   true,
	}
}

// Window is a terminal platform window. It implements platform.Source and
// platform.Capturer.
type Window struct {
	mu     sync.Mutex
	screen tcell.Screen
	config Config

	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once

	conv   converter
	closed bool
}

// New creates a window on the controlling terminal.
func New(config Config) (*Window, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, config), nil
}

// NewWithScreen creates a window on an existing screen.
func NewWithScreen(screen tcell.Screen, config Config) *Window {
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	if config.RepeatWindow < 0 {
		config.RepeatWindow = 0
	}
	return &Window{
		screen: screen,
		config: config,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		conv:   converter{repeatWindow: config.RepeatWindow},
	}
}

// Init initializes the screen and starts reading events.
func (w *Window) Init() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.screen.Init(); err != nil {
		return err
	}
	if w.config.EnableMouse {
		w.screen.EnableMouse()
	}
	if w.config.EnableFocus {
		w.screen.EnableFocus()
	}
	w.screen.HideCursor()
	w.screen.Clear()

	go w.pump()
	return nil
}

// pump forwards screen events to the loop goroutine.
func (w *Window) pump() {
	defer close(w.events)
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case w.events <- ev:
		case <-w.quit:
			return
		}
	}
}

// Fini restores the terminal. It is safe to call more than once.
func (w *Window) Fini() {
	w.once.Do(func() {
		close(w.quit)
		w.mu.Lock()
		defer w.mu.Unlock()
		w.screen.Fini()
	})
}

// Size returns the screen size in cells.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.screen.Size()
}

// Bounds returns the client area for enter/leave detection.
func (w *Window) Bounds() platform.Bounds {
	width, height := w.Size()
	return platform.Bounds{Width: clamp16(width), Height: clamp16(height)}
}

// SetCapture implements platform.Capturer. Terminals report the pointer
// whenever mouse tracking is on, so there is nothing to acquire.
func (w *Window) SetCapture() {}

// ReleaseCapture implements platform.Capturer.
func (w *Window) ReleaseCapture() {}

// Next implements platform.Source. It waits up to the frame interval for
// the first event, then drains whatever else is already queued. Key-ups
// whose keys have gone quiet are delivered with the batch.
//
// On the interrupt key Next returns the batch collected so far, every
// held key-up included, together with platform.ErrClosed.
func (w *Window) Next(ctx context.Context) ([]platform.Notification, error) {
	if w.closed {
		return nil, platform.ErrClosed
	}

	wait := w.config.FrameInterval
	if due, ok := w.conv.nextRelease(); ok {
		wait = min(wait, max(time.Until(due), 0))
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	var out []platform.Notification
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return w.conv.release(time.Now()), nil
	case ev, ok := <-w.events:
		if !ok {
			return w.close(out), nil
		}
		if !w.handle(ev, &out) {
			return w.close(out), platform.ErrClosed
		}
	}

	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				return w.close(out), nil
			}
			if !w.handle(ev, &out) {
				return w.close(out), platform.ErrClosed
			}
		default:
			return append(out, w.conv.release(time.Now())...), nil
		}
	}
}

// handle converts ev and appends the result. It returns false on the
// interrupt key.
func (w *Window) handle(ev tcell.Event, out *[]platform.Notification) bool {
	res := w.conv.convert(ev)
	if res.interrupt {
		return false
	}
	*out = append(*out, res.now...)
	return true
}

// close marks the window closed and flushes every held key-up onto out.
func (w *Window) close(out []platform.Notification) []platform.Notification {
	w.closed = true
	return append(out, w.conv.releaseAll()...)
}

func clamp16(v int) int16 {
	switch {
	case v < 0:
		return 0
	case v > 32767:
		return 32767
	}
	return int16(v)
}
