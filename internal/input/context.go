package input

import (
	"github.com/dshills/inputcore/internal/input/key"
	"github.com/dshills/inputcore/internal/input/mouse"
	"github.com/dshills/inputcore/internal/input/platform"
)

// Default client-area size used until the platform reports a resize.
const (
	DefaultWidth  = 1000
	DefaultHeight = 750
)

// Config configures an input context.
type Config struct {
	Keyboard key.Config
	Pointer  mouse.Config

	// Bounds is the initial client area for enter/leave detection.
	Bounds platform.Bounds
}

// DefaultConfig returns the default context configuration.
func DefaultConfig() Config {
	return Config{
		Keyboard: key.DefaultConfig(),
		Pointer:  mouse.DefaultConfig(),
		Bounds:   platform.Bounds{Width: DefaultWidth, Height: DefaultHeight},
	}
}

// Option configures a Context.
type Option func(*Context)

// WithCapturer sets the platform capture mechanism used on enter and leave.
func WithCapturer(c platform.Capturer) Option {
	return func(ctx *Context) {
		if c != nil {
			ctx.capturer = c
		}
	}
}

// WithMetrics sets the metrics tracker.
func WithMetrics(m *Metrics) Option {
	return func(ctx *Context) {
		if m != nil {
			ctx.metrics = m
		}
	}
}

// Context is the single owner of the keyboard and pointer state. The
// translator mutates it and frame consumers read it, all on the loop
// goroutine.
type Context struct {
	keyboard *key.State
	pointer  *mouse.State

	bounds   platform.Bounds
	capturer platform.Capturer
	captured bool

	metrics *Metrics
	seq     uint64
}

// NewContext creates a context with empty state.
func NewContext(config Config, opts ...Option) *Context {
	bounds := config.Bounds
	if bounds.Width <= 0 {
		bounds.Width = DefaultWidth
	}
	if bounds.Height <= 0 {
		bounds.Height = DefaultHeight
	}

	c := &Context{
		keyboard: key.NewState(config.Keyboard),
		pointer:  mouse.NewState(config.Pointer),
		bounds:   bounds,
		capturer: platform.NopCapturer{},
		metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Keyboard returns the keyboard state.
func (c *Context) Keyboard() *key.State {
	return c.keyboard
}

// Pointer returns the pointer state.
func (c *Context) Pointer() *mouse.State {
	return c.pointer
}

// Bounds returns the current client area.
func (c *Context) Bounds() platform.Bounds {
	return c.bounds
}

// Captured reports whether pointer capture is currently held.
func (c *Context) Captured() bool {
	return c.captured
}

// Metrics returns the metrics tracker.
func (c *Context) Metrics() *Metrics {
	return c.metrics
}

// NextFrame returns the view handed to consumers for one loop iteration.
func (c *Context) NextFrame() *Frame {
	c.seq++
	c.metrics.RecordFrame()
	return &Frame{
		Seq:      c.seq,
		Keyboard: c.keyboard,
		Pointer:  c.pointer,
	}
}

// Reset clears both states' queues and the keyboard bitmap, as after a
// focus change.
func (c *Context) Reset() {
	c.keyboard.Reset()
	c.pointer.Reset()
}

func (c *Context) setCapture() {
	if c.captured {
		return
	}
	c.capturer.SetCapture()
	c.captured = true
}

func (c *Context) releaseCapture() {
	if !c.captured {
		return
	}
	c.capturer.ReleaseCapture()
	c.captured = false
}
