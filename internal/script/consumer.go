package script

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputcore/internal/input"
	"github.com/dshills/inputcore/internal/input/key"
)

// FrameHandler is the global function a script must define.
const FrameHandler = "on_frame"

// Logger receives input.log messages.
type Logger interface {
	Info(msg string, args ...any)
}

// Option configures a Consumer.
type Option func(*Consumer)

// WithLogger sets the logger for input.log. Without one, messages are
// dropped.
func WithLogger(l Logger) Option {
	return func(c *Consumer) {
		c.logger = l
	}
}

// WithTimeout bounds each on_frame call.
func WithTimeout(d time.Duration) Option {
	return func(c *Consumer) {
		c.timeout = d
	}
}

// Consumer is an input.Consumer that hands each frame to a Lua script.
type Consumer struct {
	state   *State
	logger  Logger
	timeout time.Duration

	// frame is the frame being handled, nil between calls.
	frame *input.Frame
	calls uint64
}

var _ input.Consumer = (*Consumer)(nil)

// Load reads the script at path.
func Load(path string, opts ...Option) (*Consumer, error) {
	return newConsumer(func(s *State) error { return s.DoFile(path) }, opts)
}

// LoadString loads a script from source.
func LoadString(source string, opts ...Option) (*Consumer, error) {
	return newConsumer(func(s *State) error { return s.DoString(source) }, opts)
}

func newConsumer(load func(*State) error, opts []Option) (*Consumer, error) {
	c := &Consumer{}
	for _, opt := range opts {
		opt(c)
	}

	c.state = NewState(c.timeout)
	c.state.RegisterModule("input", c.module())

	if err := load(c.state); err != nil {
		c.state.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	if c.state.L.GetGlobal(FrameHandler).Type() != lua.LTFunction {
		c.state.Close()
		return nil, fmt.Errorf("load script: %w: %s not defined", ErrNotFunction, FrameHandler)
	}
	return c, nil
}

// Frame implements input.Consumer. It returns ErrQuit when on_frame
// returns "quit".
func (c *Consumer) Frame(f *input.Frame) error {
	c.frame = f
	defer func() { c.frame = nil }()

	arg := c.state.L.NewTable()
	arg.RawSetString("seq", lua.LNumber(f.Seq))

	results, err := c.state.Call(FrameHandler, arg)
	if err != nil {
		return fmt.Errorf("%s: %w", FrameHandler, err)
	}
	c.calls++

	if len(results) > 0 && lua.LVAsString(results[0]) == "quit" {
		return ErrQuit
	}
	return nil
}

// Calls returns how many frames the script has handled.
func (c *Consumer) Calls() uint64 {
	return c.calls
}

// Close releases the Lua state.
func (c *Consumer) Close() error {
	return c.state.Close()
}

// module builds the input table. Every function reads the current frame,
// so calling them outside on_frame raises a Lua error.
func (c *Consumer) module() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"pop_key": func(L *lua.LState) int {
			ev, ok := c.current(L).Keyboard.PopKeyEvent()
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			t := L.NewTable()
			t.RawSetString("transition", lua.LString(ev.Transition.String()))
			t.RawSetString("code", lua.LNumber(ev.Code))
			L.Push(t)
			return 1
		},
		"pop_char": func(L *lua.LState) int {
			r, ok := c.current(L).Keyboard.PopChar()
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LString(string(r)))
			return 1
		},
		"is_pressed": func(L *lua.LState) int {
			code := checkCode(L)
			L.Push(lua.LBool(c.current(L).Keyboard.IsPressed(code)))
			return 1
		},
		"is_pressed_clear": func(L *lua.LState) int {
			code := checkCode(L)
			L.Push(lua.LBool(c.current(L).Keyboard.IsPressedAndClear(code)))
			return 1
		},
		"auto_repeat": func(L *lua.LState) int {
			L.Push(lua.LBool(c.current(L).Keyboard.AutoRepeatEnabled()))
			return 1
		},
		"pop_pointer": func(L *lua.LState) int {
			ev, ok := c.current(L).Pointer.PopEvent()
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			t := L.NewTable()
			t.RawSetString("kind", lua.LString(ev.Kind.String()))
			t.RawSetString("x", lua.LNumber(ev.X))
			t.RawSetString("y", lua.LNumber(ev.Y))
			t.RawSetString("left", lua.LBool(ev.Left))
			t.RawSetString("right", lua.LBool(ev.Right))
			t.RawSetString("wheel", lua.LBool(ev.Wheel))
			L.Push(t)
			return 1
		},
		"position": func(L *lua.LState) int {
			x, y := c.current(L).Pointer.Position()
			L.Push(lua.LNumber(x))
			L.Push(lua.LNumber(y))
			return 2
		},
		"inside": func(L *lua.LState) int {
			L.Push(lua.LBool(c.current(L).Pointer.Inside()))
			return 1
		},
		"log": func(L *lua.LState) int {
			msg := L.CheckString(1)
			if c.logger != nil {
				c.logger.Info("script: %s", msg)
			}
			return 0
		},
	}
}

func (c *Consumer) current(L *lua.LState) *input.Frame {
	if c.frame == nil {
		L.RaiseError("input is only available inside %s", FrameHandler)
	}
	return c.frame
}

// checkCode reads a key code argument, rejecting codes outside 0..255.
func checkCode(L *lua.LState) key.Code {
	n := L.CheckInt(1)
	if n < 0 || n >= key.NumCodes {
		L.ArgError(1, "key code out of range")
	}
	return key.Code(n)
}
