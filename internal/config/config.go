package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/inputcore/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INPUTCORE_"

// Config is the complete inputcore configuration. It is read once at
// startup; nothing in it changes while the loop runs.
type Config struct {
	Input    InputConfig    `toml:"input"`
	Window   WindowConfig   `toml:"window"`
	Terminal TerminalConfig `toml:"terminal"`
	Logging  LoggingConfig  `toml:"logging"`
	Journal  JournalConfig  `toml:"journal"`
	Script   ScriptConfig   `toml:"script"`
}

// InputConfig sizes the input queues.
type InputConfig struct {
	// QueueCapacity bounds every event queue; the oldest entry is evicted
	// when a queue is full.
	QueueCapacity int `toml:"queue_capacity"`
	// WheelNotch is the raw wheel delta of one discrete notch.
	WheelNotch int `toml:"wheel_notch"`
}

// WindowConfig is the initial client area used for enter/leave detection.
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// TerminalConfig configures the terminal platform window.
type TerminalConfig struct {
	// FrameInterval is the longest a frame waits for input.
	FrameInterval Duration `toml:"frame_interval"`
	// RepeatWindow is how long a key counts as held after its last press;
	// a press within it is reported as auto-repeat.
	RepeatWindow Duration `toml:"repeat_window"`
	EnableMouse  bool     `toml:"enable_mouse"`
	EnableFocus  bool     `toml:"enable_focus"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output. Empty means stderr.
	File string `toml:"file"`
}

// JournalConfig configures notification recording.
type JournalConfig struct {
	// Record is the path a session journal is written to on exit. Empty
	// disables recording.
	Record string `toml:"record"`
}

// ScriptConfig configures the Lua frame consumer.
type ScriptConfig struct {
	// Path is the Lua script to load. Empty disables scripting.
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			QueueCapacity: 16,
			WheelNotch:    120,
		},
		Window: WindowConfig{
			Width:  1000,
			Height: 750,
		},
		Terminal: TerminalConfig{
			FrameInterval: Duration(16 * time.Millisecond),
			RepeatWindow:  Duration(60 * time.Millisecond),
			EnableMouse:   true,
			EnableFocus:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path and
// INPUTCORE_ environment variables, in increasing precedence, and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.NewTOMLLoader(path), loader.NewEnvLoader(EnvPrefix))
}

// LoadFrom builds the configuration from the given layers, later layers
// overriding earlier ones.
func LoadFrom(layers ...loader.Loader) (*Config, error) {
	merged := make(map[string]any)
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a merged layer map over c. Keys that match no setting are
// rejected.
func (c *Config) apply(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding merged config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return &ValidationError{
				Path:    unknownKeys(strict),
				Message: "unknown setting",
				Code:    ErrCodeUnknownSetting,
			}
		}
		return &ValidationError{
			Path:    "config",
			Message: err.Error(),
			Code:    ErrCodeTypeMismatch,
		}
	}
	return nil
}

func unknownKeys(e *toml.StrictMissingError) string {
	var buf bytes.Buffer
	for i, de := range e.Errors {
		if i > 0 {
			buf.WriteString(", ")
		}
		for j, k := range de.Key() {
			if j > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(k)
		}
	}
	return buf.String()
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any, code ValidationErrorCode) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
		}
	}

	check(c.Input.QueueCapacity >= 1 && c.Input.QueueCapacity <= 4096,
		"input.queue_capacity", "must be between 1 and 4096", c.Input.QueueCapacity, ErrCodeOutOfRange)
	check(c.Input.WheelNotch >= 1 && c.Input.WheelNotch <= 32767,
		"input.wheel_notch", "must be between 1 and 32767", c.Input.WheelNotch, ErrCodeOutOfRange)
	check(c.Window.Width >= 1 && c.Window.Width <= 32767,
		"window.width", "must be between 1 and 32767", c.Window.Width, ErrCodeOutOfRange)
	check(c.Window.Height >= 1 && c.Window.Height <= 32767,
		"window.height", "must be between 1 and 32767", c.Window.Height, ErrCodeOutOfRange)
	check(c.Terminal.FrameInterval > 0,
		"terminal.frame_interval", "must be positive", c.Terminal.FrameInterval, ErrCodeOutOfRange)
	check(c.Terminal.RepeatWindow >= 0,
		"terminal.repeat_window", "must not be negative", c.Terminal.RepeatWindow, ErrCodeOutOfRange)

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		check(false, "logging.level", "must be one of debug, info, warn, error", c.Logging.Level, ErrCodeInvalidEnum)
	}

	return errors.Join(errs...)
}

// Duration is a time.Duration that reads and writes as a string such as
// "16ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
