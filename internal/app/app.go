// Package app wires the input core into a running program: configuration,
// logging, the notification source, the consumer chain and the loop that
// drives them.
//
// Each loop iteration pulls one batch from the source, translates every
// notification into the input context, then hands one frame to the
// consumers. A configured Lua script runs first, then the built-in line
// editor.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/dshills/inputcore/internal/config"
	"github.com/dshills/inputcore/internal/input"
	"github.com/dshills/inputcore/internal/input/key"
	"github.com/dshills/inputcore/internal/input/mouse"
	"github.com/dshills/inputcore/internal/input/platform"
	"github.com/dshills/inputcore/internal/journal"
	"github.com/dshills/inputcore/internal/script"
)

// healthLatency is the translate latency above which input is reported
// unhealthy at exit.
const healthLatency = 5 * time.Millisecond

// Options configures the application. Non-empty fields override the
// matching configuration settings.
type Options struct {
	// ConfigPath is the TOML configuration file. Ignored when Config is set.
	ConfigPath string
	// Config is a preloaded configuration.
	Config *config.Config

	// ReplayPath is a journal or scenario to replay instead of reading a
	// live source.
	ReplayPath string
	// Realtime paces replay by the recorded offsets.
	Realtime bool

	// RecordPath is where the session journal is saved on exit.
	RecordPath string
	// ScriptPath is a Lua frame consumer.
	ScriptPath string
	// LogLevel overrides the configured log level.
	LogLevel string

	// Dump writes the final input snapshot and statistics as JSON to
	// Output on exit.
	Dump bool
	// Output receives dumps. Defaults to os.Stdout.
	Output io.Writer
	// LogOutput receives log lines when no log file is configured.
	// Defaults to os.Stderr.
	LogOutput io.Writer
}

// Bounded is implemented by sources that know their client area.
type Bounded interface {
	Bounds() platform.Bounds
}

// Application owns the input context and runs the frame loop.
type Application struct {
	opts    Options
	config  *config.Config
	logger  *Logger
	logFile *os.File

	input     *input.Context
	source    platform.Source
	player    *journal.Player
	recorder  *journal.Recorder
	script    *script.Consumer
	editor    *Editor
	consumers input.Chain

	metrics *Metrics
	running atomic.Bool
}

// New builds the application. src is the live notification source; it may
// be nil when opts.ReplayPath is set. capt receives pointer capture
// requests and may be nil. display shows the line editor and may be nil.
func New(opts Options, src platform.Source, capt platform.Capturer, display Display) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}

	if err := app.loadConfig(); err != nil {
		return nil, err
	}
	if err := app.setupLogger(); err != nil {
		return nil, err
	}

	bounds := platform.Bounds{
		Width:  int16(app.config.Window.Width),
		Height: int16(app.config.Window.Height),
	}

	if opts.ReplayPath != "" {
		player, jbounds, err := app.openReplay(opts.ReplayPath)
		if err != nil {
			app.closeLog()
			return nil, err
		}
		app.player = player
		src = player
		if jbounds.Width > 0 && jbounds.Height > 0 {
			bounds = jbounds
		}
	} else if b, ok := src.(Bounded); ok {
		bounds = b.Bounds()
	}
	if src == nil {
		app.closeLog()
		return nil, ErrNoSource
	}

	if capt == nil {
		capt = platform.NopCapturer{}
	}
	app.input = input.NewContext(input.Config{
		Keyboard: key.Config{QueueCapacity: app.config.Input.QueueCapacity},
		Pointer: mouse.Config{
			QueueCapacity: app.config.Input.QueueCapacity,
			WheelNotch:    app.config.Input.WheelNotch,
		},
		Bounds: bounds,
	}, input.WithCapturer(capt))

	app.source = src
	if path := app.config.Journal.Record; path != "" {
		app.recorder = journal.NewRecorder(src, bounds)
		app.source = app.recorder
		app.logger.Info("recording to %s", path)
	}

	if path := app.config.Script.Path; path != "" {
		sc, err := script.Load(path, script.WithLogger(app.logger.WithComponent("script")))
		if err != nil {
			app.closeLog()
			return nil, NewComponentError("script", "load", err)
		}
		app.script = sc
		app.consumers = append(app.consumers, sc)
		app.logger.Info("loaded script %s", path)
	}

	if display == nil && opts.ReplayPath != "" {
		display = NewLogDisplay(app.output())
	}
	app.editor = NewEditor(display, app.config.Input.QueueCapacity, app.logger.WithComponent("editor"))
	app.consumers = append(app.consumers, app.editor)

	return app, nil
}

func (app *Application) loadConfig() error {
	cfg := app.opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(app.opts.ConfigPath)
		if err != nil {
			return NewComponentError("config", "load", err)
		}
	}

	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.RecordPath != "" {
		cfg.Journal.Record = app.opts.RecordPath
	}
	if app.opts.ScriptPath != "" {
		cfg.Script.Path = app.opts.ScriptPath
	}
	if err := cfg.Validate(); err != nil {
		return NewComponentError("config", "validate", err)
	}

	app.config = cfg
	return nil
}

func (app *Application) setupLogger() error {
	out := app.opts.LogOutput
	if path := app.config.Logging.File; path != "" {
		f, err := OpenLogFile(path)
		if err != nil {
			return NewComponentError("logging", "open", err)
		}
		app.logFile = f
		out = f
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.config.Logging.Level)
	if out != nil {
		cfg.Output = out
	}
	app.logger = NewLogger(cfg)
	return nil
}

func (app *Application) openReplay(path string) (*journal.Player, platform.Bounds, error) {
	summary, err := journal.Peek(path)
	if err != nil {
		return nil, platform.Bounds{}, NewComponentError("journal", "peek", err)
	}
	app.logger.Info("replaying %s (%s)", path, summary)

	j, err := journal.Load(path)
	if err != nil {
		return nil, platform.Bounds{}, NewComponentError("journal", "load", err)
	}

	var opts []journal.PlayerOption
	if app.opts.Realtime {
		opts = append(opts, journal.WithRealtime())
	}
	player, err := journal.NewPlayer(j, opts...)
	if err != nil {
		return nil, platform.Bounds{}, NewComponentError("journal", "replay", err)
	}

	return player, j.Bounds, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Input returns the input context.
func (app *Application) Input() *input.Context {
	return app.input
}

// Editor returns the built-in line editor.
func (app *Application) Editor() *Editor {
	return app.editor
}

// Metrics returns the loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// IsRunning returns true while Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run drives the loop until the source closes, a consumer quits or ctx is
// cancelled, then saves the journal and releases resources. A normal stop
// returns nil.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.logger.Info("started (queue capacity %d, bounds %dx%d)",
		app.config.Input.QueueCapacity, app.input.Bounds().Width, app.input.Bounds().Height)

	err := app.loop(ctx)
	switch {
	case err == nil,
		errors.Is(err, platform.ErrClosed),
		errors.Is(err, ErrQuit),
		errors.Is(err, script.ErrQuit),
		errors.Is(err, context.Canceled):
		app.logger.Info("stopped: %v", stopReason(err))
		err = nil
	default:
		app.logger.Error("loop failed: %v", err)
	}

	var errs ErrorList
	errs.Add(err)
	errs.Add(app.finish())
	return errs.AsError()
}

func stopReason(err error) string {
	if err == nil {
		return "close requested"
	}
	return err.Error()
}

// loop runs frames until an error ends it. Panics from contract
// violations are returned as RecoveredPanicError.
func (app *Application) loop(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	for {
		batch, err := app.source.Next(ctx)
		if err != nil && len(batch) == 0 {
			return err
		}
		// A closing source may hand over its last notifications with the
		// error; they get one final frame.
		last := err
		app.metrics.RecordBatch(len(batch))

		closing := false
		for _, n := range batch {
			if n.Kind == platform.KindClose {
				closing = true
			}
			if err := app.input.Translate(n); err != nil {
				return NewComponentError("translator", n.Kind.String(), err)
			}
		}

		frame := app.input.NextFrame()
		start := time.Now()
		if err := app.consumers.Frame(frame); err != nil {
			return err
		}
		app.metrics.RecordFrame(time.Since(start))

		if closing || last != nil {
			return last
		}
	}
}

// finish saves the journal, writes the dump and releases the script and
// log file, collecting every failure.
func (app *Application) finish() error {
	var errs ErrorList

	if app.recorder != nil {
		path := app.config.Journal.Record
		if err := app.recorder.Save(path); err != nil {
			errs.Add(NewComponentError("journal", "save", err))
		} else {
			app.logger.Info("saved %d entries to %s", app.recorder.Len(), path)
		}
	}

	if app.player != nil {
		if n := app.player.Remaining(); n > 0 {
			app.logger.Info("replay stopped with %d batches left", n)
		}
	}

	if app.opts.Dump {
		errs.Add(app.dump())
	}

	stats := app.input.Metrics().Stats()
	app.logger.Info("processed %d notifications in %d frames", stats.Total, stats.Frames)
	if h := app.input.HealthCheck(healthLatency); !h.Healthy {
		app.logger.Warn("input unhealthy: %s", h.Message)
	}

	if app.script != nil {
		if err := app.script.Close(); err != nil {
			errs.Add(NewComponentError("script", "close", err))
		}
	}
	app.closeLog()
	return errs.AsError()
}

// dump writes the input snapshot, then the statistics, as JSON lines.
func (app *Application) dump() error {
	w := app.output()

	snap, err := app.input.Snapshot().JSON()
	if err != nil {
		return NewComponentError("dump", "snapshot", err)
	}
	if _, err := fmt.Fprintln(w, snap); err != nil {
		return NewComponentError("dump", "write", err)
	}

	stats, err := app.input.Metrics().Stats().JSON()
	if err != nil {
		return NewComponentError("dump", "stats", err)
	}
	if _, err := fmt.Fprintln(w, stats); err != nil {
		return NewComponentError("dump", "write", err)
	}
	return nil
}

func (app *Application) output() io.Writer {
	if app.opts.Output != nil {
		return app.opts.Output
	}
	return os.Stdout
}

func (app *Application) closeLog() {
	if app.logFile != nil {
		app.logFile.Close()
		app.logFile = nil
	}
}
