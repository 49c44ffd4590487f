// Package main is the entry point for inputcore, an interactive and
// replayable demo of the input core.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dshills/inputcore/internal/app"
	"github.com/dshills/inputcore/internal/config"
	"github.com/dshills/inputcore/internal/journal"
	"github.com/dshills/inputcore/internal/platform/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	opts     app.Options
	watch    bool
	realtime bool
	info     string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	if f.info != "" {
		return report(printInfo(os.Stdout, f.info))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(f.opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	f.opts.Config = cfg

	if f.opts.ReplayPath != "" {
		f.opts.Realtime = f.realtime
		if f.watch {
			return watchReplay(ctx, f.opts)
		}
		return report(replay(ctx, f.opts))
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal; use -replay to run a journal")
		return 1
	}
	return report(interactive(ctx, f.opts))
}

// interactive runs the line editor on the terminal.
func interactive(ctx context.Context, opts app.Options) error {
	cfg := opts.Config
	win, err := terminal.New(terminal.Config{
		FrameInterval: cfg.Terminal.FrameInterval.Std(),
		RepeatWindow:  cfg.Terminal.RepeatWindow.Std(),
		EnableMouse:   cfg.Terminal.EnableMouse,
		EnableFocus:   cfg.Terminal.EnableFocus,
	})
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := win.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer win.Fini()

	// The screen owns stdout and stderr until Fini.
	if cfg.Logging.File == "" {
		opts.LogOutput = io.Discard
	}

	a, err := app.New(opts, win, win, newScreenDisplay(win))
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// replay runs a journal or scenario once.
func replay(ctx context.Context, opts app.Options) error {
	a, err := app.New(opts, nil, nil, nil)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// watchReplay replays the journal, then again each time it is written,
// until interrupted.
func watchReplay(ctx context.Context, opts app.Options) int {
	if err := replay(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "watching %s\n", opts.ReplayPath)

	err := journal.Watch(ctx, opts.ReplayPath, journal.DefaultDebounce, func(_ *journal.Journal, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "--- %s changed at %s\n", opts.ReplayPath, time.Now().Format(time.TimeOnly))

		// New applies option overrides to the config it is given.
		cfg := *opts.Config
		run := opts
		run.Config = &cfg
		if err := replay(ctx, run); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// printInfo writes a one-line summary of a journal or scenario.
func printInfo(w io.Writer, path string) error {
	s, err := journal.Peek(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s\n", path, s)
	return err
}

func report(err error) int {
	if err == nil || errors.Is(err, app.ErrQuit) {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.opts.ReplayPath, "replay", "", "Replay a journal (.json) or scenario (.yaml) instead of reading the terminal")
	flag.BoolVar(&f.realtime, "realtime", false, "Pace -replay by the recorded timing")
	flag.BoolVar(&f.watch, "watch", false, "With -replay, replay again whenever the file changes")
	flag.StringVar(&f.info, "info", "", "Print a journal's header summary and exit")
	flag.StringVar(&f.opts.RecordPath, "record", "", "Record the session journal to this path")
	flag.StringVar(&f.opts.ScriptPath, "script", "", "Lua frame consumer to run before the line editor")
	flag.StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&f.opts.Dump, "dump", false, "Print the final input snapshot and statistics as JSON")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inputcore - keyboard and pointer input core demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inputcore [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inputcore -record session.json      Type, then Escape to save the journal\n")
		fmt.Fprintf(os.Stderr, "  inputcore -replay session.json -dump Replay and print the final state\n")
		fmt.Fprintf(os.Stderr, "  inputcore -replay drag.yaml -watch   Replay a scenario on every edit\n")
		fmt.Fprintf(os.Stderr, "  inputcore -info session.json         Show when and how much was recorded\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("inputcore %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.watch && f.opts.ReplayPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -watch needs -replay")
		os.Exit(2)
	}

	switch strings.ToLower(f.opts.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.opts.LogLevel)
		os.Exit(2)
	}

	return f
}
