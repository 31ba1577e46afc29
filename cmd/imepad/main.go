// Package main is the entry point for imepad, a single-line IME textarea
// for the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"

	"github.com/dshills/imepad/internal/app"
	"github.com/dshills/imepad/internal/config"
	"github.com/dshills/imepad/internal/input/ime"
	"github.com/dshills/imepad/internal/input/script"
	"github.com/dshills/imepad/internal/renderer/ansi"
	"github.com/dshills/imepad/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	configPath string
	scriptPath string
	recordPath string
	delay      time.Duration
	watch      bool

	// Settings that override the configuration file when given.
	hint     string
	plain    bool
	logLevel string
	logFile  string
	set      map[string]bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appOpts := app.Options{Config: cfg, Logger: logger}

	var recorder *script.Recorder
	if opts.recordPath != "" {
		recorder = script.NewRecorder()
		appOpts.Recorder = recorder
	}

	var events <-chan ime.Event
	if opts.scriptPath != "" {
		s, err := script.Load(opts.scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger.WithComponent("script").Info("replaying %d events from %s", len(s.Events), opts.scriptPath)

		profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
		appOpts.Console = ansi.NewConsole(os.Stdout, ansi.WithEncoder(ansi.NewEncoder(profile)))
		events = play(ctx, s, opts.delay, logger)
	} else {
		term, err := backend.NewTerminal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
			return 1
		}
		appOpts.Backend = term
	}

	application := app.New(appOpts)

	var reloads <-chan *config.Config
	if opts.watch && opts.configPath != "" {
		cw, err := app.WatchConfig(ctx, opts.configPath, opts.overlay, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer cw.Close()
		reloads = cw.Reloads()
	}

	runErr := application.Run(ctx, events, reloads)

	if recorder != nil {
		if err := saveRecording(opts.recordPath, recorder); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to save recording: %v\n", err)
			return 1
		}
		logger.WithComponent("script").Info("recorded %d events to %s", recorder.Len(), opts.recordPath)
	}

	// Check if it's a normal quit using errors.Is for wrapped errors
	if runErr == nil || errors.Is(runErr, app.ErrQuit) || errors.Is(runErr, context.Canceled) {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	return 1
}

// loadConfig loads the configuration file and environment, then applies
// the command line on top. The result is validated after the overlay so
// flag values are checked the same way as file values.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	opts.overlay(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// play replays s on a new channel, closing it when playback ends.
func play(ctx context.Context, s *script.Script, delay time.Duration, logger *app.Logger) <-chan ime.Event {
	events := make(chan ime.Event)
	player := script.NewPlayer(s, script.WithDelay(delay))
	go func() {
		defer close(events)
		if err := player.Play(ctx, events); err != nil {
			logger.WithComponent("script").Debug("playback stopped: %v", err)
		}
	}()
	return events
}

func saveRecording(path string, recorder *script.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := recorder.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// newLogger writes to the configured log file. Without one, log output is
// discarded so it cannot corrupt the live line.
func newLogger(cfg *config.Config) (*app.Logger, func(), error) {
	loggerCfg := app.DefaultLoggerConfig()
	loggerCfg.Level = app.ParseLogLevel(cfg.Logging.Level)
	loggerCfg.Output = io.Discard

	if cfg.Logging.File == "" {
		return app.NewLogger(loggerCfg), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	loggerCfg.Output = f
	return app.NewLogger(loggerCfg), func() { _ = f.Close() }, nil
}

// overlay applies explicitly given flags on top of cfg.
func (o *options) overlay(cfg *config.Config) {
	if o.set["hint"] {
		cfg.Textarea.Hint = o.hint
	}
	if o.set["plain"] {
		cfg.Console.Plain = o.plain
	}
	if o.set["log-level"] {
		cfg.Logging.Level = o.logLevel
	}
	if o.set["log-file"] {
		cfg.Logging.File = o.logFile
	}
}

func parseFlags() *options {
	opts := &options{set: make(map[string]bool)}
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Replay host events from a YAML script")
	flag.StringVar(&opts.scriptPath, "s", "", "Replay host events from a YAML script (shorthand)")
	flag.StringVar(&opts.recordPath, "record", "", "Write the session's host events to a YAML script")
	flag.StringVar(&opts.recordPath, "r", "", "Write the session's host events to a YAML script (shorthand)")
	flag.DurationVar(&opts.delay, "delay", 0, "Pause between replayed events")
	flag.StringVar(&opts.hint, "hint", "", "Placeholder shown while the textarea is empty")
	flag.BoolVar(&opts.plain, "plain", false, "Disable escape sequences in script output")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "imepad - IME-aware textarea for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: imepad [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  imepad                          Type into the textarea (Esc quits)\n")
		fmt.Fprintf(os.Stderr, "  imepad -s session.yaml          Replay a composition session\n")
		fmt.Fprintf(os.Stderr, "  imepad -s session.yaml -plain   Replay without escape sequences\n")
		fmt.Fprintf(os.Stderr, "  imepad -r session.yaml          Record what you type\n")
		fmt.Fprintf(os.Stderr, "  imepad -c imepad.toml -watch    Live-reload settings\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("imepad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", flag.Args())
		os.Exit(1)
	}

	return opts
}
