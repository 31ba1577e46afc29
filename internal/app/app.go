// Package app provides the main application structure and coordination
// for imepad. It owns the textarea, feeds it host events one at a time, and
// redraws the configured surfaces after every change.
package app

import (
	"sync/atomic"

	"github.com/dshills/imepad/internal/config"
	"github.com/dshills/imepad/internal/input/ime"
	"github.com/dshills/imepad/internal/renderer/ansi"
	"github.com/dshills/imepad/internal/renderer/backend"
	"github.com/dshills/imepad/internal/textarea"
)

// EventRecorder receives every dispatched host event.
type EventRecorder interface {
	Record(ev ime.Event)
}

// Application is the central coordinator for imepad.
// All methods except IsRunning must be called from the goroutine running Run.
type Application struct {
	state   *textarea.State
	config  *config.Config
	console *ansi.Console
	backend backend.Backend

	logger   *Logger
	metrics  *Metrics
	recorder EventRecorder

	// autoPlain is the console's plain mode as detected at startup.
	autoPlain bool

	// echo holds recent event lines painted below the textarea in
	// backend mode.
	echo []string

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// Config supplies hints, theme, and echo settings. Nil uses defaults.
	Config *config.Config

	// Console receives frames as ANSI text. Optional.
	Console *ansi.Console

	// Backend receives frames as cells and, when Run is given no event
	// channel, supplies host events. Optional.
	Backend backend.Backend

	// Logger receives diagnostics. Nil discards them.
	Logger *Logger

	// Recorder receives every dispatched event. Optional.
	Recorder EventRecorder
}

// New creates a new Application with the given options.
func New(opts Options) *Application {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	app := &Application{
		state: textarea.New(
			textarea.WithHint(cfg.Textarea.Hint),
			textarea.WithUnfocusedHint(cfg.Textarea.UnfocusedHint),
			textarea.WithTheme(ThemeFromConfig(cfg)),
		),
		console:  opts.Console,
		backend:  opts.Backend,
		logger:   logger,
		metrics:  NewMetrics(),
		recorder: opts.Recorder,
	}
	if app.console != nil {
		app.autoPlain = app.console.Plain()
	}
	app.config = cfg
	app.configureOutput(cfg)
	return app
}

// State returns the textarea.
func (app *Application) State() *textarea.State {
	return app.state
}

// Config returns the configuration currently in effect.
func (app *Application) Config() *config.Config {
	return app.config
}

// Metrics returns the session counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// ApplyConfig swaps in a new configuration and redraws.
func (app *Application) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	app.applyConfig(cfg)
	app.metrics.RecordReload()
	app.logger.WithComponent("config").Info("configuration applied")
	app.redraw()
}

func (app *Application) applyConfig(cfg *config.Config) {
	app.config = cfg

	app.state.SetHint(cfg.Textarea.Hint)
	app.state.SetUnfocusedHint(cfg.Textarea.UnfocusedHint)
	app.state.SetTheme(ThemeFromConfig(cfg))
	app.configureOutput(cfg)
}

// configureOutput applies the console and logging sections of cfg.
func (app *Application) configureOutput(cfg *config.Config) {
	if app.console != nil {
		app.console.SetPlain(cfg.Console.Plain || app.autoPlain)
	}
	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
}

// ThemeFromConfig builds the textarea theme for cfg. An unparsable preedit
// color leaves the default foreground.
func ThemeFromConfig(cfg *config.Config) textarea.Theme {
	theme := textarea.DefaultTheme()
	if cfg.Textarea.Caret != "" {
		theme.Caret = cfg.CaretRune()
	}
	if fg, err := cfg.PreeditForeground(); err == nil && !fg.IsDefault() {
		theme.Preedit = theme.Preedit.WithForeground(fg)
		theme.Selection = theme.Selection.WithForeground(fg)
	}
	return theme
}
