package app

import (
	"context"
	"errors"

	"github.com/dshills/imepad/internal/config"
	"github.com/dshills/imepad/internal/input/ime"
	"github.com/dshills/imepad/internal/input/key"
	"github.com/dshills/imepad/internal/renderer/backend"
	"github.com/dshills/imepad/internal/renderer/core"
	"github.com/dshills/imepad/internal/textarea"
)

// Run dispatches host events until a CloseRequested event (ErrQuit), the
// events channel closes (nil), or ctx is done (ctx.Err()). Configurations
// received on reloads are applied between events; reloads may be nil.
//
// With a backend configured, Run initializes and shuts it down. If events
// is nil the backend is polled: its key and focus events are dispatched as
// host events and a resize repaints the screen.
func (app *Application) Run(ctx context.Context, events <-chan ime.Event, reloads <-chan *config.Config) error {
	if events == nil && app.backend == nil {
		return ErrNoEventSource
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	var terminal <-chan backend.Event
	if app.backend != nil {
		if err := app.backend.Init(); err != nil {
			return NewOperationError("init", "backend", err)
		}
		defer app.backend.Shutdown()
		app.backend.SetCursorStyle(backend.CursorBar)

		if events == nil {
			pumped := make(chan backend.Event)
			pumpCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go backend.Pump(pumpCtx, app.backend, pumped)
			terminal = pumped
		}
	}

	defer app.finish()

	app.logger.WithComponent("app").Debug("event loop started")
	app.redraw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.Dispatch(ev); err != nil {
				return err
			}

		case bev, ok := <-terminal:
			if !ok {
				return nil
			}
			if err := app.handleTerminal(bev); err != nil {
				return err
			}

		case cfg := <-reloads:
			app.ApplyConfig(cfg)
		}
	}
}

// handleTerminal dispatches a polled backend event.
func (app *Application) handleTerminal(ev backend.Event) error {
	if ev.Type == backend.EventResize {
		app.logger.WithComponent("backend").Debug("resized to %dx%d", ev.Width, ev.Height)
		app.trimEcho()
		app.backend.Sync()
		app.redraw()
		return nil
	}
	hev, ok := backend.HostEvent(ev)
	if !ok {
		return nil
	}
	return app.Dispatch(hev)
}

// Dispatch applies one host event to the textarea and redraws. It returns
// ErrQuit for CloseRequested.
func (app *Application) Dispatch(ev ime.Event) error {
	app.metrics.RecordEvent()
	if app.recorder != nil {
		app.recorder.Record(ev)
	}
	app.echoEvent(ev)

	switch ev := ev.(type) {
	case ime.Char:
		app.commitRune(ev.Rune)

	case ime.Key:
		app.moveCursor(ev.Key)

	case ime.Enabled:
		app.endComposition("reset on enable")
		app.logger.WithComponent("ime").Debug("input method enabled at column %d", app.state.CaretColumn())

	case ime.Preedit:
		app.metrics.RecordPreedit()
		app.setPreedit(ev)

	case ime.Commit:
		app.metrics.RecordCommit()
		app.endComposition("committed")

	case ime.Disabled:
		app.endComposition("cancelled")

	case ime.Focus:
		if !ev.Focused {
			app.endComposition("dropped on focus loss")
		}
		app.state.SetFocused(ev.Focused)

	case ime.CloseRequested:
		app.logger.WithComponent("app").Info("close requested")
		return ErrQuit
	}

	app.redraw()
	return nil
}

// commitRune applies a committed character. A backspace or delete with
// nothing to remove rings the terminal bell.
func (app *Application) commitRune(r rune) {
	before, cursor := app.state.Len(), app.state.Cursor()
	app.state.CommitRune(r)

	switch r {
	case '\b', 0x7f:
		if app.state.Len() == before && app.state.Cursor() == cursor {
			app.bell()
		}
	}
}

// moveCursor moves the cursor for Left and Right. A move past either end
// of the buffer rings the bell.
func (app *Application) moveCursor(k key.Key) {
	cursor := app.state.Cursor()
	switch k {
	case key.KeyLeft:
		app.state.MoveLeft()
	case key.KeyRight:
		app.state.MoveRight()
	default:
		return
	}
	if app.state.Cursor() == cursor {
		app.bell()
	}
}

func (app *Application) bell() {
	if app.backend != nil {
		app.backend.Beep()
	}
}

// endComposition drops the preedit, if one is active.
func (app *Application) endComposition(reason string) {
	if !app.state.Composing() {
		return
	}
	p, _ := app.state.Preedit()
	app.logger.WithComponent("ime").WithField("text", p.Text()).Debug("composition %s", reason)
	app.state.ClearPreedit()
}

// setPreedit replaces the composition. An empty text ends it.
func (app *Application) setPreedit(ev ime.Preedit) {
	if ev.Text == "" {
		app.endComposition("ended by empty preedit")
		return
	}

	err := app.state.SetPreedit(ev.Text, ev.Start, ev.End)
	var rerr *textarea.RangeError
	if errors.As(err, &rerr) {
		app.metrics.RecordRangeViolation()
		app.logger.WithComponent("ime").
			WithField("text", rerr.Text).
			WithField("start", rerr.Start).
			WithField("end", rerr.End).
			WithField("len", rerr.Len).
			Warn("host sent invalid preedit range; clamped")
	}
}

func (app *Application) echoEvent(ev ime.Event) {
	if !app.config.Console.Echo {
		return
	}
	line := ev.String()

	if app.console != nil {
		if err := app.console.Println(line); err != nil {
			app.logComponentError("console", err)
		}
	}
	if app.backend != nil {
		app.echo = append(app.echo, line)
		app.trimEcho()
	}
}

// trimEcho keeps as many echo lines as fit below the textarea.
func (app *Application) trimEcho() {
	_, height := app.backend.Size()
	if limit := max(height-1, 0); len(app.echo) > limit {
		app.echo = app.echo[len(app.echo)-limit:]
	}
}

// redraw paints the textarea on every configured surface.
func (app *Application) redraw() {
	timer := StartTimer()
	line := app.state.Line()

	if app.console != nil {
		if err := app.console.Draw(line); err != nil {
			app.logComponentError("console", err)
		}
	}

	if app.backend != nil {
		app.backend.DrawLine(0, line)
		for i, text := range app.echo {
			app.backend.DrawLine(i+1, plainLine(text))
		}

		if col := app.state.CaretColumn(); col >= 0 {
			app.backend.ShowCursor(col, 0)
		} else {
			app.backend.HideCursor()
		}
		app.backend.Show()
	}

	app.metrics.RecordRedraw(timer.Elapsed())
}

func (app *Application) finish() {
	if app.console != nil {
		if err := app.console.Finish(); err != nil {
			app.logComponentError("console", err)
		}
	}
	app.logger.WithComponent("app").Info("session finished: %s", app.metrics.Snapshot())
}

func plainLine(text string) core.Line {
	return core.Line{}.Append(text, core.DefaultStyle().Dim())
}
