package backend

import (
	"context"

	"github.com/dshills/imepad/internal/input/ime"
	"github.com/dshills/imepad/internal/input/key"
)

// HostEvent converts a terminal event into a host input event. The second
// result is false for events the textarea has no use for.
func HostEvent(ev Event) (ime.Event, bool) {
	switch ev.Type {
	case EventKey:
		return hostKey(ev)
	case EventFocus:
		return ime.Focus{Focused: ev.Focused}, true
	default:
		return nil, false
	}
}

func hostKey(ev Event) (ime.Event, bool) {
	switch ev.Key {
	case KeyRune:
		return ime.Char{Rune: ev.Rune}, true
	case KeyBackspace:
		return ime.Char{Rune: '\b'}, true
	case KeyDelete:
		return ime.Char{Rune: 0x7f}, true
	case KeyEnter:
		return ime.Char{Rune: '\r'}, true
	case KeyLeft:
		return ime.Key{Key: key.KeyLeft}, true
	case KeyRight:
		return ime.Key{Key: key.KeyRight}, true
	case KeyEscape, KeyCtrlC:
		return ime.CloseRequested{}, true
	default:
		return nil, false
	}
}

// Pump polls b and sends its events on out until the backend shuts down
// or ctx is done. Events of type EventNone are dropped. It closes out
// before returning.
func Pump(ctx context.Context, b Backend, out chan<- Event) {
	defer close(out)

	for {
		ev := b.PollEvent()
		switch ev.Type {
		case EventClosed:
			return
		case EventNone:
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}
