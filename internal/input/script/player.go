package script

import (
	"context"
	"time"

	"github.com/dshills/imepad/internal/input/ime"
)

// Player replays a script onto an event channel.
type Player struct {
	script *Script
	delay  time.Duration
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithDelay waits d before each event after the first.
func WithDelay(d time.Duration) PlayerOption {
	return func(p *Player) {
		if d > 0 {
			p.delay = d
		}
	}
}

// NewPlayer creates a player for s.
func NewPlayer(s *Script, opts ...PlayerOption) *Player {
	p := &Player{script: s}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len returns the number of events in the script.
func (p *Player) Len() int {
	return len(p.script.Events)
}

// Play sends every event to out in order. It returns ctx.Err() if ctx is
// done first. Play does not close out.
func (p *Player) Play(ctx context.Context, out chan<- ime.Event) error {
	for i, ev := range p.script.Events {
		if i > 0 && p.delay > 0 {
			timer := time.NewTimer(p.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
