package script

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/imepad/internal/input/ime"
)

func testScript() *Script {
	return &Script{Events: []ime.Event{
		ime.Char{Rune: 'a'},
		ime.Enabled{},
		ime.Preedit{Text: "か"},
		ime.Commit{Text: "か"},
	}}
}

func TestPlayerPlay(t *testing.T) {
	s := testScript()
	p := NewPlayer(s)
	if p.Len() != 4 {
		t.Errorf("Len() = %d, want 4", p.Len())
	}

	out := make(chan ime.Event, 10)
	if err := p.Play(context.Background(), out); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	close(out)

	var got []ime.Event
	for ev := range out {
		got = append(got, ev)
	}
	if diff := cmp.Diff(s.Events, got); diff != "" {
		t.Errorf("played events mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayerDelay(t *testing.T) {
	p := NewPlayer(testScript(), WithDelay(10*time.Millisecond))

	out := make(chan ime.Event, 10)
	start := time.Now()
	if err := p.Play(context.Background(), out); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected at least 3 delays, took %v", elapsed)
	}
}

func TestPlayerCancel(t *testing.T) {
	p := NewPlayer(testScript())

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan ime.Event) // never read
	done := make(chan error, 1)
	go func() { done <- p.Play(ctx, out) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not stop on cancel")
	}
}

func TestPlayerCancelDuringDelay(t *testing.T) {
	p := NewPlayer(testScript(), WithDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	out := make(chan ime.Event, 10)
	err := p.Play(ctx, out)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if len(out) != 1 {
		t.Errorf("expected 1 event before the delay, got %d", len(out))
	}
}
