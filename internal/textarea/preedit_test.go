package textarea

import (
	"errors"
	"testing"
)

func intp(v int) *int { return &v }

func TestSetPreeditDefaults(t *testing.T) {
	s := New()
	if err := s.SetPreedit("今日", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, ok := s.Preedit()
	if !ok {
		t.Fatal("expected active preedit")
	}
	if p.Text() != "今日" || p.Start() != 0 || p.End() != 2 {
		t.Errorf("got %q [%d, %d), want \"今日\" [0, 2)", p.Text(), p.Start(), p.End())
	}
	if p.Len() != 2 {
		t.Errorf("expected length 2, got %d", p.Len())
	}
	if p.IsCaret() {
		t.Error("full-range preedit is not a caret")
	}
}

func TestSetPreeditReplaces(t *testing.T) {
	s := New()
	_ = s.SetPreedit("き", nil, nil)
	_ = s.SetPreedit("きょう", intp(3), intp(3))

	p, _ := s.Preedit()
	if p.Text() != "きょう" || !p.IsCaret() || p.Start() != 3 {
		t.Errorf("preedit not replaced: %q [%d, %d)", p.Text(), p.Start(), p.End())
	}
	if s.Len() != 0 {
		t.Error("preedit must not touch the buffer")
	}
}

func TestSetPreeditClampsMalformedRange(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end *int
		wantStart  int
		wantEnd    int
	}{
		{"start after end", "abc", intp(2), intp(1), 2, 2},
		{"end past length", "abc", intp(1), intp(9), 1, 3},
		{"start past length", "abc", intp(7), nil, 3, 3},
		{"negative start", "abc", intp(-1), intp(2), 0, 2},
		{"negative end", "abc", nil, intp(-4), 0, 0},
		{"byte offsets", "今日", intp(3), intp(6), 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.SetPreedit(tt.text, tt.start, tt.end)
			if !errors.Is(err, ErrPreeditRange) {
				t.Fatalf("expected ErrPreeditRange, got %v", err)
			}
			var rerr *RangeError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *RangeError, got %T", err)
			}
			if rerr.Text != tt.text {
				t.Errorf("RangeError.Text = %q", rerr.Text)
			}

			p, ok := s.Preedit()
			if !ok {
				t.Fatal("clamped preedit should still be applied")
			}
			if p.Start() != tt.wantStart || p.End() != tt.wantEnd {
				t.Errorf("got [%d, %d), want [%d, %d)", p.Start(), p.End(), tt.wantStart, tt.wantEnd)
			}
			if p.Start() < 0 || p.Start() > p.End() || p.End() > p.Len() {
				t.Errorf("invariant violated: [%d, %d) len %d", p.Start(), p.End(), p.Len())
			}
			// Rendering a clamped preedit must not panic.
			_ = s.Render()
		})
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := &RangeError{Text: "ab", Start: 3, End: 1, Len: 2}
	want := `preedit "ab": range [3, 1) invalid for length 2`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestClearPreedit(t *testing.T) {
	s := newWithText("ab", 1)
	_ = s.SetPreedit("x", nil, nil)
	s.ClearPreedit()

	if s.Composing() {
		t.Error("expected no preedit")
	}
	if s.Text() != "ab" || s.Cursor() != 1 {
		t.Errorf("ClearPreedit touched the buffer: %q@%d", s.Text(), s.Cursor())
	}
}

func TestMoveKeepsPreedit(t *testing.T) {
	s := newWithText("ab", 1)
	_ = s.SetPreedit("x", nil, nil)
	s.MoveLeft()
	if !s.Composing() {
		t.Error("cursor movement should not drop the preedit")
	}
}
