package textarea

import (
	"math/rand"
	"testing"
)

func newWithText(text string, cursor int) *State {
	s := New()
	for _, r := range text {
		s.InsertBeforeCursor(r)
	}
	for s.Cursor() > cursor {
		s.MoveLeft()
	}
	return s
}

func TestNew(t *testing.T) {
	s := New()
	if s.Len() != 0 || s.Cursor() != 0 {
		t.Errorf("expected empty state, got len %d cursor %d", s.Len(), s.Cursor())
	}
	if !s.Focused() {
		t.Error("new state should be focused")
	}
	if s.Hint() != DefaultHint {
		t.Errorf("expected default hint, got %q", s.Hint())
	}
	if s.Composing() {
		t.Error("new state should not be composing")
	}
}

func TestInsertBeforeCursor(t *testing.T) {
	s := New()
	s.InsertBeforeCursor('a')
	s.InsertBeforeCursor('c')
	s.MoveLeft()
	s.InsertBeforeCursor('b')

	if s.Text() != "abc" {
		t.Errorf("expected \"abc\", got %q", s.Text())
	}
	if s.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", s.Cursor())
	}
}

func TestInsertMultiByte(t *testing.T) {
	s := New()
	for _, r := range "今日は" {
		s.InsertBeforeCursor(r)
	}
	if s.Len() != 3 {
		t.Errorf("expected length 3 code points, got %d", s.Len())
	}
	if s.Cursor() != 3 {
		t.Errorf("expected cursor 3, got %d", s.Cursor())
	}

	s.MoveLeft()
	s.DeleteBeforeCursor()
	if s.Text() != "今は" {
		t.Errorf("expected \"今は\", got %q", s.Text())
	}
	if s.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", s.Cursor())
	}
}

func TestDeleteBeforeCursor(t *testing.T) {
	s := newWithText("ab", 0)
	s.DeleteBeforeCursor()
	if s.Text() != "ab" || s.Cursor() != 0 {
		t.Errorf("delete at start should be no-op, got %q cursor %d", s.Text(), s.Cursor())
	}

	s.MoveRight()
	s.DeleteBeforeCursor()
	if s.Text() != "b" || s.Cursor() != 0 {
		t.Errorf("expected \"b\" cursor 0, got %q cursor %d", s.Text(), s.Cursor())
	}
}

func TestDeleteAfterCursor(t *testing.T) {
	s := newWithText("ab", 2)
	s.DeleteAfterCursor()
	if s.Text() != "ab" {
		t.Errorf("delete at end should be no-op, got %q", s.Text())
	}

	s.MoveLeft()
	s.MoveLeft()
	s.DeleteAfterCursor()
	if s.Text() != "b" || s.Cursor() != 0 {
		t.Errorf("expected \"b\" cursor 0, got %q cursor %d", s.Text(), s.Cursor())
	}
}

func TestMoveClamped(t *testing.T) {
	s := newWithText("ab", 0)
	s.MoveLeft()
	if s.Cursor() != 0 {
		t.Errorf("MoveLeft at 0 should be no-op, got %d", s.Cursor())
	}

	s.MoveRight()
	s.MoveRight()
	s.MoveRight()
	if s.Cursor() != 2 {
		t.Errorf("MoveRight at end should clamp to 2, got %d", s.Cursor())
	}
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	tests := []struct {
		text   string
		cursor int
		r      rune
	}{
		{"", 0, 'a'},
		{"abc", 0, 'x'},
		{"abc", 2, '日'},
		{"今日", 2, '😀'},
	}

	for _, tt := range tests {
		s := newWithText(tt.text, tt.cursor)
		s.InsertBeforeCursor(tt.r)
		s.DeleteBeforeCursor()
		if s.Text() != tt.text || s.Cursor() != tt.cursor {
			t.Errorf("round trip on %q@%d with %q: got %q@%d", tt.text, tt.cursor, tt.r, s.Text(), s.Cursor())
		}
	}
}

func TestClear(t *testing.T) {
	s := newWithText("abc", 1)
	_ = s.SetPreedit("x", nil, nil)
	s.Clear()

	if s.Len() != 0 || s.Cursor() != 0 {
		t.Errorf("expected empty state after Clear, got %q cursor %d", s.Text(), s.Cursor())
	}
	if s.Composing() {
		t.Error("Clear should drop the preedit")
	}
}

func TestCommitRune(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		r          rune
		wantText   string
		wantCursor int
	}{
		{"insert", "ab", 1, 'x', "axb", 2},
		{"backspace", "ab", 1, '\b', "b", 0},
		{"delete", "ab", 1, 0x7f, "a", 1},
		{"carriage return clears", "ab", 1, '\r', "", 0},
		{"newline clears", "ab", 2, '\n', "", 0},
		{"tab ignored", "ab", 1, '\t', "ab", 1},
		{"nul ignored", "ab", 1, 0, "ab", 1},
		{"escape ignored", "ab", 1, 0x1b, "ab", 1},
		{"space inserted", "ab", 2, ' ', "ab ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newWithText(tt.text, tt.cursor)
			s.CommitRune(tt.r)
			if s.Text() != tt.wantText || s.Cursor() != tt.wantCursor {
				t.Errorf("got %q@%d, want %q@%d", s.Text(), s.Cursor(), tt.wantText, tt.wantCursor)
			}
		})
	}
}

func TestCommitRuneClearsPreedit(t *testing.T) {
	s := New()
	if err := s.SetPreedit("今日", nil, nil); err != nil {
		t.Fatal(err)
	}
	s.CommitRune('A')

	if s.Text() != "A" {
		t.Errorf("expected \"A\", got %q", s.Text())
	}
	if s.Composing() {
		t.Error("commit should clear the preedit")
	}

	_ = s.SetPreedit("x", nil, nil)
	s.CommitRune('\t')
	if s.Composing() {
		t.Error("ignored control characters should still clear the preedit")
	}
}

func TestFocusAndHint(t *testing.T) {
	s := New(WithHint("say hi"), WithUnfocusedHint("come back"))
	if s.Hint() != "say hi" {
		t.Errorf("unexpected hint %q", s.Hint())
	}
	s.SetFocused(false)
	if s.Focused() {
		t.Error("expected unfocused")
	}
	s.SetHint("other")
	if s.Hint() != "other" {
		t.Errorf("SetHint not applied, got %q", s.Hint())
	}
}

func TestCursorInvariantRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("ab今日😀")
	s := New()

	for i := 0; i < 5000; i++ {
		switch rng.Intn(7) {
		case 0, 1:
			s.InsertBeforeCursor(alphabet[rng.Intn(len(alphabet))])
		case 2:
			s.DeleteBeforeCursor()
		case 3:
			s.DeleteAfterCursor()
		case 4:
			s.MoveLeft()
		case 5:
			s.MoveRight()
		case 6:
			s.CommitRune(rune(rng.Intn(0x80)))
		}

		if c := s.Cursor(); c < 0 || c > s.Len() {
			t.Fatalf("step %d: cursor %d outside [0, %d]", i, c, s.Len())
		}
		if s.Len() != len([]rune(s.Text())) {
			t.Fatalf("step %d: Len %d disagrees with Text %q", i, s.Len(), s.Text())
		}
	}
}
