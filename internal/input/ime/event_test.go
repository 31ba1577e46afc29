package ime

import (
	"testing"

	"github.com/dshills/imepad/internal/input/key"
)

func TestEventString(t *testing.T) {
	zero, two := 0, 2
	tests := []struct {
		event Event
		want  string
	}{
		{Char{Rune: 'a'}, "Char('a')"},
		{Char{Rune: '\b'}, `Char('\b')`},
		{Key{Key: key.KeyLeft}, "Key(Left)"},
		{Enabled{}, "Enabled"},
		{Preedit{Text: "今日", Start: &zero, End: &two}, `Preedit("今日", 0, 2)`},
		{Preedit{Text: "x", End: &two}, `Preedit("x", None, 2)`},
		{Preedit{Text: "x"}, `Preedit("x", None, None)`},
		{Commit{Text: "今日"}, `Commit("今日")`},
		{Disabled{}, "Disabled"},
		{Focus{Focused: false}, "Focus(false)"},
		{CloseRequested{}, "CloseRequested"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
