package textarea

import (
	"github.com/dshills/imepad/internal/renderer/ansi"
	"github.com/dshills/imepad/internal/renderer/core"
)

// DefaultCaret is the glyph drawn at the insertion point.
const DefaultCaret = '│'

// Theme controls how a textarea is drawn.
type Theme struct {
	Caret     rune
	Text      core.Style
	Hint      core.Style
	Unfocused core.Style
	Preedit   core.Style
	Selection core.Style
}

// DefaultTheme returns dim hints, a bold unfocused notice, an underlined
// preedit and an underlined, reversed conversion span.
func DefaultTheme() Theme {
	return Theme{
		Caret:     DefaultCaret,
		Text:      core.DefaultStyle(),
		Hint:      core.DefaultStyle().Dim(),
		Unfocused: core.DefaultStyle().Bold(),
		Preedit:   core.DefaultStyle().Underline(),
		Selection: core.DefaultStyle().Underline().Reverse(),
	}
}

// Line composes the display line.
//
// An empty buffer without a preedit shows a placeholder. Otherwise the
// buffer is split at the cursor and the preedit, if any, is placed between
// the halves; the caret is drawn inside the preedit when its range is empty,
// or at the cursor when there is no preedit and the window is focused.
func (s *State) Line() core.Line {
	th := s.theme
	if len(s.text) == 0 && s.preedit == nil {
		if s.focused {
			return core.Line{}.Append(s.hint, th.Hint)
		}
		return core.Line{}.Append(s.unfocusedHint, th.Unfocused)
	}

	cur := clamp(s.cursor, 0, len(s.text))
	var line core.Line
	line = line.Append(string(s.text[:cur]), th.Text)

	if p := s.preedit; p != nil {
		line = line.Append(string(p.text[:p.start]), th.Preedit)
		if p.IsCaret() {
			line = line.Append(string(th.Caret), th.Preedit)
		} else {
			line = line.Append(string(p.text[p.start:p.end]), th.Selection)
		}
		line = line.Append(string(p.text[p.end:]), th.Preedit)
	} else if s.focused {
		line = line.Append(string(th.Caret), th.Text)
	}

	return line.Append(string(s.text[cur:]), th.Text)
}

// Render returns the display line encoded with ANSI escapes.
func (s *State) Render() string {
	return ansi.Encode(s.Line())
}

// CaretColumn returns the terminal column of the caret within Line, or -1
// when no caret is drawn.
func (s *State) CaretColumn() int {
	if len(s.text) == 0 && s.preedit == nil {
		return -1
	}
	cur := clamp(s.cursor, 0, len(s.text))
	prefix := core.Line{{Text: string(s.text[:cur])}}
	if p := s.preedit; p != nil {
		if !p.IsCaret() {
			return -1
		}
		prefix = prefix.Append(string(p.text[:p.start]), s.theme.Preedit)
		return prefix.Width()
	}
	if !s.focused {
		return -1
	}
	return prefix.Width()
}
