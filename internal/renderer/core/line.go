package core

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style Style
}

// Line is an ordered sequence of styled segments forming one display row.
type Line []Segment

// Append adds text with the given style. Empty text is skipped and a
// segment with the same style as the previous one is merged into it.
func (l Line) Append(text string, style Style) Line {
	if text == "" {
		return l
	}
	if n := len(l); n > 0 && l[n-1].Style == style {
		l[n-1].Text += text
		return l
	}
	return append(l, Segment{Text: text, Style: style})
}

// String returns the unstyled text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, seg := range l {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Width returns the number of terminal cells the line occupies.
func (l Line) Width() int {
	w := 0
	for _, seg := range l {
		w += uniseg.StringWidth(seg.Text)
	}
	return w
}
