// Package ansi encodes styled lines as ANSI escape sequences and redraws a
// single live line on a terminal.
package ansi

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dshills/imepad/internal/renderer/core"
)

// ClearLine returns to column 0 and erases to end of line.
const ClearLine = "\r\x1b[K"

// Encoder renders core lines through a lipgloss renderer with a fixed
// color profile.
type Encoder struct {
	r *lipgloss.Renderer
}

// NewEncoder creates an encoder for the given color profile. The profile is
// fixed rather than detected, so output does not depend on the environment.
func NewEncoder(profile termenv.Profile) *Encoder {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(true)
	return &Encoder{r: r}
}

var trueColor = NewEncoder(termenv.TrueColor)

// Style converts s to a lipgloss style bound to the encoder's renderer.
func (e *Encoder) Style(s core.Style) lipgloss.Style {
	st := e.r.NewStyle()
	attrs := s.Attributes
	if attrs.Has(core.AttrBold) {
		st = st.Bold(true)
	}
	if attrs.Has(core.AttrDim) {
		st = st.Faint(true)
	}
	if attrs.Has(core.AttrItalic) {
		st = st.Italic(true)
	}
	if attrs.Has(core.AttrUnderline) {
		st = st.Underline(true)
	}
	if attrs.Has(core.AttrReverse) {
		st = st.Reverse(true)
	}
	if fg := s.Foreground; !fg.IsDefault() {
		st = st.Foreground(lipgloss.Color(fg.String()))
	}
	return st
}

// Encode renders a line as text with SGR escapes. Each styled segment is
// rendered on its own and ends with a reset.
func (e *Encoder) Encode(line core.Line) string {
	var b strings.Builder
	for _, seg := range line {
		if seg.Text == "" {
			continue
		}
		if seg.Style.IsDefault() {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(e.Style(seg.Style).Render(seg.Text))
	}
	return b.String()
}

// Style converts s using the true color encoder.
func Style(s core.Style) lipgloss.Style {
	return trueColor.Style(s)
}

// Encode renders line using the true color encoder.
func Encode(line core.Line) string {
	return trueColor.Encode(line)
}
