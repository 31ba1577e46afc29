// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between textarea, ansi and backend.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Attribute represents text attributes (bold, underline, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// String returns the attribute names joined with "|".
func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	var parts []string
	names := []struct {
		attr Attribute
		name string
	}{
		{AttrBold, "bold"},
		{AttrDim, "dim"},
		{AttrItalic, "italic"},
		{AttrUnderline, "underline"},
		{AttrReverse, "reverse"},
	}
	for _, n := range names {
		if a.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Color represents a true color value.
// The zero value is the terminal's default color.
type Color struct {
	R, G, B uint8
	set     bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, set: true}
}

// ColorFromHex creates a color from a hex string such as "#ff8800" or "f80".
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return !c.set
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Dim returns a new style with dim attribute added.
func (s Style) Dim() Style {
	s.Attributes |= AttrDim
	return s
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() && s.Attributes == AttrNone
}

// String returns a debug representation of the style.
func (s Style) String() string {
	if s.Foreground.IsDefault() {
		return s.Attributes.String()
	}
	return s.Attributes.String() + " fg=" + s.Foreground.String()
}
