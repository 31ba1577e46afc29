package textarea

// Preedit is an in-progress composition shown at the cursor.
// Preedit is an immutable value type.
type Preedit struct {
	text       []rune
	start, end int
}

// newPreedit builds a preedit, defaulting nil bounds to the whole text and
// clamping out-of-range bounds so that 0 <= start <= end <= len(text).
// A non-nil error reports the original range when clamping was needed.
func newPreedit(text string, start, end *int) (Preedit, error) {
	runes := []rune(text)
	n := len(runes)

	s, e := 0, n
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}

	var err error
	if s < 0 || e < 0 || s > n || e > n || s > e {
		err = &RangeError{Text: text, Start: s, End: e, Len: n}
		s = clamp(s, 0, n)
		e = clamp(e, s, n)
	}

	return Preedit{text: runes, start: s, end: e}, err
}

// Text returns the preedit text.
func (p Preedit) Text() string {
	return string(p.text)
}

// Len returns the preedit length in code points.
func (p Preedit) Len() int {
	return len(p.text)
}

// Start returns the start of the highlight range.
func (p Preedit) Start() int {
	return p.start
}

// End returns the end of the highlight range.
func (p Preedit) End() int {
	return p.end
}

// IsCaret returns true if the range is a caret rather than a selection.
func (p Preedit) IsCaret() bool {
	return p.start == p.end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
