package textarea

// Default placeholder texts.
const (
	DefaultHint          = "Type something..."
	DefaultUnfocusedHint = "Focus the window"
)

// Edit trigger code points handled by CommitRune.
const (
	runeBackspace = '\b'
	runeDelete    = 0x7f
)

// State is the textarea: a code-point buffer, a cursor, and an optional
// preedit overlay.
type State struct {
	text    []rune
	cursor  int
	preedit *Preedit

	hint          string
	unfocusedHint string
	focused       bool
	theme         Theme
}

// Option configures a State.
type Option func(*State)

// WithHint sets the placeholder shown while the buffer is empty.
func WithHint(hint string) Option {
	return func(s *State) {
		s.hint = hint
	}
}

// WithUnfocusedHint sets the placeholder shown while empty and unfocused.
func WithUnfocusedHint(hint string) Option {
	return func(s *State) {
		s.unfocusedHint = hint
	}
}

// WithTheme sets the rendering theme.
func WithTheme(theme Theme) Option {
	return func(s *State) {
		s.theme = theme
	}
}

// New creates an empty, focused textarea.
func New(opts ...Option) *State {
	s := &State{
		hint:          DefaultHint,
		unfocusedHint: DefaultUnfocusedHint,
		focused:       true,
		theme:         DefaultTheme(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Text returns the buffer content.
func (s *State) Text() string {
	return string(s.text)
}

// Len returns the buffer length in code points.
func (s *State) Len() int {
	return len(s.text)
}

// Cursor returns the cursor offset in code points.
func (s *State) Cursor() int {
	return s.cursor
}

// Preedit returns the active preedit, if any.
func (s *State) Preedit() (Preedit, bool) {
	if s.preedit == nil {
		return Preedit{}, false
	}
	return *s.preedit, true
}

// Composing returns true while a preedit is active.
func (s *State) Composing() bool {
	return s.preedit != nil
}

// InsertBeforeCursor inserts r before the cursor and advances past it.
func (s *State) InsertBeforeCursor(r rune) {
	s.cursor = clamp(s.cursor, 0, len(s.text))
	s.text = append(s.text, 0)
	copy(s.text[s.cursor+1:], s.text[s.cursor:])
	s.text[s.cursor] = r
	s.cursor++
}

// DeleteBeforeCursor removes the code point before the cursor.
// It is a no-op at the start of the buffer.
func (s *State) DeleteBeforeCursor() {
	if s.cursor <= 0 {
		return
	}
	s.cursor = clamp(s.cursor, 0, len(s.text))
	s.text = append(s.text[:s.cursor-1], s.text[s.cursor:]...)
	s.cursor--
}

// DeleteAfterCursor removes the code point at the cursor.
// It is a no-op at the end of the buffer.
func (s *State) DeleteAfterCursor() {
	if s.cursor < 0 || s.cursor >= len(s.text) {
		return
	}
	s.text = append(s.text[:s.cursor], s.text[s.cursor+1:]...)
}

// MoveLeft moves the cursor one code point left.
func (s *State) MoveLeft() {
	s.cursor = clamp(s.cursor-1, 0, len(s.text))
}

// MoveRight moves the cursor one code point right.
func (s *State) MoveRight() {
	s.cursor = clamp(s.cursor+1, 0, len(s.text))
}

// Clear empties the buffer, resets the cursor and drops any preedit.
func (s *State) Clear() {
	s.text = s.text[:0]
	s.cursor = 0
	s.preedit = nil
}

// SetPreedit replaces the preedit. A nil start means 0 and a nil end means
// the length of text. Out-of-range bounds are clamped and the preedit is
// still applied; the returned *RangeError describes what the host sent.
func (s *State) SetPreedit(text string, start, end *int) error {
	p, err := newPreedit(text, start, end)
	s.preedit = &p
	return err
}

// ClearPreedit drops the preedit without touching the buffer.
func (s *State) ClearPreedit() {
	s.preedit = nil
}

// CommitRune applies a committed character. The preedit is discarded first.
// Backspace and DEL delete around the cursor, CR and LF clear the buffer,
// other control characters are ignored, and anything else is inserted.
func (s *State) CommitRune(r rune) {
	s.preedit = nil

	switch {
	case r == runeBackspace:
		s.DeleteBeforeCursor()
	case r == runeDelete:
		s.DeleteAfterCursor()
	case r == '\r' || r == '\n':
		s.Clear()
	case r < 0x20:
		// ignored
	default:
		s.InsertBeforeCursor(r)
	}
}

// Focused returns whether the host window has input focus.
func (s *State) Focused() bool {
	return s.focused
}

// SetFocused records a focus change.
func (s *State) SetFocused(focused bool) {
	s.focused = focused
}

// Hint returns the placeholder shown while the buffer is empty.
func (s *State) Hint() string {
	return s.hint
}

// SetHint sets the placeholder shown while the buffer is empty.
func (s *State) SetHint(hint string) {
	s.hint = hint
}

// SetUnfocusedHint sets the placeholder shown while empty and unfocused.
func (s *State) SetUnfocusedHint(hint string) {
	s.unfocusedHint = hint
}

// Theme returns the rendering theme.
func (s *State) Theme() Theme {
	return s.theme
}

// SetTheme replaces the rendering theme.
func (s *State) SetTheme(theme Theme) {
	s.theme = theme
}
