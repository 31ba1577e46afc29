// Package backend provides the terminal host for imepad.
//
// A Backend paints styled lines into a cell grid and reports raw terminal
// events. HostEvent turns those events into the ime events the textarea
// consumes.
package backend

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/imepad/internal/renderer/core"
)

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
	CursorHidden
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
	EventFocus
	// EventClosed is returned by PollEvent once the backend has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool

	// PasteStart is true at the start of a bracketed paste, false at its end.
	PasteStart bool
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// A pending PollEvent returns an EventClosed event.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// DrawLine replaces row y with line, painting one grapheme cluster per
	// cell run. It returns the column after the last painted cell.
	DrawLine(y int, line core.Line) int

	// ClearLine blanks row y.
	ClearLine(y int)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// Sync repaints every cell, discarding what the display is assumed to
	// hold. Call it after a resize.
	Sync()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorStyle changes the cursor appearance.
	SetCursorStyle(style CursorStyle)

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// Beep produces an audible or visual bell.
	Beep()
}

// graphemes splits text into clusters with their display widths.
// Zero-width clusters are dropped.
func graphemes(text string, fn func(cluster []rune, width int)) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w <= 0 {
			continue
		}
		fn(g.Runes(), w)
	}
}

// Cell is one grid position of a NullBackend. Continuation cells of a wide
// cluster have empty Text.
type Cell struct {
	Text  string
	Style core.Style
}

// NullBackend is an in-memory backend for testing. It is safe for use
// from a test goroutine while Run draws into it.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	shows         int
	syncs         int
	beeps         int
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func blankRow(width int) []Cell {
	row := make([]Cell, width)
	for i := range row {
		row[i] = Cell{Text: " "}
	}
	return row
}

func (b *NullBackend) reset() {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = blankRow(b.width)
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
	return nil
}

func (b *NullBackend) Shutdown() {
	b.PostEvent(Event{Type: EventClosed})
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) DrawLine(y int, line core.Line) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= b.height {
		return 0
	}
	b.cells[y] = blankRow(b.width)

	x := 0
	for _, seg := range line {
		graphemes(seg.Text, func(cluster []rune, w int) {
			if x+w > b.width {
				return
			}
			b.cells[y][x] = Cell{Text: string(cluster), Style: seg.Style}
			for i := 1; i < w; i++ {
				b.cells[y][x+i] = Cell{Style: seg.Style}
			}
			x += w
		})
	}
	return x
}

func (b *NullBackend) ClearLine(y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y >= 0 && y < b.height {
		b.cells[y] = blankRow(b.width)
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.cells {
		b.cells[y] = blankRow(b.width)
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) Sync() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.syncs++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorStyle = style
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beeps++
}

// Resize changes the grid size, blanking it, and posts a resize event the
// way a terminal reports a window change.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.reset()
	b.mu.Unlock()

	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// Cell returns the cell at the given position for testing.
func (b *NullBackend) Cell(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return Cell{Text: " "}
}

// Row returns the text of row y without trailing blanks for testing.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		sb.WriteString(c.Text)
	}
	return strings.TrimRight(sb.String(), " ")
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the current cursor style for testing.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorStyle
}

// Shows returns how many times Show was called for testing.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Syncs returns how many times Sync was called for testing.
func (b *NullBackend) Syncs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncs
}

// Beeps returns how many times Beep was called for testing.
func (b *NullBackend) Beeps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beeps
}
