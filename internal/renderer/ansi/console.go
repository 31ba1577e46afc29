package ansi

import (
	"io"
	"os"
	"sync"

	xansi "github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/dshills/imepad/internal/renderer/core"
)

// Console draws a single live line on a terminal and prints log lines
// above it. Each Draw replaces the previous frame in place.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	enc   *Encoder
	plain bool
	last  core.Line
	drawn bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithEncoder replaces the true color encoder.
func WithEncoder(enc *Encoder) ConsoleOption {
	return func(c *Console) {
		c.enc = enc
	}
}

// WithPlain forces plain output: no escapes, one frame per line.
func WithPlain(plain bool) ConsoleOption {
	return func(c *Console) {
		c.plain = plain
	}
}

// NewConsole creates a console writing to w. Plain mode is enabled
// automatically when w is an *os.File that is not a terminal.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{out: w, enc: trueColor, plain: !IsTerminal(w)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsTerminal reports whether w is a file attached to a terminal.
// Writers that are not files are treated as terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

// Plain reports whether the console writes without escape sequences.
func (c *Console) Plain() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plain
}

// SetPlain switches between styled and plain output.
func (c *Console) SetPlain(plain bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plain = plain
}

// Draw replaces the live line with line.
func (c *Console) Draw(line core.Line) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = line
	c.drawn = true
	return c.writeFrame()
}

// Println prints s on its own line above the live line, then redraws the
// live line below it. Plain consoles strip escape sequences from s.
func (c *Console) Println(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.plain {
		_, err = io.WriteString(c.out, xansi.Strip(s)+"\n")
		return err
	}
	if _, err = io.WriteString(c.out, ClearLine+s+"\n"); err != nil {
		return err
	}
	if !c.drawn {
		return nil
	}
	return c.writeFrame()
}

// Finish terminates the live line so subsequent output starts on a fresh row.
func (c *Console) Finish() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.plain || !c.drawn {
		return nil
	}
	c.drawn = false
	_, err := io.WriteString(c.out, "\n")
	return err
}

func (c *Console) writeFrame() error {
	if c.plain {
		_, err := io.WriteString(c.out, xansi.Strip(c.last.String())+"\n")
		return err
	}
	_, err := io.WriteString(c.out, ClearLine+c.enc.Encode(c.last))
	return err
}
