// Package ime defines the host input events a textarea consumes.
//
// Events are already decoded by the host: no key-to-character mapping or
// input-method negotiation happens here. Event is a closed set; consumers
// switch on the concrete type.
package ime

import (
	"fmt"
	"strconv"

	"github.com/dshills/imepad/internal/input/key"
)

// Event is a single host input event.
type Event interface {
	fmt.Stringer
	isEvent()
}

// Char is a committed character.
type Char struct {
	Rune rune
}

// Key is a pressed non-character key.
type Key struct {
	Key key.Key
}

// Enabled reports that the input method became active.
type Enabled struct{}

// Preedit is a composition update. Start and End are code-point offsets into
// Text; nil means the host did not supply the bound.
type Preedit struct {
	Text  string
	Start *int
	End   *int
}

// Commit reports that composition ended by committing Text. The committed
// characters themselves arrive as Char events.
type Commit struct {
	Text string
}

// Disabled reports that the input method became inactive.
type Disabled struct{}

// Focus reports a change of input focus.
type Focus struct {
	Focused bool
}

// CloseRequested asks the event loop to stop.
type CloseRequested struct{}

func (Char) isEvent()           {}
func (Key) isEvent()            {}
func (Enabled) isEvent()        {}
func (Preedit) isEvent()        {}
func (Commit) isEvent()         {}
func (Disabled) isEvent()       {}
func (Focus) isEvent()          {}
func (CloseRequested) isEvent() {}

func (e Char) String() string { return "Char(" + strconv.QuoteRune(e.Rune) + ")" }

func (e Key) String() string { return "Key(" + e.Key.String() + ")" }

func (Enabled) String() string { return "Enabled" }

func (e Preedit) String() string {
	return fmt.Sprintf("Preedit(%q, %s, %s)", e.Text, optInt(e.Start), optInt(e.End))
}

func (e Commit) String() string { return fmt.Sprintf("Commit(%q)", e.Text) }

func (Disabled) String() string { return "Disabled" }

func (e Focus) String() string { return "Focus(" + strconv.FormatBool(e.Focused) + ")" }

func (CloseRequested) String() string { return "CloseRequested" }

func optInt(p *int) string {
	if p == nil {
		return "None"
	}
	return strconv.Itoa(*p)
}

