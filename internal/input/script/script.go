package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dshills/imepad/internal/input/ime"
	"github.com/dshills/imepad/internal/input/key"
)

// Errors reported for malformed entries, wrapped in a DecodeError.
var (
	ErrEmptyEntry     = errors.New("entry sets no event kind")
	ErrAmbiguousEntry = errors.New("entry sets more than one event kind")
	ErrBadChar        = errors.New("char must be exactly one code point")
	ErrFlagFalse      = errors.New("flag entries must be true")
)

// Script is a recorded or hand-written host session.
type Script struct {
	Session string
	Events  []ime.Event
}

// DecodeError reports a malformed event entry.
type DecodeError struct {
	// Index is the zero-based position of the entry in the events list.
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("script event %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// file is the YAML document layout.
type file struct {
	Session string  `yaml:"session,omitempty"`
	Events  []entry `yaml:"events"`
}

type entry struct {
	Char     *string       `yaml:"char,omitempty"`
	Key      *string       `yaml:"key,omitempty"`
	Enabled  *bool         `yaml:"enabled,omitempty"`
	Preedit  *preeditEntry `yaml:"preedit,omitempty"`
	Commit   *string       `yaml:"commit,omitempty"`
	Disabled *bool         `yaml:"disabled,omitempty"`
	Focus    *bool         `yaml:"focus,omitempty"`
	Close    *bool         `yaml:"close,omitempty"`
}

type preeditEntry struct {
	Text  string `yaml:"text"`
	Start *int   `yaml:"start,omitempty"`
	End   *int   `yaml:"end,omitempty"`
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}

// Decode reads a script from r. An empty document is an empty script.
func Decode(r io.Reader) (*Script, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	s := &Script{Session: f.Session, Events: make([]ime.Event, 0, len(f.Events))}
	for i, e := range f.Events {
		ev, err := e.event()
		if err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		s.Events = append(s.Events, ev)
	}
	return s, nil
}

// Encode writes s to w as YAML.
func Encode(w io.Writer, s *Script) error {
	f := file{Session: s.Session, Events: make([]entry, 0, len(s.Events))}
	for _, ev := range s.Events {
		f.Events = append(f.Events, entryFor(ev))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}
	return enc.Close()
}

func (e entry) kinds() int {
	n := 0
	for _, set := range []bool{
		e.Char != nil, e.Key != nil, e.Enabled != nil, e.Preedit != nil,
		e.Commit != nil, e.Disabled != nil, e.Focus != nil, e.Close != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (e entry) event() (ime.Event, error) {
	switch e.kinds() {
	case 0:
		return nil, ErrEmptyEntry
	case 1:
	default:
		return nil, ErrAmbiguousEntry
	}

	switch {
	case e.Char != nil:
		if utf8.RuneCountInString(*e.Char) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrBadChar, *e.Char)
		}
		r, _ := utf8.DecodeRuneInString(*e.Char)
		return ime.Char{Rune: r}, nil
	case e.Key != nil:
		k, err := key.Parse(*e.Key)
		if err != nil {
			return nil, err
		}
		return ime.Key{Key: k}, nil
	case e.Enabled != nil:
		if !*e.Enabled {
			return nil, fmt.Errorf("%w: enabled", ErrFlagFalse)
		}
		return ime.Enabled{}, nil
	case e.Preedit != nil:
		return ime.Preedit{Text: e.Preedit.Text, Start: e.Preedit.Start, End: e.Preedit.End}, nil
	case e.Commit != nil:
		return ime.Commit{Text: *e.Commit}, nil
	case e.Disabled != nil:
		if !*e.Disabled {
			return nil, fmt.Errorf("%w: disabled", ErrFlagFalse)
		}
		return ime.Disabled{}, nil
	case e.Focus != nil:
		return ime.Focus{Focused: *e.Focus}, nil
	default:
		if !*e.Close {
			return nil, fmt.Errorf("%w: close", ErrFlagFalse)
		}
		return ime.CloseRequested{}, nil
	}
}

func entryFor(ev ime.Event) entry {
	yes := true
	switch ev := ev.(type) {
	case ime.Char:
		s := string(ev.Rune)
		return entry{Char: &s}
	case ime.Key:
		b, _ := ev.Key.MarshalText()
		s := string(b)
		return entry{Key: &s}
	case ime.Enabled:
		return entry{Enabled: &yes}
	case ime.Preedit:
		return entry{Preedit: &preeditEntry{Text: ev.Text, Start: ev.Start, End: ev.End}}
	case ime.Commit:
		text := ev.Text
		return entry{Commit: &text}
	case ime.Disabled:
		return entry{Disabled: &yes}
	case ime.Focus:
		focused := ev.Focused
		return entry{Focus: &focused}
	default:
		return entry{Close: &yes}
	}
}
