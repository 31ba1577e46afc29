package script

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/imepad/internal/input/ime"
)

// Recorder captures host events for later replay.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	session string
	events  []ime.Event
}

// NewRecorder creates a recorder with a fresh session id.
func NewRecorder() *Recorder {
	return &Recorder{session: uuid.NewString()}
}

// Session returns the session id written with the script.
func (r *Recorder) Session() string {
	return r.session
}

// Record appends ev.
func (r *Recorder) Record(ev ime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Script returns a copy of the recording.
func (r *Recorder) Script() *Script {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]ime.Event, len(r.events))
	copy(events, r.events)
	return &Script{Session: r.session, Events: events}
}

// Save encodes the recording to w.
func (r *Recorder) Save(w io.Writer) error {
	return Encode(w, r.Script())
}
