package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics counts what the event loop did during a session.
type Metrics struct {
	events          atomic.Uint64
	preedits        atomic.Uint64
	commits         atomic.Uint64
	rangeViolations atomic.Uint64
	reloads         atomic.Uint64

	redrawCount   atomic.Uint64
	redrawTotalNs atomic.Int64
	redrawMaxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent counts a dispatched host event.
func (m *Metrics) RecordEvent() {
	m.events.Add(1)
}

// RecordPreedit counts a composition update.
func (m *Metrics) RecordPreedit() {
	m.preedits.Add(1)
}

// RecordCommit counts a finished composition.
func (m *Metrics) RecordCommit() {
	m.commits.Add(1)
}

// RecordRangeViolation counts a preedit range that had to be clamped.
func (m *Metrics) RecordRangeViolation() {
	m.rangeViolations.Add(1)
}

// RecordReload counts an applied configuration reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// RecordRedraw records redraw timing.
func (m *Metrics) RecordRedraw(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.redrawCount.Add(1)
	m.redrawTotalNs.Add(ns)

	for {
		old := m.redrawMaxNs.Load()
		if ns <= old {
			break
		}
		if m.redrawMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	redraws := m.redrawCount.Load()

	var avgRedrawNs int64
	if redraws > 0 {
		avgRedrawNs = m.redrawTotalNs.Load() / int64(redraws)
	}

	return MetricsSnapshot{
		Uptime:          time.Since(m.startTime),
		Events:          m.events.Load(),
		Preedits:        m.preedits.Load(),
		Commits:         m.commits.Load(),
		RangeViolations: m.rangeViolations.Load(),
		Reloads:         m.reloads.Load(),
		Redraws:         redraws,
		AvgRedrawNs:     avgRedrawNs,
		MaxRedrawNs:     m.redrawMaxNs.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime          time.Duration
	Events          uint64
	Preedits        uint64
	Commits         uint64
	RangeViolations uint64
	Reloads         uint64
	Redraws         uint64
	AvgRedrawNs     int64
	MaxRedrawNs     int64
}

// String formats the snapshot for the session summary log line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("events=%d preedits=%d commits=%d range_violations=%d reloads=%d redraws=%d avg_redraw=%s max_redraw=%s uptime=%s",
		s.Events, s.Preedits, s.Commits, s.RangeViolations, s.Reloads, s.Redraws,
		time.Duration(s.AvgRedrawNs), time.Duration(s.MaxRedrawNs), s.Uptime.Round(time.Millisecond))
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
