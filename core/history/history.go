// Package history keeps the calls received by a substitute.
package history

import (
	"sync"
	"time"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/matcher"
	"github.com/anoideaopen/substitute/core/routing"
)

// Entry is one received call and the outcome it was routed to.
type Entry struct {
	Seq     uint64
	Call    *call.Call
	Outcome routing.Outcome
	At      time.Time
}

// Log is an append-only list of received calls. It is safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	seq     uint64
	entries []Entry
	now     func() time.Time
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Record appends c with its outcome.
func (l *Log) Record(c *call.Call, outcome routing.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.entries = append(l.entries, Entry{
		Seq:     l.seq,
		Call:    c,
		Outcome: outcome,
		At:      l.now(),
	})
}

// Entries returns a copy of the entries in the order the calls were recorded.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)

	return entries
}

// Calls returns the recorded calls in order.
func (l *Log) Calls() []*call.Call {
	l.mu.RLock()
	defer l.mu.RUnlock()

	calls := make([]*call.Call, len(l.entries))
	for i, e := range l.entries {
		calls[i] = e.Call
	}

	return calls
}

// Count returns the number of recorded calls of member whose arguments policy accepts.
func (l *Log) Count(member call.Member, policy matcher.Policy) int {
	var n int
	for _, c := range l.Calls() {
		if c.Member().Equal(member) && policy.Accepts(c.Args()) {
			n++
		}
	}

	return n
}

// Len returns the number of recorded calls.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// Clear forgets all recorded calls.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}
