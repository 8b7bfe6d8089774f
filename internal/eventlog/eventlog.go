// Package eventlog provides the append-only, human-readable event log
// written by the controller's rule engine.
package eventlog

import (
	"sync"
	"time"
)

// Stimulus identifies what caused an entry to be written
type Stimulus string

const (
	StimulusEnterRoom   Stimulus = "enter_room"
	StimulusTemperature Stimulus = "outside_temperature"
	StimulusTimeOfDay   Stimulus = "time_of_day"
	StimulusDriver      Stimulus = "driver"
)

// Entry is a single log line. Entries are never modified once written.
type Entry struct {
	Seq      uint64
	Time     time.Time
	Stimulus Stimulus
	Message  string
}

// Observer is notified of every appended entry, synchronously and in order
type Observer func(Entry)

// Option configures a Log
type Option func(*Log)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// Log is an append-only sequence of entries.
// All accessors return copies so the live log cannot be altered.
type Log struct {
	mu        sync.RWMutex
	entries   []Entry
	observers []Observer
	now       func() time.Time
}

// New creates an empty log
func New(opts ...Option) *Log {
	l := &Log{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append writes a message and notifies observers. Returns the stored entry.
func (l *Log) Append(stimulus Stimulus, message string) Entry {
	l.mu.Lock()
	entry := Entry{
		Seq:      uint64(len(l.entries)) + 1,
		Time:     l.now(),
		Stimulus: stimulus,
		Message:  message,
	}
	l.entries = append(l.entries, entry)
	observers := l.observers
	l.mu.Unlock()

	for _, obs := range observers {
		obs(entry)
	}
	return entry
}

// Subscribe registers an observer for entries appended from now on
func (l *Log) Subscribe(obs Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Copy on write so Append can iterate without holding the lock
	observers := make([]Observer, len(l.observers), len(l.observers)+1)
	copy(observers, l.observers)
	l.observers = append(observers, obs)
}

// Messages returns a snapshot of all messages in order
func (l *Log) Messages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Message
	}
	return out
}

// Entries returns a snapshot of all entries in order
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns entries with Seq greater than seq
func (l *Log) Since(seq uint64) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if seq >= uint64(len(l.entries)) {
		return []Entry{}
	}
	out := make([]Entry, uint64(len(l.entries))-seq)
	copy(out, l.entries[seq:])
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
