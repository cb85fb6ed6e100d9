// Package sessionlog keeps the human-readable events of one session. Entries
// live only as long as the process and are never written to disk.
package sessionlog

import (
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/doeshing/easy-proton/internal/domain"
)

// Log is an append-only list of timestamped messages.
type Log struct {
	clock   clockwork.Clock
	mu      sync.Mutex
	entries []domain.SessionLogEntry
}

// New creates an empty log. A nil clock means wall time.
func New(clock clockwork.Clock) *Log {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Log{clock: clock}
}

// Append records message with the current time.
func (l *Log) Append(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, domain.SessionLogEntry{
		Timestamp: l.clock.Now(),
		Message:   message,
	})
}

// Appendf formats and records a message.
func (l *Log) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}

// Entries returns a copy of everything logged so far, oldest first.
func (l *Log) Entries() []domain.SessionLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.SessionLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns entries appended after the first n.
func (l *Log) Since(n int) []domain.SessionLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n >= len(l.entries) {
		return nil
	}
	out := make([]domain.SessionLogEntry, len(l.entries)-n)
	copy(out, l.entries[n:])
	return out
}

// Lines renders every entry as "[hh:mm:ss] message".
func (l *Log) Lines() []string {
	entries := l.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
