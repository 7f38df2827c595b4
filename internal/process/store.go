package process

import "sync"

// Kinds of log entries. Agent and gateway are the supervised children;
// shell entries come from nanotop itself.
const (
	KindAgent   = "agent"
	KindGateway = "gateway"
	KindShell   = "shell"
)

// Streams a log entry can originate from.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// maxLogLines caps the shared log history.
const maxLogLines = 2000

// LogEntry is a single line captured from a child process stream.
type LogEntry struct {
	Kind   string
	Stream string
	Text   string
}

// Store is the bounded, thread-safe log history shared by every child
// stream. Once full, each append drops the oldest entry. Append
// reports the streaming flag so callers can forward the entry to the
// UI without holding the lock.
type Store struct {
	mu        sync.Mutex
	entries   []LogEntry
	head      int
	count     int
	total     uint64
	streaming bool
}

// NewStore creates a log store with the given capacity. Zero or
// negative capacities fall back to the default.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = maxLogLines
	}
	return &Store{entries: make([]LogEntry, capacity)}
}

// Append records an entry, dropping the oldest once the store is full,
// and reports whether streaming is currently enabled.
func (s *Store) Append(entry LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count < len(s.entries) {
		s.entries[(s.head+s.count)%len(s.entries)] = entry
		s.count++
	} else {
		s.entries[s.head] = entry
		s.head = (s.head + 1) % len(s.entries)
	}
	s.total++
	return s.streaming
}

// Snapshot returns the stored entries in append order, oldest first.
func (s *Store) Snapshot() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 {
		return nil
	}
	result := make([]LogEntry, s.count)
	if s.head+s.count <= len(s.entries) {
		copy(result, s.entries[s.head:s.head+s.count])
	} else {
		n := copy(result, s.entries[s.head:])
		copy(result[n:], s.entries[:s.head])
	}
	return result
}

// Tail returns up to n of the most recent entries, oldest first.
func (s *Store) Tail(n int) []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || s.count == 0 {
		return nil
	}
	if n > s.count {
		n = s.count
	}
	result := make([]LogEntry, n)
	start := (s.head + s.count - n) % len(s.entries)
	for i := 0; i < n; i++ {
		result[i] = s.entries[(start+i)%len(s.entries)]
	}
	return result
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// TotalWritten returns the number of entries ever appended, including
// entries already dropped.
func (s *Store) TotalWritten() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// SetStreaming toggles live forwarding of new entries. Disabling keeps
// history intact; re-enabling does not replay entries appended while
// the flag was off.
func (s *Store) SetStreaming(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaming = enabled
}

// StreamingEnabled reports whether new entries are forwarded live.
func (s *Store) StreamingEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaming
}
