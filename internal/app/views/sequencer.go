package views

import (
	"sync"
	"time"
)

// DefaultSequenceIdle is how long a view instance is remembered after its
// last request.
const DefaultSequenceIdle = 30 * time.Minute

type sequenceEntry struct {
	latest   uint64
	lastSeen time.Time
}

// Sequencer tracks the highest request sequence seen per view instance so
// that a slow response to an older request can be recognised and discarded.
// Keys must identify one mounted view (user, view name and a client instance
// id); a new tab or a reload brings a new instance and starts over.
type Sequencer struct {
	mu      sync.Mutex
	entries map[string]*sequenceEntry
	idle    time.Duration
	now     func() time.Time
	swept   time.Time
}

func NewSequencer() *Sequencer {
	return newSequencer(DefaultSequenceIdle, time.Now)
}

// newSequencer forgets instances idle for longer than idle.
func newSequencer(idle time.Duration, now func() time.Time) *Sequencer {
	return &Sequencer{entries: make(map[string]*sequenceEntry), idle: idle, now: now}
}

// Observe records seq for key. The latest value only moves forward; it
// reports whether seq is now the latest.
func (s *Sequencer) Observe(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now()
	s.sweep(t)

	e, ok := s.entries[key]
	if !ok {
		e = &sequenceEntry{}
		s.entries[key] = e
	}
	e.lastSeen = t
	if seq > e.latest {
		e.latest = seq
	}
	return seq == e.latest
}

// IsLatest reports whether seq is still the latest observed for key.
func (s *Sequencer) IsLatest(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return ok && seq == e.latest
}

func (s *Sequencer) tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweep drops idle instances, at most once per idle period. Callers hold mu.
func (s *Sequencer) sweep(t time.Time) {
	if t.Sub(s.swept) < s.idle {
		return
	}
	for key, e := range s.entries {
		if t.Sub(e.lastSeen) >= s.idle {
			delete(s.entries, key)
		}
	}
	s.swept = t
}
