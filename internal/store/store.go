package store

import (
	"sync"

	"geminid-connect/internal/model"
)

// Store is the process-lifetime activity log. Entries are never mutated or
// deleted and the log is unbounded; most recent entries come first.
type Store struct {
	mu       sync.RWMutex
	messages []model.Message
	calls    []model.Call
}

func New() *Store {
	return &Store{}
}

func (s *Store) AppendMessage(m model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append([]model.Message{m}, s.messages...)
}

func (s *Store) AppendCall(c model.Call) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append([]model.Call{c}, s.calls...)
}

// Snapshot returns copies of both logs, most recent first. The slices are
// never nil so they marshal as empty arrays.
func (s *Store) Snapshot() ([]model.Message, []model.Call) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]model.Message, len(s.messages))
	copy(messages, s.messages)
	calls := make([]model.Call, len(s.calls))
	copy(calls, s.calls)
	return messages, calls
}
