package store

import (
	"sync"

	"rstr/internal/domain"
)

// ResultStore is the ordered collection of matches found in one run.
// The scanner is the only writer; the UI reads lengths and indexed
// entries while the scan is still streaming, so both sides go through
// one lock.
type ResultStore interface {
	Add(m domain.Match)
	Get(index int) (domain.Match, bool)
	Len() int
	Slice(start, end int) []domain.Match
	FileCount() int
}

// MemoryResultStore is an in-memory implementation of ResultStore
type MemoryResultStore struct {
	mu      sync.RWMutex
	matches []domain.Match
	files   map[string]struct{}
}

// NewMemoryResultStore creates a new memory-based result store
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{
		files: make(map[string]struct{}),
	}
}

// Add appends a match in discovery order
func (s *MemoryResultStore) Add(m domain.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, m)
	s.files[m.FilePath] = struct{}{}
}

// Get returns the match at index, or false if the index is out of range
func (s *MemoryResultStore) Get(index int) (domain.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.matches) {
		return domain.Match{}, false
	}
	return s.matches[index], true
}

// Len returns the number of matches added so far
func (s *MemoryResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// Slice returns a copy of the matches in [start, end), clamped to the
// stored range. Used by the renderer to grab one viewport window.
func (s *MemoryResultStore) Slice(start, end int) []domain.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if start < 0 {
		start = 0
	}
	if end > len(s.matches) {
		end = len(s.matches)
	}
	if start >= end {
		return nil
	}
	result := make([]domain.Match, end-start)
	copy(result, s.matches[start:end])
	return result
}

// FileCount returns the number of distinct files with at least one match
func (s *MemoryResultStore) FileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
