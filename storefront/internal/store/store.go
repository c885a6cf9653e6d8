// Package store holds the live cart lines for the single shopping session.
// The store is volatile on purpose: it starts empty with the process, is never
// persisted, and is emptied wholesale by a successful checkout.
package store

import (
	"sync"

	"github.com/google/uuid"
)

type Line struct {
	ProductId uuid.UUID
	Quantity  int32
}

type Store struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Store {
	return &Store{}
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Add merges quantity into an existing line for productId or appends a new one.
// At most one line per productId exists at any time.
func (s *Store) Add(productId uuid.UUID, quantity int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductId == productId {
			s.lines[i].Quantity += quantity
			return
		}
	}
	s.lines = append(s.lines, Line{ProductId: productId, Quantity: quantity})
}

// Replace sets the quantity of the line for productId exactly. It reports
// whether a matching line existed.
func (s *Store) Replace(productId uuid.UUID, quantity int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductId == productId {
			s.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Remove drops the line for productId. Removing an absent line is a no-op.
func (s *Store) Remove(productId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductId == productId {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}
