package store

import (
	"github.com/google/uuid"
)

// Quantity reports the current quantity for productId and whether a line exists.
func (s *Store) Quantity(productId uuid.UUID) (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductId == productId {
			return s.lines[i].Quantity, true
		}
	}
	return 0, false
}
