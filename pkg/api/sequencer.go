package api

import "sync/atomic"

// Sequencer hands out increasing request ids so a caller can drop
// responses that were overtaken by a newer request.
type Sequencer struct {
	last atomic.Uint64
}

// Next returns the id for a new request.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// IsLatest reports whether id belongs to the most recent request.
func (s *Sequencer) IsLatest(id uint64) bool {
	return s.last.Load() == id
}
