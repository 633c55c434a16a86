package normalizer

import "sync/atomic"

// Sequencer hands out monotonic request tokens; only the newest is current.
type Sequencer struct {
	last atomic.Uint64
}

func (s *Sequencer) Next() uint64 { return s.last.Add(1) }

func (s *Sequencer) IsLatest(token uint64) bool { return token != 0 && s.last.Load() == token }
