package app

import "sync/atomic"

// WorkSignal is the single-bit handoff between the scheduler's tick
// goroutine and the supervisor's main loop. Single writer on the tick side,
// single reader on the loop side; neither operation blocks or allocates.
//
// Once set, the flag stays set until exactly one Take clears it. Multiple
// ticks before a Take coalesce into one pending unit of work: only "was
// there at least one tick since the last check" matters.
type WorkSignal struct {
	pending atomic.Bool
}

// NewWorkSignal creates a cleared work signal.
func NewWorkSignal() *WorkSignal {
	return &WorkSignal{}
}

// Set marks work as pending. Idempotent: setting an already-set signal is a
// no-op from the reader's perspective.
func (s *WorkSignal) Set() {
	s.pending.Store(true)
}

// Take atomically reads the flag and clears it, reporting whether work was
// pending. A Set racing with a Take is either observed by this Take or
// remains set for the next one; a tick is never lost.
func (s *WorkSignal) Take() bool {
	return s.pending.Swap(false)
}
