package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/exads/chtop/internal/clickhouse"
)

// Snapshot represents the latest process list available to the UI. It is a
// value: the UI never mutates one, it only replaces it with the next.
type Snapshot struct {
	Processes           []clickhouse.Process
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Offline reports whether polling has failed at least threshold times in a
// row. Values below one are treated as one.
func (s Snapshot) Offline(threshold int) bool {
	if threshold < 1 {
		threshold = 1
	}
	return s.ConsecutiveFailures >= threshold
}

// Store coordinates concurrent updates to the snapshot between the poller
// and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored process list. When err is non-nil the previous
// processes are kept on screen and only the error state advances.
func (s *Store) Update(procs []clickhouse.Process, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Processes = cloneProcesses(procs)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Processes = cloneProcesses(s.snapshot.Processes)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneProcesses(procs []clickhouse.Process) []clickhouse.Process {
	if len(procs) == 0 {
		return nil
	}
	dup := make([]clickhouse.Process, len(procs))
	copy(dup, procs)
	return dup
}
