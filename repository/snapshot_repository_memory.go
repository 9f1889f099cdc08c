package repository

import (
	"context"
	"sync"

	"propcalc/domain"
)

// SnapshotRepositoryMemory is an in-memory implementation of SnapshotRepository.
type SnapshotRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.InputSnapshot
}

// NewSnapshotRepositoryMemory creates a new in-memory snapshot repository.
func NewSnapshotRepositoryMemory() *SnapshotRepositoryMemory {
	return &SnapshotRepositoryMemory{
		data: make(map[string]domain.InputSnapshot),
	}
}

// Save stores the snapshot in memory, replacing any with the same id.
func (r *SnapshotRepositoryMemory) Save(
	_ context.Context,
	snapshot domain.InputSnapshot,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[snapshot.ID] = snapshot
	return nil
}

func (r *SnapshotRepositoryMemory) Load(
	_ context.Context,
	id string,
) (domain.InputSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.data[id]
	return s, ok, nil
}

// Len returns the number of stored snapshots.
func (r *SnapshotRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
