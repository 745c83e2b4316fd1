package memory

import (
	"context"

	"gridclash/internal/app/ports"
)

type RunRepo struct {
	store *Store
}

func NewRunRepo(store *Store) RunRepo {
	return RunRepo{store: store}
}

func (r RunRepo) Save(_ context.Context, rec ports.RunRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if current, ok := r.store.runs[rec.RunID]; ok && rec.CreatedAt.IsZero() {
		rec.CreatedAt = current.CreatedAt
	}
	r.store.runs[rec.RunID] = rec
	return nil
}

func (r RunRepo) GetByRunID(_ context.Context, runID string) (ports.RunRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.runs[runID]
	if !ok {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return rec, nil
}
