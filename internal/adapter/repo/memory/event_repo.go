package memory

import (
	"context"

	"gridclash/internal/domain/sim"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, runID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[runID] = append(r.store.events[runID], events...)
	return nil
}

func (r EventRepo) ListByRunID(_ context.Context, runID string, limit int) ([]sim.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.store.events[runID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]sim.Event, len(all))
	copy(out, all)
	return out, nil
}
