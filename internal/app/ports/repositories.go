package ports

import (
	"context"
	"time"

	"gridclash/internal/domain/sim"
)

// RunRecord is the persisted summary of a run. The live game itself only
// exists in the GameStore.
type RunRecord struct {
	RunID        string
	Width        int
	Height       int
	Seed         int64
	Manual       bool
	SimplePolicy string
	Round        int
	Status       sim.Status
	Pieces       int
	Agents       int
	Resources    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RunRepository interface {
	// Save inserts the record or overwrites the one with the same RunID.
	Save(ctx context.Context, rec RunRecord) error
	GetByRunID(ctx context.Context, runID string) (RunRecord, error)
}

// EventRepository is the append-only round event log of each run.
type EventRepository interface {
	Append(ctx context.Context, runID string, events []sim.Event) error
	// ListByRunID returns events in the order they happened. A positive
	// limit keeps only the most recent ones.
	ListByRunID(ctx context.Context, runID string, limit int) ([]sim.Event, error)
}

// Refresh copies the live state of g into the record.
func (r RunRecord) Refresh(g *sim.Game, now time.Time) RunRecord {
	r.Width = g.Width()
	r.Height = g.Height()
	r.Round = g.RoundNumber()
	r.Status = g.Status()
	r.Pieces = g.NumPieces()
	r.Agents = g.NumAgents()
	r.Resources = g.NumResources()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	return r
}
