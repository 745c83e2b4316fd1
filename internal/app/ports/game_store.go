package ports

import (
	"context"

	"gridclash/internal/domain/sim"
)

// GameStore holds the live games of the process. With serialises access
// per run, so fn may mutate g freely.
type GameStore interface {
	Put(ctx context.Context, runID string, g *sim.Game) error
	With(ctx context.Context, runID string, fn func(g *sim.Game) error) error
}
