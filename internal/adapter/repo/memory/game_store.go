package memory

import (
	"context"
	"sync"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/sim"
)

type liveGame struct {
	mu   sync.Mutex
	game *sim.Game
}

// GameStore keeps live games in process memory, one lock per run.
type GameStore struct {
	mu    sync.RWMutex
	games map[string]*liveGame
}

func NewGameStore() *GameStore {
	return &GameStore{games: make(map[string]*liveGame)}
}

func (s *GameStore) Put(_ context.Context, runID string, g *sim.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[runID]; ok {
		return ports.ErrConflict
	}
	s.games[runID] = &liveGame{game: g}
	return nil
}

func (s *GameStore) With(ctx context.Context, runID string, fn func(g *sim.Game) error) error {
	s.mu.RLock()
	lg, ok := s.games[runID]
	s.mu.RUnlock()
	if !ok {
		return ports.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()
	return fn(lg.game)
}

// Len reports how many runs are live.
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
