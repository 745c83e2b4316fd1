package memory

import (
	"sync"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/sim"
)

// Store backs the in-memory repositories. mu guards the maps; txMu
// serialises transactions so a step's event append and record update land
// together.
type Store struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	runs   map[string]ports.RunRecord
	events map[string][]sim.Event
}

func NewStore() *Store {
	return &Store{
		runs:   make(map[string]ports.RunRecord),
		events: make(map[string][]sim.Event),
	}
}
