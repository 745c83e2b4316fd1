// Package strategy holds the decision policies that pick an agent's action
// from its 3x3 surroundings.
package strategy

import (
	"errors"
	"math/rand"
	"strings"

	"gridclash/internal/domain/grid"
)

// Strategy maps a local view to an action.
type Strategy interface {
	Decide(s grid.Surroundings) grid.ActionType
}

// EnergyObserver is implemented by policies that track the energy of the
// agent owning them. The engine reports the current energy before each
// decision only when the game enables energy tracking.
type EnergyObserver interface {
	ObserveEnergy(energy float64)
}

// Func adapts a plain function to Strategy.
type Func func(s grid.Surroundings) grid.ActionType

func (f Func) Decide(s grid.Surroundings) grid.ActionType { return f(s) }

const (
	NameAggressive = "aggressive"
	NameForager    = "forager"
	NameIdle       = "idle"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

func Names() []string {
	return []string{NameAggressive, NameForager, NameIdle}
}

// Lookup builds a policy by name. energy is the owning agent's starting
// energy and rng the run's random source.
func Lookup(name string, energy float64, rng *rand.Rand) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameAggressive:
		return NewAggressive(energy, rng), nil
	case NameForager:
		return NewForager(rng), nil
	case NameIdle, "stay":
		return Idle{}, nil
	default:
		return nil, ErrUnknownStrategy
	}
}

// pick chooses uniformly among candidate window indices.
func pick(rng *rand.Rand, candidates []int) grid.ActionType {
	switch len(candidates) {
	case 0:
		return grid.ActionStay
	case 1:
		return grid.ActionForIndex(candidates[0])
	}
	return grid.ActionForIndex(candidates[rng.Intn(len(candidates))])
}

// firstTier returns the candidates of the first matcher that has any.
func firstTier(s grid.Surroundings, tiers ...func(grid.PieceType) bool) []int {
	for _, match := range tiers {
		if c := s.Indices(match); len(c) > 0 {
			return c
		}
	}
	return nil
}
