package strategy

import (
	"math/rand"

	"gridclash/internal/domain/grid"
	"gridclash/internal/util/rng"
)

// DefaultAggressionThreshold is three quarters of the default starting agent
// energy (20).
const DefaultAggressionThreshold = 20 * 0.75

// Aggressive attacks neighbouring agents while its tracked energy is above
// the threshold, then goes for advantages, free cells and finally food.
type Aggressive struct {
	energy    float64
	threshold float64
	rng       *rand.Rand
}

type AggressiveOption func(*Aggressive)

func WithThreshold(threshold float64) AggressiveOption {
	return func(a *Aggressive) { a.threshold = threshold }
}

func NewAggressive(energy float64, r *rand.Rand, opts ...AggressiveOption) *Aggressive {
	if r == nil {
		r = rng.New(0)
	}
	a := &Aggressive{energy: energy, threshold: DefaultAggressionThreshold, rng: r}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggressive) Energy() float64    { return a.energy }
func (a *Aggressive) Threshold() float64 { return a.threshold }

func (a *Aggressive) ObserveEnergy(energy float64) { a.energy = energy }

func (a *Aggressive) Decide(s grid.Surroundings) grid.ActionType {
	var candidates []int
	if a.energy > a.threshold {
		candidates = s.Indices(grid.PieceType.IsAgent)
	}
	if len(candidates) == 0 {
		candidates = firstTier(s,
			grid.Is(grid.PieceAdvantage),
			grid.Is(grid.PieceEmpty),
			grid.Is(grid.PieceFood),
		)
	}
	return pick(a.rng, candidates)
}

var (
	_ Strategy       = (*Aggressive)(nil)
	_ EnergyObserver = (*Aggressive)(nil)
)
