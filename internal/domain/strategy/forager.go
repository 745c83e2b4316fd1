package strategy

import (
	"math/rand"

	"gridclash/internal/domain/grid"
	"gridclash/internal/util/rng"
)

// Forager heads for any adjacent resource, otherwise wanders into a free
// cell. It never picks a fight on purpose.
type Forager struct {
	rng *rand.Rand
}

func NewForager(r *rand.Rand) *Forager {
	if r == nil {
		r = rng.New(0)
	}
	return &Forager{rng: r}
}

func (f *Forager) Decide(s grid.Surroundings) grid.ActionType {
	return pick(f.rng, firstTier(s,
		grid.PieceType.IsResource,
		grid.Is(grid.PieceEmpty),
	))
}

// Idle never moves.
type Idle struct{}

func (Idle) Decide(grid.Surroundings) grid.ActionType { return grid.ActionStay }

var (
	_ Strategy = (*Forager)(nil)
	_ Strategy = Idle{}
)
