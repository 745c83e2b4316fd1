package sim

import (
	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/strategy"
)

// PlaceOption overrides the starting values of a placed piece.
type PlaceOption func(*piece)

// WithEnergy sets an agent's starting energy.
func WithEnergy(energy float64) PlaceOption {
	return func(p *piece) {
		if p.kind.IsAgent() {
			p.energy = energy
		}
	}
}

// WithCapacity sets a resource's starting capacity.
func WithCapacity(capacity float64) PlaceOption {
	return func(p *piece) {
		if p.kind.IsResource() {
			p.capacity = capacity
		}
	}
}

func (g *Game) AddSimple(pos grid.Position, opts ...PlaceOption) error {
	return g.add(KindSimple, pos, nil, opts)
}

// AddStrategic places a strategic agent owning s. A nil s gets the game's
// strategy factory policy.
func (g *Game) AddStrategic(pos grid.Position, s strategy.Strategy, opts ...PlaceOption) error {
	return g.add(KindStrategic, pos, s, opts)
}

func (g *Game) AddFood(pos grid.Position, opts ...PlaceOption) error {
	return g.add(KindFood, pos, nil, opts)
}

func (g *Game) AddAdvantage(pos grid.Position, opts ...PlaceOption) error {
	return g.add(KindAdvantage, pos, nil, opts)
}

// Add places a piece of any kind; it backs callers that only know the kind
// at runtime.
func (g *Game) Add(kind Kind, pos grid.Position, s strategy.Strategy, opts ...PlaceOption) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}
	return g.add(kind, pos, s, opts)
}

func (g *Game) add(kind Kind, pos grid.Position, s strategy.Strategy, opts []PlaceOption) error {
	if err := g.checkBounds(pos); err != nil {
		return err
	}
	if g.cells[g.index(pos)] != emptyCell {
		return &PositionError{Pos: pos, Err: ErrPositionNonempty}
	}
	g.place(kind, pos, s, opts...)
	return nil
}

// place assumes pos is in bounds and free.
func (g *Game) place(kind Kind, pos grid.Position, s strategy.Strategy, opts ...PlaceOption) {
	p := piece{id: g.nextID, kind: kind, pos: pos}
	g.nextID++
	switch kind {
	case KindSimple:
		p.energy = g.tuning.StartingAgentEnergy
	case KindStrategic:
		p.energy = g.tuning.StartingAgentEnergy
	case KindFood, KindAdvantage:
		p.capacity = g.tuning.StartingResourceCapacity
	}
	for _, opt := range opts {
		opt(&p)
	}
	switch kind {
	case KindSimple:
		p.policy = g.simplePolicy
	case KindStrategic:
		if s == nil {
			s = g.strategyFactory(p.energy, g.rng)
		}
		p.policy = s
	case KindFood, KindAdvantage:
	}
	g.arena = append(g.arena, p)
	g.cells[g.index(pos)] = len(g.arena) - 1
	g.emit(EventPlaced, map[string]any{
		"piece": p.tag(),
		"kind":  string(kind),
		"x":     pos.X,
		"y":     pos.Y,
	})
}
