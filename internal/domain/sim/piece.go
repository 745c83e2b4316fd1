package sim

import (
	"strconv"

	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/strategy"
)

// piece is one arena record. Agents use energy and policy, resources use
// capacity. All variant behaviour lives in the switches below.
type piece struct {
	id       int
	kind     Kind
	pos      grid.Position
	energy   float64
	capacity float64
	policy   strategy.Strategy
	turned   bool
	finished bool
}

// PieceView is a read-only copy of a piece.
type PieceView struct {
	ID       int           `json:"id"`
	Kind     Kind          `json:"kind"`
	Tag      string        `json:"tag"`
	Position grid.Position `json:"position"`
	Energy   float64       `json:"energy,omitempty"`
	Capacity float64       `json:"capacity,omitempty"`
	Viable   bool          `json:"viable"`
}

func (p *piece) tag() string {
	return string(p.kind.Tag()) + strconv.Itoa(p.id)
}

func (p *piece) view() PieceView {
	return PieceView{
		ID:       p.id,
		Kind:     p.kind,
		Tag:      p.tag(),
		Position: p.pos,
		Energy:   p.energy,
		Capacity: p.capacity,
		Viable:   p.viable(),
	}
}

func (p *piece) viable() bool {
	return !p.finished
}

func (p *piece) finish() {
	p.finished = true
}

func (p *piece) age(t Tuning) {
	switch p.kind {
	case KindSimple, KindStrategic:
		p.energy -= t.AgentFatigueRate
	case KindFood, KindAdvantage:
	}
}

// decide asks the policy for an action. With trackEnergy set, a strategic
// policy that observes energy is told the agent's current energy first;
// otherwise it keeps the energy it was built with.
func (p *piece) decide(s grid.Surroundings, trackEnergy bool) grid.ActionType {
	switch p.kind {
	case KindSimple:
		return p.policy.Decide(s)
	case KindStrategic:
		if obs, ok := p.policy.(strategy.EnergyObserver); ok && trackEnergy {
			obs.ObserveEnergy(p.energy)
		}
		return p.policy.Decide(s)
	case KindFood, KindAdvantage:
		return grid.ActionStay
	}
	return grid.ActionStay
}

// yield is what an agent gains by consuming the resource right now.
func (p *piece) yield(t Tuning) float64 {
	switch p.kind {
	case KindFood:
		return p.capacity
	case KindAdvantage:
		return p.capacity * t.AdvantageMultiplier
	}
	return 0
}

// consume empties a resource and returns its yield.
func (p *piece) consume(t Tuning) float64 {
	gained := p.yield(t)
	p.capacity = 0
	p.finish()
	return gained
}
