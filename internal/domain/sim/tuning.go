package sim

const (
	MinWidth  = 3
	MinHeight = 3

	// Auto population puts cells/InitAgentFactor agents and
	// cells/InitResourceFactor resources on the grid.
	InitAgentFactor    = 4
	InitResourceFactor = 2

	DefaultStartingAgentEnergy      = 20.0
	DefaultStartingResourceCapacity = 10.0
	DefaultAgentFatigueRate         = 0.3
	DefaultAdvantageMultiplier      = 2.0
)

// Tuning holds the numeric rules of a run.
type Tuning struct {
	StartingAgentEnergy      float64 `yaml:"starting_agent_energy" json:"starting_agent_energy"`
	StartingResourceCapacity float64 `yaml:"starting_resource_capacity" json:"starting_resource_capacity"`
	AgentFatigueRate         float64 `yaml:"agent_fatigue_rate" json:"agent_fatigue_rate"`
	AdvantageMultiplier      float64 `yaml:"advantage_multiplier" json:"advantage_multiplier"`
}

func DefaultTuning() Tuning {
	return Tuning{
		StartingAgentEnergy:      DefaultStartingAgentEnergy,
		StartingResourceCapacity: DefaultStartingResourceCapacity,
		AgentFatigueRate:         DefaultAgentFatigueRate,
		AdvantageMultiplier:      DefaultAdvantageMultiplier,
	}
}

// withDefaults fills unset fields. Fatigue may be zero, so only a negative
// rate is replaced.
func (t Tuning) withDefaults() Tuning {
	def := DefaultTuning()
	if t == (Tuning{}) {
		return def
	}
	if t.StartingAgentEnergy <= 0 {
		t.StartingAgentEnergy = def.StartingAgentEnergy
	}
	if t.StartingResourceCapacity <= 0 {
		t.StartingResourceCapacity = def.StartingResourceCapacity
	}
	if t.AgentFatigueRate < 0 {
		t.AgentFatigueRate = def.AgentFatigueRate
	}
	if t.AdvantageMultiplier <= 0 {
		t.AdvantageMultiplier = def.AdvantageMultiplier
	}
	return t
}
