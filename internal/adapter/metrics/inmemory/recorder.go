package inmemory

import (
	"sync"

	"gridclash/internal/domain/sim"
)

type Snapshot struct {
	RoundsTotal     uint64            `json:"rounds_total"`
	StepFailures    uint64            `json:"step_failures"`
	Combats         uint64            `json:"combats"`
	Consumptions    uint64            `json:"consumptions"`
	Removals        uint64            `json:"removals"`
	GamesOver       uint64            `json:"games_over"`
	ByCombatOutcome map[string]uint64 `json:"by_combat_outcome"`
	ByConsumedKind  map[string]uint64 `json:"by_consumed_kind"`
	ByEventType     map[string]uint64 `json:"by_event_type"`
}

// Recorder counts what the engine reports through round events.
type Recorder struct {
	mu        sync.Mutex
	rounds    uint64
	failures  uint64
	byType    map[string]uint64
	byOutcome map[string]uint64
	byKind    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byType:    map[string]uint64{},
		byOutcome: map[string]uint64{},
		byKind:    map[string]uint64{},
	}
}

func (r *Recorder) RecordRounds(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds += uint64(n)
}

func (r *Recorder) RecordEvents(events []sim.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range events {
		r.byType[string(e.Type)]++
		switch e.Type {
		case sim.EventCombat:
			if outcome, ok := e.Payload["outcome"].(string); ok {
				r.byOutcome[outcome]++
			}
		case sim.EventConsumed:
			if tag, ok := e.Payload["resource"].(string); ok && tag != "" {
				r.byKind[resourceKind(tag[0])]++
			}
		}
	}
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		RoundsTotal:     r.rounds,
		StepFailures:    r.failures,
		Combats:         r.byType[string(sim.EventCombat)],
		Consumptions:    r.byType[string(sim.EventConsumed)],
		Removals:        r.byType[string(sim.EventRemoved)],
		GamesOver:       r.byType[string(sim.EventGameOver)],
		ByCombatOutcome: copyCounts(r.byOutcome),
		ByConsumedKind:  copyCounts(r.byKind),
		ByEventType:     copyCounts(r.byType),
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func resourceKind(tag byte) string {
	for _, k := range sim.AllKinds() {
		if k.IsResource() && k.Tag() == tag {
			return string(k)
		}
	}
	return "unknown"
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
