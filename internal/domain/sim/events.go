package sim

type EventType string

const (
	EventPlaced         EventType = "piece_placed"
	EventMoved          EventType = "piece_moved"
	EventCombat         EventType = "combat"
	EventConsumed       EventType = "resource_consumed"
	EventRemoved        EventType = "piece_removed"
	EventRoundCompleted EventType = "round_completed"
	EventGameOver       EventType = "game_over"
)

// Event is one thing that happened during a round, in resolution order.
type Event struct {
	Type    EventType      `json:"type"`
	Round   int            `json:"round"`
	Payload map[string]any `json:"payload"`
}

func (g *Game) emit(t EventType, payload map[string]any) {
	if !g.recordEvents {
		return
	}
	g.events = append(g.events, Event{Type: t, Round: g.round + 1, Payload: payload})
}

// DrainEvents returns the events recorded since the last call and clears the
// buffer. Events are recorded only when the game was built WithEvents.
func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}

// RequeueEvents puts events that could not be handed on back in front of the
// buffer, so the next DrainEvents returns them again in order.
func (g *Game) RequeueEvents(events []Event) {
	if !g.recordEvents || len(events) == 0 {
		return
	}
	g.events = append(append([]Event(nil), events...), g.events...)
}
