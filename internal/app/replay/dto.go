package replay

import "gridclash/internal/domain/sim"

type Request struct {
	RunID     string
	Limit     int
	FromRound int
	ToRound   int
}

// Summary is the board summary carried by the last round_completed event.
type Summary struct {
	Round     int        `json:"round"`
	Status    sim.Status `json:"status"`
	Pieces    int        `json:"pieces"`
	Agents    int        `json:"agents"`
	Resources int        `json:"resources"`
}

type Response struct {
	Events []sim.Event `json:"events"`
	Latest Summary     `json:"latest"`
}
