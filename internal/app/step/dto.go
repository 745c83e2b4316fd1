package step

import "gridclash/internal/domain/sim"

type Request struct {
	RunID  string
	Rounds int
}

type Response struct {
	RunID     string      `json:"run_id"`
	Played    int         `json:"played"`
	Round     int         `json:"round"`
	Status    sim.Status  `json:"status"`
	Pieces    int         `json:"pieces"`
	Agents    int         `json:"agents"`
	Resources int         `json:"resources"`
	Events    []sim.Event `json:"events"`
}
