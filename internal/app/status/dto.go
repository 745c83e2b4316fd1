package status

import (
	"time"

	"gridclash/internal/domain/sim"
)

type Request struct {
	RunID string
}

type Response struct {
	RunID     string     `json:"run_id"`
	Round     int        `json:"round"`
	Status    sim.Status `json:"status"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Seed      int64      `json:"seed"`
	Pieces    int        `json:"pieces"`
	Agents    int        `json:"agents"`
	Simple    int        `json:"simple"`
	Strategic int        `json:"strategic"`
	Resources int        `json:"resources"`
	// Live is false when the run is only known from its stored summary.
	Live      bool       `json:"live"`
	Board     *sim.Frame `json:"board,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}
