package observe

import (
	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/sim"
)

type Request struct {
	RunID string
	X     int
	Y     int
}

// Cell is one entry of the 3x3 window, row-major from the north-west.
type Cell struct {
	Offset grid.Position   `json:"offset"`
	Type   grid.PieceType  `json:"type"`
	Action grid.ActionType `json:"action"`
}

type Response struct {
	Position     grid.Position     `json:"position"`
	Surroundings grid.Surroundings `json:"surroundings"`
	Cells        []Cell            `json:"cells"`
	Piece        *sim.PieceView    `json:"piece,omitempty"`
}
