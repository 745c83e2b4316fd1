package run

import (
	"gridclash/internal/domain/sim"
)

type CreateRequest struct {
	Width        int
	Height       int
	Manual       bool
	Seed         int64
	SimplePolicy string
}

type CreateResponse struct {
	RunID        string     `json:"run_id"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Seed         int64      `json:"seed"`
	SimplePolicy string     `json:"simple_policy"`
	Status       sim.Status `json:"status"`
	Pieces       int        `json:"pieces"`
	Agents       int        `json:"agents"`
	Resources    int        `json:"resources"`
}

type PlaceRequest struct {
	RunID    string
	Kind     string
	X        int
	Y        int
	Energy   *float64
	Capacity *float64
	Strategy string
}

type PlaceResponse struct {
	Piece sim.PieceView `json:"piece"`
}
