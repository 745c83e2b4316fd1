package status

import (
	"context"
	"errors"
	"strings"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Games ports.GameStore
	Runs  ports.RunRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" {
		return Response{}, ErrInvalidRequest
	}
	rec, err := u.Runs.GetByRunID(ctx, req.RunID)
	if err != nil {
		return Response{}, err
	}
	out := Response{
		RunID:     rec.RunID,
		Round:     rec.Round,
		Status:    rec.Status,
		Width:     rec.Width,
		Height:    rec.Height,
		Seed:      rec.Seed,
		Pieces:    rec.Pieces,
		Agents:    rec.Agents,
		Resources: rec.Resources,
		UpdatedAt: rec.UpdatedAt,
	}
	err = u.Games.With(ctx, req.RunID, func(g *sim.Game) error {
		frame := g.Frame()
		out.Live = true
		out.Board = &frame
		out.Round = g.RoundNumber()
		out.Status = g.Status()
		out.Pieces = g.NumPieces()
		out.Agents = g.NumAgents()
		out.Simple = g.NumSimple()
		out.Strategic = g.NumStrategic()
		out.Resources = g.NumResources()
		return nil
	})
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, err
	}
	return out, nil
}
