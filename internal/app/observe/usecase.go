package observe

import (
	"context"
	"errors"
	"strings"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid observe request")

// UseCase reports what a piece standing at a cell would sense, plus the
// occupant of the cell itself when there is one.
type UseCase struct {
	Games ports.GameStore
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" {
		return Response{}, ErrInvalidRequest
	}
	pos := grid.Position{X: req.X, Y: req.Y}
	out := Response{Position: pos}
	err := u.Games.With(ctx, req.RunID, func(g *sim.Game) error {
		s, err := g.Surroundings(pos)
		if err != nil {
			return err
		}
		out.Surroundings = s
		out.Cells = buildCells(s)

		p, err := g.Piece(req.X, req.Y)
		switch {
		case err == nil:
			out.Piece = &p
		case errors.Is(err, sim.ErrPositionEmpty):
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func buildCells(s grid.Surroundings) []Cell {
	cells := make([]Cell, 0, grid.WindowSize)
	for i, t := range s {
		dx, dy := grid.WindowOffset(i)
		cells = append(cells, Cell{
			Offset: grid.Position{X: dx, Y: dy},
			Type:   t,
			Action: grid.ActionForIndex(i),
		})
	}
	return cells
}
