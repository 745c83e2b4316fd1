package step

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/sim"
)

const DefaultMaxRounds = 100

var (
	ErrInvalidRequest = errors.New("invalid step request")
	ErrRunOver        = fmt.Errorf("%w: run is over", ports.ErrConflict)
)

// UseCase advances a live run. Rounds stop early once the game is over;
// stepping a run that is already over fails with ErrRunOver.
type UseCase struct {
	Games     ports.GameStore
	Runs      ports.RunRepository
	Events    ports.EventRepository
	TxManager ports.TxManager
	Metrics   ports.RoundMetrics
	MaxRounds int
	Logger    *slog.Logger
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" || req.Rounds < 0 {
		return Response{}, ErrInvalidRequest
	}
	rounds := req.Rounds
	if rounds == 0 {
		rounds = 1
	}
	limit := u.MaxRounds
	if limit <= 0 {
		limit = DefaultMaxRounds
	}
	if rounds > limit {
		rounds = limit
	}

	out := Response{RunID: req.RunID}
	err := u.Games.With(ctx, req.RunID, func(g *sim.Game) error {
		if g.Status() == sim.StatusOver {
			// Events left over from a failed save of the final rounds.
			if pending := g.DrainEvents(); len(pending) > 0 {
				if err := u.persist(ctx, req.RunID, g, pending); err != nil {
					return err
				}
			}
			return ErrRunOver
		}
		g.Start()
		for out.Played < rounds && g.Status() != sim.StatusOver {
			g.Round()
			out.Played++
		}
		out.Events = g.DrainEvents()
		out.Round = g.RoundNumber()
		out.Status = g.Status()
		out.Pieces = g.NumPieces()
		out.Agents = g.NumAgents()
		out.Resources = g.NumResources()
		return u.persist(ctx, req.RunID, g, out.Events)
	})
	if err != nil {
		if u.Metrics != nil && !errors.Is(err, ErrRunOver) && !errors.Is(err, ports.ErrNotFound) {
			u.Metrics.RecordFailure()
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordRounds(out.Played)
		u.Metrics.RecordEvents(out.Events)
	}
	if u.Logger != nil {
		u.Logger.Info("run stepped",
			"run_id", req.RunID,
			"played", out.Played,
			"round", out.Round,
			"status", string(out.Status),
			"events", len(out.Events),
		)
	}
	return out, nil
}

// persist saves the refreshed record and then appends events. On failure the
// events go back into the game so the next step saves them.
func (u UseCase) persist(ctx context.Context, runID string, g *sim.Game, events []sim.Event) error {
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := u.Runs.GetByRunID(txCtx, runID)
		if err != nil {
			return err
		}
		if err := u.Runs.Save(txCtx, rec.Refresh(g, u.now())); err != nil {
			return err
		}
		return u.Events.Append(txCtx, runID, events)
	})
	if err != nil {
		g.RequeueEvents(events)
	}
	return err
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now()
}
