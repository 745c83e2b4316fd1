package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/sim"
	"gridclash/internal/domain/strategy"
	"gridclash/internal/util/rng"
)

var ErrInvalidRequest = errors.New("invalid run request")

// DefaultMaxSide bounds each grid dimension when Defaults leaves the limits
// unset.
const DefaultMaxSide = 1000

// Defaults fill the fields a create request leaves unset. MaxWidth and
// MaxHeight cap what a request may ask for.
type Defaults struct {
	Width        int
	Height       int
	MaxWidth     int
	MaxHeight    int
	SimplePolicy string
	Tuning       sim.Tuning
}

type CreateUseCase struct {
	Games     ports.GameStore
	Runs      ports.RunRepository
	Events    ports.EventRepository
	TxManager ports.TxManager
	Defaults  Defaults
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

func (u CreateUseCase) Execute(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	if u.Games == nil || u.Runs == nil || u.Events == nil || u.TxManager == nil {
		return CreateResponse{}, ErrInvalidRequest
	}
	now := nowFn(u.Now)()
	if req.Width == 0 {
		req.Width = u.Defaults.Width
	}
	if req.Height == 0 {
		req.Height = u.Defaults.Height
	}
	maxWidth, maxHeight := limit(u.Defaults.MaxWidth), limit(u.Defaults.MaxHeight)
	if req.Width < 0 || req.Height < 0 || req.Width > maxWidth || req.Height > maxHeight {
		return CreateResponse{}, fmt.Errorf("%w: grid %dx%d outside 0..%dx%d", ErrInvalidRequest, req.Width, req.Height, maxWidth, maxHeight)
	}
	policy := strings.TrimSpace(req.SimplePolicy)
	if policy == "" {
		policy = u.Defaults.SimplePolicy
	}
	if policy == "" {
		policy = strategy.NameIdle
	}
	if req.Seed == 0 {
		req.Seed = now.UnixNano()
	}

	tuning := u.Defaults.Tuning
	if tuning == (sim.Tuning{}) {
		tuning = sim.DefaultTuning()
	}
	r := rng.New(req.Seed)
	simple, err := strategy.Lookup(policy, tuning.StartingAgentEnergy, r)
	if err != nil {
		return CreateResponse{}, fmt.Errorf("%w: simple policy %q: %v", ErrInvalidRequest, policy, err)
	}
	g, err := sim.New(req.Width, req.Height, req.Manual,
		sim.WithRand(r),
		sim.WithSimplePolicy(simple),
		sim.WithTuning(tuning),
		sim.WithLogger(u.Logger),
		sim.WithEvents(),
	)
	if err != nil {
		return CreateResponse{}, err
	}

	runID := newID(u.NewID)
	rec := ports.RunRecord{
		RunID:        runID,
		Seed:         req.Seed,
		Manual:       req.Manual,
		SimplePolicy: policy,
	}.Refresh(g, now)
	placed := g.DrainEvents()
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Runs.Save(txCtx, rec); err != nil {
			return err
		}
		return u.Events.Append(txCtx, runID, placed)
	})
	if err != nil {
		return CreateResponse{}, err
	}
	if err := u.Games.Put(ctx, runID, g); err != nil {
		return CreateResponse{}, err
	}
	if u.Logger != nil {
		u.Logger.Info("run created",
			"run_id", runID,
			"width", rec.Width,
			"height", rec.Height,
			"seed", rec.Seed,
			"pieces", rec.Pieces,
		)
	}
	return CreateResponse{
		RunID:        runID,
		Width:        rec.Width,
		Height:       rec.Height,
		Seed:         rec.Seed,
		SimplePolicy: policy,
		Status:       rec.Status,
		Pieces:       rec.Pieces,
		Agents:       rec.Agents,
		Resources:    rec.Resources,
	}, nil
}

type PlaceUseCase struct {
	Games     ports.GameStore
	Runs      ports.RunRepository
	Events    ports.EventRepository
	TxManager ports.TxManager
	Now       func() time.Time
}

func (u PlaceUseCase) Execute(ctx context.Context, req PlaceRequest) (PlaceResponse, error) {
	if strings.TrimSpace(req.RunID) == "" {
		return PlaceResponse{}, ErrInvalidRequest
	}
	kind, err := sim.ParseKind(req.Kind)
	if err != nil {
		return PlaceResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.Strategy != "" && kind != sim.KindStrategic {
		return PlaceResponse{}, fmt.Errorf("%w: only strategic agents take a strategy", ErrInvalidRequest)
	}

	var out PlaceResponse
	err = u.Games.With(ctx, req.RunID, func(g *sim.Game) error {
		pos := grid.Position{X: req.X, Y: req.Y}
		opts := placeOptions(req)
		var policy strategy.Strategy
		if req.Strategy != "" {
			energy := g.Tuning().StartingAgentEnergy
			if req.Energy != nil {
				energy = *req.Energy
			}
			p, lookupErr := strategy.Lookup(req.Strategy, energy, g.Rand())
			if lookupErr != nil {
				return fmt.Errorf("%w: strategy %q: %v", ErrInvalidRequest, req.Strategy, lookupErr)
			}
			policy = p
		}
		if err := g.Add(kind, pos, policy, opts...); err != nil {
			return err
		}
		out.Piece, _ = g.Piece(req.X, req.Y)

		events := g.DrainEvents()
		err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			rec, err := u.Runs.GetByRunID(txCtx, req.RunID)
			if err != nil {
				return err
			}
			if err := u.Runs.Save(txCtx, rec.Refresh(g, nowFn(u.Now)())); err != nil {
				return err
			}
			return u.Events.Append(txCtx, req.RunID, events)
		})
		if err != nil {
			// The piece stays placed; its event is saved with the next write.
			g.RequeueEvents(events)
		}
		return err
	})
	if err != nil {
		return PlaceResponse{}, err
	}
	return out, nil
}

func placeOptions(req PlaceRequest) []sim.PlaceOption {
	var opts []sim.PlaceOption
	if req.Energy != nil {
		opts = append(opts, sim.WithEnergy(*req.Energy))
	}
	if req.Capacity != nil {
		opts = append(opts, sim.WithCapacity(*req.Capacity))
	}
	return opts
}

func limit(n int) int {
	if n <= 0 {
		return DefaultMaxSide
	}
	return n
}

func nowFn(now func() time.Time) func() time.Time {
	if now == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return now
}

func newID(fn func() string) string {
	if fn != nil {
		return fn()
	}
	return "run-" + uuid.NewString()
}
