package status

import (
	"context"
	"errors"
	"testing"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/sim"
)

func TestUseCase_RejectsEmptyRunID(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PrefersLiveGame(t *testing.T) {
	g, err := sim.New(4, 3, true)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	_ = g.AddSimple(grid.Position{X: 0, Y: 0})
	_ = g.AddStrategic(grid.Position{X: 1, Y: 1}, nil)
	_ = g.AddFood(grid.Position{X: 2, Y: 3})

	uc := UseCase{
		Games: statusStore{game: g},
		Runs:  statusRunRepo{rec: ports.RunRecord{RunID: "run-1", Seed: 9, Width: 4, Height: 3}},
	}
	out, err := uc.Execute(context.Background(), Request{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !out.Live || out.Board == nil {
		t.Fatalf("expected live board")
	}
	if out.Simple != 1 || out.Strategic != 1 || out.Resources != 1 || out.Pieces != 3 {
		t.Fatalf("unexpected counts %+v", out)
	}
	if out.Seed != 9 || out.Board.Cell(2, 3) != "F3" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestUseCase_FallsBackToStoredSummary(t *testing.T) {
	uc := UseCase{
		Games: statusStore{},
		Runs: statusRunRepo{rec: ports.RunRecord{
			RunID:  "run-1",
			Round:  12,
			Status: sim.StatusOver,
			Agents: 2,
		}},
	}
	out, err := uc.Execute(context.Background(), Request{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Live || out.Board != nil {
		t.Fatalf("stored-only run should not report a board")
	}
	if out.Round != 12 || out.Status != sim.StatusOver || out.Agents != 2 {
		t.Fatalf("unexpected summary %+v", out)
	}
}

func TestUseCase_PropagatesRunRepoError(t *testing.T) {
	uc := UseCase{Games: statusStore{}, Runs: statusRunRepo{err: ports.ErrNotFound}}
	if _, err := uc.Execute(context.Background(), Request{RunID: "run-1"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type statusStore struct {
	game *sim.Game
}

func (s statusStore) Put(_ context.Context, _ string, _ *sim.Game) error { return nil }

func (s statusStore) With(_ context.Context, _ string, fn func(*sim.Game) error) error {
	if s.game == nil {
		return ports.ErrNotFound
	}
	return fn(s.game)
}

type statusRunRepo struct {
	rec ports.RunRecord
	err error
}

func (r statusRunRepo) Save(_ context.Context, _ ports.RunRecord) error { return nil }

func (r statusRunRepo) GetByRunID(_ context.Context, _ string) (ports.RunRecord, error) {
	if r.err != nil {
		return ports.RunRecord{}, r.err
	}
	return r.rec, nil
}

var (
	_ ports.GameStore     = statusStore{}
	_ ports.RunRepository = statusRunRepo{}
)
