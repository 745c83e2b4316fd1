package step

import (
	"context"
	"errors"
	"testing"
	"time"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/sim"
	"gridclash/internal/domain/strategy"
)

func TestUseCase_AdvancesAndPersists(t *testing.T) {
	g := newGame(t)
	_ = g.AddStrategic(grid.Position{X: 0, Y: 0}, strategy.Idle{})
	_ = g.AddFood(grid.Position{X: 2, Y: 2})
	g.DrainEvents()

	f := newFixture(g)
	out, err := f.useCase(10).Execute(context.Background(), Request{RunID: "run-1", Rounds: 3})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Played != 3 || out.Round != 3 || out.Status != sim.StatusPlaying {
		t.Fatalf("unexpected response %+v", out)
	}
	if len(out.Events) != 3 {
		t.Fatalf("expected one round_completed per round, got %d", len(out.Events))
	}
	if got := len(f.events.events); got != 3 {
		t.Fatalf("expected 3 persisted events, got %d", got)
	}
	if f.runs.rec.Round != 3 || f.runs.rec.Status != sim.StatusPlaying {
		t.Fatalf("record not refreshed: %+v", f.runs.rec)
	}
	if f.metrics.rounds != 3 || f.metrics.events != 3 {
		t.Fatalf("unexpected metrics %+v", f.metrics)
	}
}

func TestUseCase_StopsWhenOverAndRejectsFurtherSteps(t *testing.T) {
	g := newGame(t)
	_ = g.AddStrategic(grid.Position{X: 1, Y: 1}, strategy.NewForager(g.Rand()))
	_ = g.AddFood(grid.Position{X: 0, Y: 1})

	f := newFixture(g)
	uc := f.useCase(10)
	out, err := uc.Execute(context.Background(), Request{RunID: "run-1", Rounds: 5})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Played != 1 || out.Status != sim.StatusOver || out.Resources != 0 {
		t.Fatalf("expected the run to end after one round, got %+v", out)
	}

	_, err = uc.Execute(context.Background(), Request{RunID: "run-1"})
	if !errors.Is(err, ErrRunOver) || !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrRunOver, got %v", err)
	}
	if f.metrics.failures != 0 {
		t.Fatalf("a finished run is not a failure")
	}
}

func TestUseCase_ClampsRounds(t *testing.T) {
	g := newGame(t)
	_ = g.AddFood(grid.Position{X: 0, Y: 0})
	f := newFixture(g)

	out, err := f.useCase(2).Execute(context.Background(), Request{RunID: "run-1", Rounds: 50})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Played != 2 {
		t.Fatalf("expected clamp to 2, got %d", out.Played)
	}
	out, _ = f.useCase(2).Execute(context.Background(), Request{RunID: "run-1"})
	if out.Played != 1 || out.Round != 3 {
		t.Fatalf("zero rounds should mean one, got %+v", out)
	}
}

func TestUseCase_Errors(t *testing.T) {
	g := newGame(t)
	_ = g.AddFood(grid.Position{X: 0, Y: 0})
	f := newFixture(g)
	uc := f.useCase(10)

	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{RunID: "run-1", Rounds: -1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{RunID: "other"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	wantErr := errors.New("db down")
	f.events.err = wantErr
	if _, err := uc.Execute(context.Background(), Request{RunID: "run-1"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if f.metrics.failures != 1 {
		t.Fatalf("expected one recorded failure, got %d", f.metrics.failures)
	}
}

func TestUseCase_FailedSaveKeepsEventsForNextStep(t *testing.T) {
	g := newGame(t)
	_ = g.AddStrategic(grid.Position{X: 0, Y: 0}, strategy.Idle{})
	_ = g.AddFood(grid.Position{X: 2, Y: 2})
	g.DrainEvents()

	f := newFixture(g)
	uc := f.useCase(10)
	f.events.err = errors.New("db down")
	if _, err := uc.Execute(context.Background(), Request{RunID: "run-1", Rounds: 3}); err == nil {
		t.Fatalf("expected the save error")
	}

	f.events.err = nil
	out, err := uc.Execute(context.Background(), Request{RunID: "run-1", Rounds: 1})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Round != 4 || len(out.Events) != 4 {
		t.Fatalf("expected rounds 1-4 in the retry, got round=%d events=%d", out.Round, len(out.Events))
	}
	if len(f.events.events) != 4 {
		t.Fatalf("expected 4 persisted events, got %d", len(f.events.events))
	}
	for i, e := range f.events.events {
		if e.Type != sim.EventRoundCompleted || e.Round != i+1 {
			t.Fatalf("event %d = %s/round %d", i, e.Type, e.Round)
		}
	}
	if f.runs.rec.Round != 4 {
		t.Fatalf("record not refreshed: %+v", f.runs.rec)
	}
}

func TestUseCase_FinishedRunFlushesUnsavedEvents(t *testing.T) {
	g := newGame(t)
	_ = g.AddStrategic(grid.Position{X: 1, Y: 1}, strategy.NewForager(g.Rand()))
	_ = g.AddFood(grid.Position{X: 0, Y: 1})
	g.DrainEvents()

	f := newFixture(g)
	uc := f.useCase(10)
	f.events.err = errors.New("db down")
	if _, err := uc.Execute(context.Background(), Request{RunID: "run-1"}); err == nil {
		t.Fatalf("expected the save error")
	}
	if g.Status() != sim.StatusOver {
		t.Fatalf("game should have ended, got %s", g.Status())
	}

	f.events.err = nil
	if _, err := uc.Execute(context.Background(), Request{RunID: "run-1"}); !errors.Is(err, ErrRunOver) {
		t.Fatalf("expected ErrRunOver, got %v", err)
	}
	var sawGameOver bool
	for _, e := range f.events.events {
		sawGameOver = sawGameOver || e.Type == sim.EventGameOver
	}
	if !sawGameOver || f.runs.rec.Status != sim.StatusOver {
		t.Fatalf("final round not saved: events=%+v rec=%+v", f.events.events, f.runs.rec)
	}
}

func newGame(t *testing.T) *sim.Game {
	t.Helper()
	g, err := sim.New(3, 3, true, sim.WithEvents())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

type fixture struct {
	store   stepStore
	runs    *stepRuns
	events  *stepEvents
	metrics *stepMetrics
}

func newFixture(g *sim.Game) *fixture {
	return &fixture{
		store:   stepStore{id: "run-1", game: g},
		runs:    &stepRuns{rec: ports.RunRecord{RunID: "run-1"}},
		events:  &stepEvents{},
		metrics: &stepMetrics{},
	}
}

func (f *fixture) useCase(maxRounds int) UseCase {
	return UseCase{
		Games:     f.store,
		Runs:      f.runs,
		Events:    f.events,
		TxManager: stepTx{},
		Metrics:   f.metrics,
		MaxRounds: maxRounds,
		Now:       func() time.Time { return time.Unix(100, 0).UTC() },
	}
}

type stepStore struct {
	id   string
	game *sim.Game
}

func (s stepStore) Put(_ context.Context, _ string, _ *sim.Game) error { return nil }

func (s stepStore) With(_ context.Context, runID string, fn func(*sim.Game) error) error {
	if runID != s.id {
		return ports.ErrNotFound
	}
	return fn(s.game)
}

type stepRuns struct {
	rec ports.RunRecord
}

func (r *stepRuns) Save(_ context.Context, rec ports.RunRecord) error {
	r.rec = rec
	return nil
}

func (r *stepRuns) GetByRunID(_ context.Context, _ string) (ports.RunRecord, error) {
	return r.rec, nil
}

type stepEvents struct {
	events []sim.Event
	err    error
}

func (r *stepEvents) Append(_ context.Context, _ string, events []sim.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, events...)
	return nil
}

func (r *stepEvents) ListByRunID(_ context.Context, _ string, _ int) ([]sim.Event, error) {
	return r.events, nil
}

type stepTx struct{}

func (stepTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stepMetrics struct {
	rounds   int
	events   int
	failures int
}

func (m *stepMetrics) RecordRounds(n int)             { m.rounds += n }
func (m *stepMetrics) RecordEvents(events []sim.Event) { m.events += len(events) }
func (m *stepMetrics) RecordFailure()                  { m.failures++ }

var (
	_ ports.GameStore       = stepStore{}
	_ ports.RunRepository   = (*stepRuns)(nil)
	_ ports.EventRepository = (*stepEvents)(nil)
	_ ports.TxManager       = stepTx{}
	_ ports.RoundMetrics    = (*stepMetrics)(nil)
)
