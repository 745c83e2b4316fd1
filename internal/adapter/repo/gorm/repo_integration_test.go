package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/sim"
)

var (
	_ ports.RunRepository   = RunRepo{}
	_ ports.EventRepository = EventRepo{}
	_ ports.TxManager       = TxManager{}
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("GRIDCLASH_DB_DSN")
	if dsn == "" {
		t.Skip("GRIDCLASH_DB_DSN is required for integration test")
	}
	return dsn
}

func openMigrated(t *testing.T) *RunRepo {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, "../../../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewRunRepo(db)
	return &repo
}

func TestRunRepo_UpsertRoundTrip(t *testing.T) {
	repo := openMigrated(t)
	ctx := context.Background()
	runID := "it-run-roundtrip"
	_ = repo.db.Exec("DELETE FROM runs WHERE run_id = ?", runID).Error

	created := time.Now().UTC().Truncate(time.Second)
	rec := ports.RunRecord{
		RunID:        runID,
		Width:        8,
		Height:       6,
		Seed:         42,
		SimplePolicy: "forager",
		Status:       sim.StatusNotStarted,
		Pieces:       36,
		Agents:       12,
		Resources:    24,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec.Round = 7
	rec.Status = sim.StatusOver
	rec.Resources = 0
	rec.UpdatedAt = created.Add(time.Minute)
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetByRunID(ctx, runID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Round != 7 || got.Status != sim.StatusOver || got.Resources != 0 || got.Seed != 42 {
		t.Fatalf("unexpected record %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at should survive the upsert: %v vs %v", got.CreatedAt, created)
	}
	if _, err := repo.GetByRunID(ctx, "it-run-missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepo_AppendInTxAndListLatest(t *testing.T) {
	runs := openMigrated(t)
	ctx := context.Background()
	runID := "it-run-events"
	_ = runs.db.Exec("DELETE FROM runs WHERE run_id = ?", runID).Error

	events := NewEventRepo(runs.db)
	tx := NewTxManager(runs.db)
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := runs.Save(txCtx, ports.RunRecord{RunID: runID, Width: 3, Height: 3, SimplePolicy: "idle", Status: sim.StatusPlaying, CreatedAt: time.Now(), UpdatedAt: time.Now()}); err != nil {
			return err
		}
		return events.Append(txCtx, runID, []sim.Event{
			{Type: sim.EventMoved, Round: 1, Payload: map[string]any{"piece": "T1"}},
			{Type: sim.EventRoundCompleted, Round: 1, Payload: map[string]any{"pieces": 2}},
			{Type: sim.EventRoundCompleted, Round: 2, Payload: map[string]any{"pieces": 2}},
		})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	got, err := events.ListByRunID(ctx, runID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Round != 1 || got[1].Round != 2 || got[0].Type != sim.EventRoundCompleted {
		t.Fatalf("unexpected events %+v", got)
	}
	if got[1].Payload["pieces"] != 2.0 {
		t.Fatalf("payload should round-trip through json, got %+v", got[1].Payload)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	runs := openMigrated(t)
	ctx := context.Background()
	runID := "it-run-rollback"
	_ = runs.db.Exec("DELETE FROM runs WHERE run_id = ?", runID).Error

	wantErr := errors.New("abort")
	err := NewTxManager(runs.db).RunInTx(ctx, func(txCtx context.Context) error {
		if err := runs.Save(txCtx, ports.RunRecord{RunID: runID, SimplePolicy: "idle", Status: sim.StatusNotStarted, CreatedAt: time.Now(), UpdatedAt: time.Now()}); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if _, err := runs.GetByRunID(ctx, runID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected rollback, got %v", err)
	}
}
