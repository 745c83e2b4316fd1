package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	httpadapter "gridclash/internal/adapter/http"
	metricsinmem "gridclash/internal/adapter/metrics/inmemory"
	gormrepo "gridclash/internal/adapter/repo/gorm"
	"gridclash/internal/adapter/repo/memory"
	"gridclash/internal/app/observe"
	"gridclash/internal/app/ports"
	"gridclash/internal/app/replay"
	"gridclash/internal/app/run"
	"gridclash/internal/app/status"
	"gridclash/internal/app/step"
	"gridclash/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type repos struct {
	runs    ports.RunRepository
	events  ports.EventRepository
	tx      ports.TxManager
	backend string
}

func main() {
	configPath := flag.String("config", os.Getenv("GRIDCLASH_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	r, err := buildRepos(context.Background(), cfg)
	if err != nil {
		log.Fatalf("build repositories: %v", err)
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	newHandler(cfg, r, logger).RegisterRoutes(s)

	logger.Info("gridclash server listening", "addr", cfg.Server.Addr, "backend", r.backend)
	s.Spin()
}

func newHandler(cfg config.Config, r repos, logger *slog.Logger) httpadapter.Handler {
	games := memory.NewGameStore()
	kpiRecorder := metricsinmem.NewRecorder()
	return httpadapter.Handler{
		CreateUC: run.CreateUseCase{
			Games:     games,
			Runs:      r.runs,
			Events:    r.events,
			TxManager: r.tx,
			Defaults: run.Defaults{
				Width:        cfg.Simulation.Width,
				Height:       cfg.Simulation.Height,
				MaxWidth:     cfg.Simulation.MaxWidth,
				MaxHeight:    cfg.Simulation.MaxHeight,
				SimplePolicy: cfg.Simulation.SimplePolicy,
				Tuning:       cfg.Simulation.Tuning,
			},
			Logger: logger,
			Now:    time.Now,
		},
		PlaceUC: run.PlaceUseCase{
			Games:     games,
			Runs:      r.runs,
			Events:    r.events,
			TxManager: r.tx,
			Now:       time.Now,
		},
		StepUC: step.UseCase{
			Games:     games,
			Runs:      r.runs,
			Events:    r.events,
			TxManager: r.tx,
			Metrics:   kpiRecorder,
			MaxRounds: cfg.Simulation.MaxRoundsPerStep,
			Logger:    logger,
			Now:       time.Now,
		},
		ObserveUC: observe.UseCase{Games: games},
		StatusUC:  status.UseCase{Games: games, Runs: r.runs},
		ReplayUC:  replay.UseCase{Events: r.events},
		KPI:       kpiRecorder,
		Logger:    logger,
	}
}

// buildRepos picks postgres when a DSN is configured and memory otherwise.
func buildRepos(ctx context.Context, cfg config.Config) (repos, error) {
	if cfg.Database.DSN == "" {
		store := memory.NewStore()
		return repos{
			runs:    memory.NewRunRepo(store),
			events:  memory.NewEventRepo(store),
			tx:      memory.NewTxManager(store),
			backend: "memory",
		}, nil
	}
	db, err := gormrepo.OpenPostgres(cfg.Database.DSN, gormrepo.PoolConfig{MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		return repos{}, err
	}
	if cfg.Database.MigrationsDir != "" {
		if err := gormrepo.ApplyMigrations(ctx, db, cfg.Database.MigrationsDir); err != nil {
			return repos{}, fmt.Errorf("migrate: %w", err)
		}
	}
	return repos{
		runs:    gormrepo.NewRunRepo(db),
		events:  gormrepo.NewEventRepo(db),
		tx:      gormrepo.NewTxManager(db),
		backend: "postgres",
	}, nil
}
