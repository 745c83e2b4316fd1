package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gridclash/internal/adapter/render/text"
	"gridclash/internal/adapter/render/tui"
	"gridclash/internal/config"
	"gridclash/internal/domain/sim"
	"gridclash/internal/domain/strategy"
	"gridclash/internal/util/rng"
)

type options struct {
	configPath string
	width      int
	height     int
	seed       int64
	manual     bool
	verbose    bool
	useTUI     bool
	policy     string
	maxRounds  int
	interval   time.Duration
	debug      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "gridclash:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	g, err := buildGame(cfg.Simulation, logger, text.Renderer{W: stdout})
	if err != nil {
		return err
	}
	if opts.useTUI {
		return tui.Run(g, opts.interval)
	}
	if !g.PlayLimit(cfg.Simulation.Verbose, opts.maxRounds) {
		logger.Warn("round limit reached before the game ended", "rounds", g.RoundNumber())
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("gridclash", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.configPath, "config", os.Getenv("GRIDCLASH_CONFIG"), "path to a YAML config file")
	fs.IntVar(&o.width, "width", 0, "grid width (columns)")
	fs.IntVar(&o.height, "height", 0, "grid height (rows)")
	fs.Int64Var(&o.seed, "seed", 0, "random seed; 0 picks one from the clock")
	fs.BoolVar(&o.manual, "manual", false, "start from an empty grid")
	fs.BoolVar(&o.verbose, "verbose", false, "print the grid after every round")
	fs.BoolVar(&o.useTUI, "tui", false, "watch the game in an interactive terminal view")
	fs.StringVar(&o.policy, "simple-policy", "", "policy shared by simple agents (aggressive, forager, idle)")
	fs.IntVar(&o.maxRounds, "max-rounds", 0, "stop after this many rounds; 0 runs until the game is over")
	fs.DurationVar(&o.interval, "interval", tui.DefaultInterval, "delay between rounds in the terminal view")
	fs.BoolVar(&o.debug, "debug", false, "log every round")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

// resolveConfig layers explicitly set flags over the loaded config.
func resolveConfig(o options) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	s := &cfg.Simulation
	if o.width > 0 {
		s.Width = o.width
	}
	if o.height > 0 {
		s.Height = o.height
	}
	if o.seed != 0 {
		s.Seed = o.seed
	}
	if o.policy != "" {
		s.SimplePolicy = o.policy
	}
	s.Manual = s.Manual || o.manual
	s.Verbose = s.Verbose || o.verbose
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildGame(s config.SimulationConfig, logger *slog.Logger, renderer sim.Renderer) (*sim.Game, error) {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rng.New(seed)
	policy, err := strategy.Lookup(s.SimplePolicy, s.Tuning.StartingAgentEnergy, r)
	if err != nil {
		return nil, fmt.Errorf("simple policy %q: %w", s.SimplePolicy, err)
	}
	logger.Info("starting game", "width", s.Width, "height", s.Height, "seed", seed, "policy", s.SimplePolicy)
	return sim.New(s.Width, s.Height, s.Manual,
		sim.WithRand(r),
		sim.WithSimplePolicy(policy),
		sim.WithTuning(s.Tuning),
		sim.WithLogger(logger),
		sim.WithRenderer(renderer),
	)
}
