// Package config loads the runtime settings shared by the binaries: a YAML
// file first, then GRIDCLASH_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gridclash/internal/domain/sim"
	"gridclash/internal/domain/strategy"
)

const (
	EnvAddr             = "GRIDCLASH_ADDR"
	EnvDSN              = "GRIDCLASH_DB_DSN"
	EnvMigrationsDir    = "GRIDCLASH_MIGRATIONS_DIR"
	EnvSeed             = "GRIDCLASH_SEED"
	EnvWidth            = "GRIDCLASH_WIDTH"
	EnvHeight           = "GRIDCLASH_HEIGHT"
	EnvMaxRoundsPerStep = "GRIDCLASH_MAX_ROUNDS_PER_STEP"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig is optional; an empty DSN keeps everything in memory.
type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
	MaxOpenConns  int    `yaml:"max_open_conns"`
}

type SimulationConfig struct {
	Width            int        `yaml:"width"`
	Height           int        `yaml:"height"`
	MaxWidth         int        `yaml:"max_width"`
	MaxHeight        int        `yaml:"max_height"`
	Seed             int64      `yaml:"seed"`
	Manual           bool       `yaml:"manual"`
	Verbose          bool       `yaml:"verbose"`
	SimplePolicy     string     `yaml:"simple_policy"`
	MaxRoundsPerStep int        `yaml:"max_rounds_per_step"`
	Tuning           sim.Tuning `yaml:"tuning"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{
			MigrationsDir: "./migrations",
		},
		Simulation: SimulationConfig{
			Width:            20,
			Height:           10,
			MaxWidth:         1000,
			MaxHeight:        1000,
			SimplePolicy:     strategy.NameForager,
			MaxRoundsPerStep: 100,
			Tuning:           sim.DefaultTuning(),
		},
	}
}

// Load reads path over the defaults (an empty path skips the file) and
// then applies the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	c.Server.Addr = stringEnv(EnvAddr, c.Server.Addr)
	c.Database.DSN = stringEnv(EnvDSN, c.Database.DSN)
	c.Database.MigrationsDir = stringEnv(EnvMigrationsDir, c.Database.MigrationsDir)
	c.Simulation.Seed = int64Env(EnvSeed, c.Simulation.Seed)
	c.Simulation.Width = intEnv(EnvWidth, c.Simulation.Width)
	c.Simulation.Height = intEnv(EnvHeight, c.Simulation.Height)
	c.Simulation.MaxRoundsPerStep = intEnv(EnvMaxRoundsPerStep, c.Simulation.MaxRoundsPerStep)
}

func (c Config) Validate() error {
	s := c.Simulation
	if s.Width < sim.MinWidth || s.Height < sim.MinHeight {
		return fmt.Errorf("%w: simulation grid %dx%d is below %dx%d", ErrInvalidConfig, s.Width, s.Height, sim.MinWidth, sim.MinHeight)
	}
	if s.MaxWidth < s.Width || s.MaxHeight < s.Height {
		return fmt.Errorf("%w: simulation grid %dx%d exceeds max %dx%d", ErrInvalidConfig, s.Width, s.Height, s.MaxWidth, s.MaxHeight)
	}
	if s.MaxRoundsPerStep <= 0 {
		return fmt.Errorf("%w: max_rounds_per_step must be positive", ErrInvalidConfig)
	}
	if _, err := strategy.Lookup(s.SimplePolicy, 0, nil); err != nil {
		return fmt.Errorf("%w: simple_policy %q", ErrInvalidConfig, s.SimplePolicy)
	}
	t := s.Tuning
	if t.StartingAgentEnergy < 0 || t.StartingResourceCapacity < 0 || t.AgentFatigueRate < 0 || t.AdvantageMultiplier < 0 {
		return fmt.Errorf("%w: tuning values must not be negative", ErrInvalidConfig)
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func int64Env(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
