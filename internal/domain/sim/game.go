// Package sim is the turn-resolution engine: a fixed grid of agents and
// resources advanced one round at a time until no resource is left.
//
// A Game is not safe for concurrent use.
package sim

import (
	"log/slog"
	"math/rand"

	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/strategy"
	"gridclash/internal/util/rng"
)

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusPlaying    Status = "PLAYING"
	StatusOver       Status = "OVER"
)

const emptyCell = -1

// StrategyFactory builds the policy of an auto-populated strategic agent.
type StrategyFactory func(energy float64, rng *rand.Rand) strategy.Strategy

func aggressiveFactory(energy float64, r *rand.Rand) strategy.Strategy {
	return strategy.NewAggressive(energy, r)
}

type Game struct {
	width  int
	height int
	tuning Tuning
	status Status
	round  int

	// arena holds piece records; cells is the row-major occupancy index
	// into it (emptyCell when free).
	arena  []piece
	cells  []int
	nextID int

	rng             *rand.Rand
	simplePolicy    strategy.Strategy
	strategyFactory StrategyFactory
	logger          *slog.Logger
	renderer        Renderer

	recordEvents bool
	events       []Event
	trackEnergy  bool
}

type Option func(*Game)

// WithSeed gives the game its own random source. Seed 0 maps to 1.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = rng.New(seed) }
}

func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSimplePolicy sets the policy shared by every simple agent.
func WithSimplePolicy(s strategy.Strategy) Option {
	return func(g *Game) {
		if s != nil {
			g.simplePolicy = s
		}
	}
}

func WithStrategyFactory(f StrategyFactory) Option {
	return func(g *Game) {
		if f != nil {
			g.strategyFactory = f
		}
	}
}

func WithTuning(t Tuning) Option {
	return func(g *Game) { g.tuning = t.withDefaults() }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(g *Game) { g.renderer = r }
}

// WithEnergyTracking reports each strategic agent's current energy to its
// policy before every decision. Without it a policy keeps the energy it was
// constructed with for the agent's whole life.
func WithEnergyTracking() Option {
	return func(g *Game) { g.trackEnergy = true }
}

// WithEvents turns on the event buffer read by DrainEvents.
func WithEvents() Option {
	return func(g *Game) { g.recordEvents = true }
}

// New builds a width x height game. Unless manual is set the grid is
// randomly populated with agents and resources.
func New(width, height int, manual bool, opts ...Option) (*Game, error) {
	if width < MinWidth || height < MinHeight {
		return nil, &DimensionsError{MinWidth: MinWidth, MinHeight: MinHeight, Width: width, Height: height}
	}
	g := &Game{
		width:           width,
		height:          height,
		tuning:          DefaultTuning(),
		status:          StatusNotStarted,
		cells:           make([]int, width*height),
		nextID:          1,
		simplePolicy:    strategy.Idle{},
		strategyFactory: aggressiveFactory,
		logger:          slog.New(slog.DiscardHandler),
	}
	for i := range g.cells {
		g.cells[i] = emptyCell
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rng.New(0)
	}
	if !manual {
		g.populate()
	}
	return g, nil
}

func (g *Game) Width() int       { return g.width }
func (g *Game) Height() int      { return g.height }
func (g *Game) Status() Status   { return g.status }
func (g *Game) RoundNumber() int { return g.round }
func (g *Game) Tuning() Tuning   { return g.tuning }

// Rand is the run's random source, for callers building policies that
// should share it.
func (g *Game) Rand() *rand.Rand { return g.rng }

func (g *Game) inBounds(p grid.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.height && p.Y < g.width
}

func (g *Game) index(p grid.Position) int {
	return p.Y + p.X*g.width
}

func (g *Game) positionOf(i int) grid.Position {
	return grid.Position{X: i / g.width, Y: i % g.width}
}

func (g *Game) checkBounds(p grid.Position) error {
	if !g.inBounds(p) {
		return &OutOfBoundsError{Width: g.width, Height: g.height, Pos: p}
	}
	return nil
}

// Piece returns the piece at row x, column y.
func (g *Game) Piece(x, y int) (PieceView, error) {
	pos := grid.Position{X: x, Y: y}
	if err := g.checkBounds(pos); err != nil {
		return PieceView{}, err
	}
	idx := g.cells[g.index(pos)]
	if idx == emptyCell {
		return PieceView{}, &PositionError{Pos: pos, Err: ErrPositionEmpty}
	}
	return g.arena[idx].view(), nil
}

// Pieces lists every piece on the grid in row-major order.
func (g *Game) Pieces() []PieceView {
	out := make([]PieceView, 0, len(g.arena))
	for _, idx := range g.cells {
		if idx != emptyCell {
			out = append(out, g.arena[idx].view())
		}
	}
	return out
}

func (g *Game) count(match func(Kind) bool) int {
	n := 0
	for _, idx := range g.cells {
		if idx != emptyCell && match(g.arena[idx].kind) {
			n++
		}
	}
	return n
}

func (g *Game) NumPieces() int {
	return g.count(func(Kind) bool { return true })
}

func (g *Game) NumAgents() int {
	return g.count(Kind.IsAgent)
}

func (g *Game) NumSimple() int {
	return g.count(func(k Kind) bool { return k == KindSimple })
}

func (g *Game) NumStrategic() int {
	return g.count(func(k Kind) bool { return k == KindStrategic })
}

func (g *Game) NumResources() int {
	return g.count(Kind.IsResource)
}
