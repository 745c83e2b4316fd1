package sim

import "gridclash/internal/domain/grid"

// Round advances the game by one step: every piece on the grid at the
// start of the round gets at most one turn, in row-major order of where it
// stood, then non-viable pieces are swept off the grid.
func (g *Game) Round() {
	order := make([]int, 0, len(g.arena))
	for _, idx := range g.cells {
		if idx != emptyCell {
			order = append(order, idx)
			g.arena[idx].turned = false
		}
	}

	for _, idx := range order {
		g.takeTurn(idx)
	}

	removed := g.sweep()

	if g.NumResources() == 0 && g.status != StatusOver {
		g.status = StatusOver
		g.emit(EventGameOver, map[string]any{"agents": g.NumAgents()})
	}
	g.emit(EventRoundCompleted, map[string]any{
		"pieces":    g.NumPieces(),
		"agents":    g.NumAgents(),
		"resources": g.NumResources(),
		"removed":   removed,
		"status":    string(g.status),
	})
	g.round++

	g.logger.Debug("round completed",
		"round", g.round,
		"pieces", g.NumPieces(),
		"resources", g.NumResources(),
		"removed", removed,
		"status", string(g.status),
	)
}

// Start marks a game as playing. It has no effect once the game is over.
func (g *Game) Start() {
	if g.status != StatusOver {
		g.status = StatusPlaying
	}
}

// Play runs rounds until the game is over. Verbose renders after every
// round; otherwise only the first and last state are rendered.
func (g *Game) Play(verbose bool) {
	g.PlayLimit(verbose, 0)
}

// PlayLimit is Play stopped after at most limit rounds; limit <= 0 means no
// bound. It reports whether the game is over.
func (g *Game) PlayLimit(verbose bool, limit int) bool {
	g.Start()
	g.render()
	for played := 0; g.status != StatusOver && (limit <= 0 || played < limit); played++ {
		g.Round()
		if verbose {
			g.render()
		}
	}
	if !verbose {
		g.render()
	}
	return g.status == StatusOver
}

func (g *Game) takeTurn(idx int) {
	p := &g.arena[idx]
	if p.turned {
		return
	}
	p.turned = true
	p.age(g.tuning)

	action := p.decide(g.surroundings(p.pos), g.trackEnergy)
	from := p.pos
	to, ok := g.destination(from, action)
	if !ok {
		return
	}

	occupant := g.cells[g.index(to)]
	if occupant == emptyCell {
		p.pos = to
		g.cells[g.index(to)] = idx
		g.cells[g.index(from)] = emptyCell
		g.emit(EventMoved, map[string]any{
			"piece":  p.tag(),
			"action": string(action),
			"from_x": from.X,
			"from_y": from.Y,
			"to_x":   to.X,
			"to_y":   to.Y,
		})
		return
	}
	g.interact(idx, occupant)
}

// destination resolves an action from pos. It reports false for STAY and
// for moves that would leave the grid.
func (g *Game) destination(pos grid.Position, action grid.ActionType) (grid.Position, bool) {
	dx, dy := action.Delta()
	if dx == 0 && dy == 0 {
		return pos, false
	}
	to := pos.Add(dx, dy)
	if !g.inBounds(to) {
		return pos, false
	}
	return to, true
}

// sweep clears every non-viable piece from the grid and compacts the arena
// so indices stay dense. It returns how many pieces were removed.
func (g *Game) sweep() int {
	removed := 0
	arena := make([]piece, 0, len(g.arena))
	for i, idx := range g.cells {
		if idx == emptyCell {
			continue
		}
		p := g.arena[idx]
		if !p.viable() {
			g.cells[i] = emptyCell
			removed++
			g.emit(EventRemoved, map[string]any{
				"piece": p.tag(),
				"kind":  string(p.kind),
				"x":     p.pos.X,
				"y":     p.pos.Y,
			})
			continue
		}
		arena = append(arena, p)
		g.cells[i] = len(arena) - 1
	}
	g.arena = arena
	return removed
}
