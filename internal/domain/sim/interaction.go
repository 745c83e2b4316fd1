package sim

// interact resolves mover a stepping onto the cell held by b. Resources are
// consumed outright; agents fight by energy and the loser finishes. Pieces
// finished earlier in the round still take part: a spent resource yields 0
// and a finished agent fights with the energy it has left. When the mover
// is not finished afterwards it swaps cells with the occupant.
func (g *Game) interact(ai, bi int) {
	a, b := &g.arena[ai], &g.arena[bi]
	if !a.kind.IsAgent() {
		return
	}

	switch {
	case b.kind.IsResource():
		gained := b.consume(g.tuning)
		a.energy += gained
		g.emit(EventConsumed, map[string]any{
			"agent":    a.tag(),
			"resource": b.tag(),
			"gained":   gained,
			"energy":   a.energy,
		})
	case b.kind.IsAgent():
		g.fight(a, b)
	}

	if !a.viable() {
		return
	}
	from, to := a.pos, b.pos
	a.pos, b.pos = to, from
	g.cells[g.index(to)] = ai
	g.cells[g.index(from)] = bi
}

func (g *Game) fight(a, b *piece) {
	payload := map[string]any{
		"attacker":        a.tag(),
		"defender":        b.tag(),
		"attacker_energy": a.energy,
		"defender_energy": b.energy,
	}
	switch {
	case a.energy == b.energy:
		a.finish()
		b.finish()
		payload["outcome"] = "tie"
	case a.energy > b.energy:
		a.energy -= b.energy
		b.finish()
		payload["outcome"] = "attacker_won"
	default:
		b.energy -= a.energy
		a.finish()
		payload["outcome"] = "defender_won"
	}
	g.emit(EventCombat, payload)
}
