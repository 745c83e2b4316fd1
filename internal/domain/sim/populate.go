package sim

// populate fills an empty grid for automatic construction: a quarter of the
// cells get agents (half strategic) and half get resources (a quarter of
// those advantages). Cells are drawn uniformly and redrawn on collision.
func (g *Game) populate() {
	cells := g.width * g.height
	numAgents := cells / InitAgentFactor
	numResources := cells / InitResourceFactor
	numStrategic := numAgents / 2
	numSimple := numAgents - numStrategic
	numAdvantages := numResources / 4
	numFoods := numResources - numAdvantages

	g.scatter(KindStrategic, numStrategic)
	g.scatter(KindSimple, numSimple)
	g.scatter(KindFood, numFoods)
	g.scatter(KindAdvantage, numAdvantages)

	g.logger.Debug("grid populated",
		"width", g.width,
		"height", g.height,
		"strategic", numStrategic,
		"simple", numSimple,
		"food", numFoods,
		"advantage", numAdvantages,
	)
}

func (g *Game) scatter(kind Kind, n int) {
	for n > 0 {
		i := g.rng.Intn(len(g.cells))
		if g.cells[i] != emptyCell {
			continue
		}
		g.place(kind, g.positionOf(i), nil)
		n--
	}
}
