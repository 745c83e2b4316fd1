package sim

import "gridclash/internal/domain/grid"

// Surroundings returns the 3x3 view centred on pos.
func (g *Game) Surroundings(pos grid.Position) (grid.Surroundings, error) {
	if err := g.checkBounds(pos); err != nil {
		return grid.Surroundings{}, err
	}
	return g.surroundings(pos), nil
}

func (g *Game) surroundings(pos grid.Position) grid.Surroundings {
	var s grid.Surroundings
	for i := range s {
		dx, dy := grid.WindowOffset(i)
		n := pos.Add(dx, dy)
		switch {
		case !g.inBounds(n):
			s[i] = grid.PieceInaccessible
		case g.cells[g.index(n)] == emptyCell:
			s[i] = grid.PieceEmpty
		default:
			s[i] = g.arena[g.cells[g.index(n)]].kind.PieceType()
		}
	}
	s[grid.CenterIndex] = grid.PieceSelf
	return s
}
