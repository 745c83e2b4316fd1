package sim

// Frame is everything a renderer needs to draw one state of the game.
type Frame struct {
	Round  int      `json:"round"`
	Status Status   `json:"status"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  []string `json:"cells"`
}

// Renderer draws frames. The engine never formats output itself.
type Renderer interface {
	Render(f Frame)
}

// Cell returns the tag at row x, column y, or "" when empty.
func (f Frame) Cell(x, y int) string {
	if x < 0 || y < 0 || x >= f.Height || y >= f.Width {
		return ""
	}
	return f.Cells[x*f.Width+y]
}

func (g *Game) Frame() Frame {
	cells := make([]string, len(g.cells))
	for i, idx := range g.cells {
		if idx != emptyCell {
			cells[i] = g.arena[idx].tag()
		}
	}
	return Frame{
		Round:  g.round,
		Status: g.status,
		Width:  g.width,
		Height: g.height,
		Cells:  cells,
	}
}

func (g *Game) render() {
	if g.renderer == nil {
		return
	}
	g.renderer.Render(g.Frame())
}
