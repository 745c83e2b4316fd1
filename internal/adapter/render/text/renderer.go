// Package text draws frames in the plain console format: a round header, one
// line of bracketed cells per row, and a status line.
package text

import (
	"fmt"
	"io"
	"strings"

	"gridclash/internal/domain/sim"
)

const cellWidth = 5

type Renderer struct {
	W io.Writer
}

func (r Renderer) Render(f sim.Frame) {
	_, _ = io.WriteString(r.W, Format(f))
}

func Format(f sim.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %d\n", f.Round)
	for x := 0; x < f.Height; x++ {
		for y := 0; y < f.Width; y++ {
			fmt.Fprintf(&b, "[%-*s]", cellWidth, f.Cell(x, y))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Status: %s\n", StatusLabel(f.Status))
	return b.String()
}

func StatusLabel(s sim.Status) string {
	switch s {
	case sim.StatusNotStarted:
		return "Not Started..."
	case sim.StatusPlaying:
		return "Playing..."
	default:
		return "Over!"
	}
}

var _ sim.Renderer = Renderer{}
