package grid

const (
	WindowSize  = 9
	CenterIndex = 4
)

// Surroundings is the row-major 3x3 view centred on a piece.
type Surroundings [WindowSize]PieceType

// WindowOffset returns the row and column offset of window index i.
func WindowOffset(i int) (dx, dy int) {
	return i/3 - 1, i%3 - 1
}

// Indices lists the window indices whose cell satisfies match, in order.
func (s Surroundings) Indices(match func(PieceType) bool) []int {
	var out []int
	for i, t := range s {
		if match(t) {
			out = append(out, i)
		}
	}
	return out
}

func (s Surroundings) Count(t PieceType) int {
	n := 0
	for _, c := range s {
		if c == t {
			n++
		}
	}
	return n
}

// Is returns a matcher for a single piece type.
func Is(t PieceType) func(PieceType) bool {
	return func(c PieceType) bool { return c == t }
}
