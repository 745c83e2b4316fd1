package grid

// PieceType tags what a surroundings cell holds. It is used for sensing
// only; the engine dispatches on its own kind tag.
type PieceType string

const (
	PieceSimple       PieceType = "simple"
	PieceStrategic    PieceType = "strategic"
	PieceFood         PieceType = "food"
	PieceAdvantage    PieceType = "advantage"
	PieceEmpty        PieceType = "empty"
	PieceInaccessible PieceType = "inaccessible"
	PieceSelf         PieceType = "self"
)

func (t PieceType) IsAgent() bool {
	return t == PieceSimple || t == PieceStrategic
}

func (t PieceType) IsResource() bool {
	return t == PieceFood || t == PieceAdvantage
}
