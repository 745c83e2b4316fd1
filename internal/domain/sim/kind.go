package sim

import (
	"errors"
	"strings"

	"gridclash/internal/domain/grid"
)

// Kind is the closed set of piece variants.
type Kind string

const (
	KindSimple    Kind = "simple"
	KindStrategic Kind = "strategic"
	KindFood      Kind = "food"
	KindAdvantage Kind = "advantage"
)

var ErrUnknownKind = errors.New("unknown piece kind")

func AllKinds() []Kind {
	return []Kind{KindSimple, KindStrategic, KindFood, KindAdvantage}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindSimple, KindStrategic, KindFood, KindAdvantage:
		return k, nil
	}
	return "", ErrUnknownKind
}

func (k Kind) IsAgent() bool {
	return k == KindSimple || k == KindStrategic
}

func (k Kind) IsResource() bool {
	return k == KindFood || k == KindAdvantage
}

// Tag is the one-letter display prefix of the kind.
func (k Kind) Tag() byte {
	switch k {
	case KindSimple:
		return 'S'
	case KindStrategic:
		return 'T'
	case KindFood:
		return 'F'
	case KindAdvantage:
		return 'A'
	}
	return '?'
}

func (k Kind) PieceType() grid.PieceType {
	switch k {
	case KindSimple:
		return grid.PieceSimple
	case KindStrategic:
		return grid.PieceStrategic
	case KindFood:
		return grid.PieceFood
	case KindAdvantage:
		return grid.PieceAdvantage
	}
	return grid.PieceEmpty
}
