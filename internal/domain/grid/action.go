package grid

type ActionType string

const (
	ActionN    ActionType = "N"
	ActionNE   ActionType = "NE"
	ActionNW   ActionType = "NW"
	ActionE    ActionType = "E"
	ActionW    ActionType = "W"
	ActionSE   ActionType = "SE"
	ActionSW   ActionType = "SW"
	ActionS    ActionType = "S"
	ActionStay ActionType = "STAY"
)

// windowActions maps a surroundings window index to the action that reaches it.
var windowActions = [WindowSize]ActionType{
	ActionNW, ActionN, ActionNE,
	ActionW, ActionStay, ActionE,
	ActionSW, ActionS, ActionSE,
}

func AllActions() []ActionType {
	return []ActionType{ActionN, ActionNE, ActionNW, ActionE, ActionW, ActionSE, ActionSW, ActionS, ActionStay}
}

// Delta returns the row and column offset of the action. Unknown actions
// behave like ActionStay.
func (a ActionType) Delta() (dx, dy int) {
	switch a {
	case ActionN:
		return -1, 0
	case ActionNE:
		return -1, 1
	case ActionNW:
		return -1, -1
	case ActionE:
		return 0, 1
	case ActionW:
		return 0, -1
	case ActionSE:
		return 1, 1
	case ActionSW:
		return 1, -1
	case ActionS:
		return 1, 0
	default:
		return 0, 0
	}
}

// WindowIndex is the surroundings index the action points at.
func (a ActionType) WindowIndex() int {
	dx, dy := a.Delta()
	return (dx+1)*3 + (dy + 1)
}

// ActionForIndex maps a window index to its action; anything outside the
// window is ActionStay.
func ActionForIndex(i int) ActionType {
	if i < 0 || i >= WindowSize {
		return ActionStay
	}
	return windowActions[i]
}

func ParseAction(s string) (ActionType, bool) {
	for _, a := range AllActions() {
		if string(a) == s {
			return a, true
		}
	}
	return ActionStay, false
}
