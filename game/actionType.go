package game

// ActionType represents the type of action a participant can perform.
type ActionType int

const (
	IncrementAction ActionType = iota // Add a point to an owned cell
	ClaimAction                       // Take an empty cell with one point (agents only)
	PassAction
)

func (a ActionType) String() string {
	switch a {
	case IncrementAction:
		return "increment"
	case ClaimAction:
		return "claim"
	case PassAction:
		return "pass"
	default:
		return "unknown"
	}
}
