package game

import (
	"fmt"

	"chainclash/meta"
)

// Rules holds the tunable constants of a session.
type Rules struct {
	BoardSize         int
	CriticalThreshold int  // Points at which a cell detonates
	MinBaseDistance   int  // Minimum Manhattan distance between two bases
	AttackTier        bool // Agents may strike vulnerable opposing cells
}

func NewStandardRules() Rules {
	return Rules{
		BoardSize:         meta.BOARD_SIZE,
		CriticalThreshold: meta.CRITICAL_THRESHOLD,
		MinBaseDistance:   meta.MIN_BASE_DISTANCE,
		AttackTier:        true,
	}
}

func (r Rules) Validate() error {
	if r.BoardSize < 2 {
		return fmt.Errorf("board size must be at least 2, got %d", r.BoardSize)
	}
	if r.CriticalThreshold < 2 {
		return fmt.Errorf("critical threshold must be at least 2, got %d", r.CriticalThreshold)
	}
	if r.MinBaseDistance < 0 {
		return fmt.Errorf("minimum base distance cannot be negative, got %d", r.MinBaseDistance)
	}
	return nil
}
