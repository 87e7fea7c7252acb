package game

import (
	"fmt"

	"chainclash/meta"
)

// Mode names a roster preset offered at mode selection.
type Mode string

const (
	PlayerVsAI       Mode = "pvai"
	PlayerVsPlayer   Mode = "pvp"
	PlayerVsTwoAIs   Mode = "pvaiai"
	AgentsOnlyMode   Mode = "aionly"
	CustomRosterMode Mode = "custom"
)

// Modes lists the presets in menu order.
var Modes = []Mode{PlayerVsAI, PlayerVsPlayer, PlayerVsTwoAIs}

func (m Mode) Description() string {
	switch m {
	case PlayerVsAI:
		return "Player vs AI"
	case PlayerVsPlayer:
		return "Player vs Player"
	case PlayerVsTwoAIs:
		return "Player vs AI vs AI"
	case AgentsOnlyMode:
		return "AI only"
	default:
		return "Custom"
	}
}

// Roster returns the preset roster for the mode.
func (m Mode) Roster() ([]Participant, error) {
	switch m {
	case PlayerVsAI:
		return NewRoster(1, 1)
	case PlayerVsPlayer:
		return NewRoster(2, 0)
	case PlayerVsTwoAIs:
		return NewRoster(1, 2)
	case AgentsOnlyMode:
		return NewRoster(0, 2)
	default:
		return nil, fmt.Errorf("mode %q has no preset roster", m)
	}
}

// NewRoster lists humans then agents: player, player2, ai1, ai2...
func NewRoster(humans, agents int) ([]Participant, error) {
	if humans < 0 || humans > meta.MAX_HUMANS {
		return nil, fmt.Errorf("humans must be between 0 and %d, got %d", meta.MAX_HUMANS, humans)
	}
	if agents < 0 || agents > meta.MAX_AGENTS {
		return nil, fmt.Errorf("agents must be between 0 and %d, got %d", meta.MAX_AGENTS, agents)
	}
	roster := make([]Participant, 0, humans+agents)
	for i := 1; i <= humans; i++ {
		roster = append(roster, HumanPlayer(i))
	}
	for i := 1; i <= agents; i++ {
		roster = append(roster, AgentPlayer(i))
	}
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}
	return roster, nil
}
