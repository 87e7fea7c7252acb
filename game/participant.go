package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tells humans (driven by input events) apart from agents (driven by a policy).
type Kind uint8

const (
	NoKind Kind = iota
	Human
	Agent
)

// Participant identifies a roster entry. The zero value is None.
type Participant struct {
	Kind Kind
	Slot int // 1-based within its kind
}

// None owns every empty cell.
var None = Participant{}

func HumanPlayer(slot int) Participant {
	return Participant{Kind: Human, Slot: slot}
}

func AgentPlayer(slot int) Participant {
	return Participant{Kind: Agent, Slot: slot}
}

func (p Participant) IsNone() bool {
	return p == None
}

// IsAgent reports whether the participant is driven by a decision policy instead of input.
func (p Participant) IsAgent() bool {
	return p.Kind == Agent
}

// String returns the stable identifier: player, player2, ai1..ai5 or none.
func (p Participant) String() string {
	switch p.Kind {
	case Human:
		if p.Slot == 1 {
			return "player"
		}
		return fmt.Sprintf("player%d", p.Slot)
	case Agent:
		return fmt.Sprintf("ai%d", p.Slot)
	default:
		return "none"
	}
}

// DisplayName is the human-readable name used in status messages.
func (p Participant) DisplayName() string {
	switch p.Kind {
	case Human:
		return fmt.Sprintf("Player %d", p.Slot)
	case Agent:
		return fmt.Sprintf("AI %d", p.Slot)
	default:
		return "Nobody"
	}
}

// ParseParticipant is the inverse of Participant.String.
func ParseParticipant(s string) (Participant, error) {
	switch {
	case s == "none":
		return None, nil
	case s == "player":
		return HumanPlayer(1), nil
	case strings.HasPrefix(s, "player"):
		slot, err := strconv.Atoi(strings.TrimPrefix(s, "player"))
		if err != nil || slot < 1 {
			return None, fmt.Errorf("invalid participant %q", s)
		}
		return HumanPlayer(slot), nil
	case strings.HasPrefix(s, "ai"):
		slot, err := strconv.Atoi(strings.TrimPrefix(s, "ai"))
		if err != nil || slot < 1 {
			return None, fmt.Errorf("invalid participant %q", s)
		}
		return AgentPlayer(slot), nil
	}
	return None, fmt.Errorf("invalid participant %q", s)
}
