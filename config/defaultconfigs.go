package config

import (
	"chainclash/agent"
	"chainclash/game"
	"chainclash/meta"
)

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		Game: GameConfig{
			BoardSize:       meta.BOARD_SIZE,
			Mode:            game.PlayerVsAI,
			Humans:          1,
			Agents:          1,
			AttackTier:      true,
			MinBaseDistance: meta.MIN_BASE_DISTANCE,
			MaxTurns:        meta.MAX_TURNS,
		},
		Agent: AgentConfig{
			Strategy:   agent.RulesStrategy,
			Goroutines: meta.GO_ROUTINES,
			Episodes:   meta.EPISODES,
			Cutoff:     meta.WITH_CUTOFF,
		},
		Pacing: PacingConfig{
			AgentDelay:   meta.AGENT_DELAY,
			TriggerDelay: meta.TRIGGER_DELAY,
			StepDelay:    meta.STEP_DELAY,
		},
		Tournament: TournamentConfig{
			Games:     10,
			OutputDir: "experiments",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
