package experiments

import (
	"fmt"

	"chainclash/agent"
	"chainclash/engine"
	"chainclash/experiments/metrics"
	"chainclash/game"

	"github.com/rs/zerolog"
)

// Tournament plays agent-only games back to back without any pacing.
type Tournament struct {
	Name      string
	Games     int
	Rules     game.Rules
	Agents    []agent.Config // One per seat, seated as ai1, ai2...
	Seed      uint64
	MaxTurns  int
	OutputDir string // Results are only written when set
	Logger    zerolog.Logger
}

// RunTournament plays every game and returns one record per game.
func RunTournament(t Tournament) ([]metrics.GameRecord, error) {
	if t.Games < 1 {
		return nil, fmt.Errorf("tournament needs at least one game, got %d", t.Games)
	}
	roster, err := game.NewRoster(0, len(t.Agents))
	if err != nil {
		return nil, err
	}
	logger := t.Logger.With().Str("component", "tournament").Str("name", t.Name).Logger()

	configs := make([]metrics.AgentConfig, len(t.Agents))
	for i, config := range t.Agents {
		configs[i] = metrics.AgentConfig{
			ID:          i + 1,
			Participant: roster[i].String(),
			Strategy:    string(config.Strategy),
			Goroutines:  config.Goroutines,
			Duration:    config.Duration,
			Episodes:    config.Episodes,
			Cutoff:      config.Cutoff,
		}
	}

	logger.Info().Msgf("starting %d games between %d agents...", t.Games, len(t.Agents))

	gameRecords := make([]metrics.GameRecord, 0, t.Games)
	moveRecords := []metrics.MoveRecord{}
	for i := 0; i < t.Games; i++ {
		seed := t.Seed + uint64(i)*uint64(len(roster)+1)
		session, err := runGame(t, roster, seed)
		if err != nil {
			return gameRecords, fmt.Errorf("game %d: %w", i+1, err)
		}

		record := metrics.GameRecord{ID: i + 1, GameMetric: session.Metric()}
		gameRecords = append(gameRecords, record)
		for _, move := range session.Moves() {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: record.ID, MoveMetric: move})
		}

		logger.Info().Msgf("completed game %d of %d with winner %q after %d turns", i+1, t.Games, record.Winner, record.Turns)
	}

	if t.OutputDir == "" {
		return gameRecords, nil
	}
	return gameRecords, writeResults(t, configs, gameRecords, moveRecords, logger)
}

func runGame(t Tournament, roster []game.Participant, seed uint64) (*engine.Session, error) {
	agents := make(map[game.Participant]agent.Agent, len(roster))
	for i, p := range roster {
		config := t.Agents[i]
		config.Seed = seed + uint64(i) + 1
		a, err := agent.New(config)
		if err != nil {
			return nil, err
		}
		agents[p] = a
	}

	queue := engine.NewQueue()
	session, err := engine.NewSession(engine.Options{
		Rules:    t.Rules,
		Roster:   roster,
		Agents:   agents,
		MaxTurns: t.MaxTurns,
		Seed:     seed,
		Logger:   t.Logger,
	}, queue, nil)
	if err != nil {
		return nil, err
	}

	if err := session.Start(); err != nil {
		return nil, err
	}
	queue.Drain()
	return session, nil
}

func writeResults(t Tournament, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord, logger zerolog.Logger) error {
	writer, err := metrics.NewWriter(t.OutputDir, t.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	logger.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	logger.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	logger.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}
