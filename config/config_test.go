package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"chainclash/agent"
	"chainclash/game"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig
	require.NoError(t, c.Validate())

	roster, err := c.Roster()
	require.NoError(t, err)
	require.Equal(t, []game.Participant{game.HumanPlayer(1), game.AgentPlayer(1)}, roster)
	require.Equal(t, game.NewStandardRules(), c.Rules())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
game:
  board_size: 10
  mode: custom
  humans: 2
  agents: 3
  attack_tier: false
pacing:
  step_delay: 50ms
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 10, c.Game.BoardSize)
	require.False(t, c.Rules().AttackTier)
	require.Equal(t, 50*time.Millisecond, c.Pacing.StepDelay)
	require.Equal(t, DefaultConfig.Pacing.AgentDelay, c.Pacing.AgentDelay, "Unset fields should keep their defaults")

	roster, err := c.Roster()
	require.NoError(t, err)
	require.Len(t, roster, 5)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game: [1, 2"), 0644))
	_, err = LoadFile(path)
	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CHAINCLASH_BOARD_SIZE", "6")
		t.Setenv("CHAINCLASH_MODE", "pvp")
		t.Setenv("CHAINCLASH_SEED", "77")
		t.Setenv("CHAINCLASH_STEP_DELAY", "1s")
		t.Setenv("CHAINCLASH_AGENT_STRATEGY", "mcts")
		t.Setenv("CHAINCLASH_ATTACK_TIER", "false")

		c := DefaultConfig
		require.NoError(t, c.ApplyEnv())
		require.Equal(t, 6, c.Game.BoardSize)
		require.Equal(t, game.PlayerVsPlayer, c.Game.Mode)
		require.Equal(t, uint64(77), c.Game.Seed)
		require.Equal(t, time.Second, c.Pacing.StepDelay)
		require.Equal(t, agent.SearchStrategy, c.Agent.Strategy)
		require.False(t, c.Game.AttackTier)
		require.NoError(t, c.Validate())
	})

	t.Run("bad values", func(t *testing.T) {
		t.Setenv("CHAINCLASH_BOARD_SIZE", "big")

		c := DefaultConfig
		var invalid *InvalidConfig
		require.ErrorAs(t, c.ApplyEnv(), &invalid)
	})
}

func TestLoadEnv(t *testing.T) {
	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")), "A missing file is not an error")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CHAINCLASH_TEST_LOAD_ENV=loaded\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("CHAINCLASH_TEST_LOAD_ENV") })

	require.NoError(t, LoadEnv(path))
	require.Equal(t, "loaded", os.Getenv("CHAINCLASH_TEST_LOAD_ENV"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"board too small", func(c *Config) { c.Game.BoardSize = 1 }},
		{"unknown mode", func(c *Config) { c.Game.Mode = "solo" }},
		{"too many agents", func(c *Config) { c.Game.Mode = game.CustomRosterMode; c.Game.Humans = 2; c.Game.Agents = 5 }},
		{"unknown strategy", func(c *Config) { c.Agent.Strategy = "minimax" }},
		{"search without budget", func(c *Config) {
			c.Agent.Strategy = agent.SearchStrategy
			c.Agent.Episodes = 0
			c.Agent.Duration = 0
		}},
		{"negative delay", func(c *Config) { c.Pacing.TriggerDelay = -time.Second }},
		{"unknown seat", func(c *Config) { c.Game.Seats = []string{"player", "observer"} }},
		{"repeated seat", func(c *Config) { c.Game.Seats = []string{"ai1", "ai1"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.mutate(&c)
			var invalid *InvalidConfig
			require.ErrorAs(t, c.Validate(), &invalid)
		})
	}
}

func TestSeats(t *testing.T) {
	c := DefaultConfig
	c.Game.Seats = []string{"ai2", " player ", "ai1"}
	require.NoError(t, c.Validate())

	roster, err := c.Roster()
	require.NoError(t, err)
	require.Equal(t, []game.Participant{game.AgentPlayer(2), game.HumanPlayer(1), game.AgentPlayer(1)}, roster,
		"Seats should override the mode and keep their order")

	t.Run("from the environment", func(t *testing.T) {
		t.Setenv("CHAINCLASH_SEATS", "player,player2")
		c := DefaultConfig
		require.NoError(t, c.ApplyEnv())

		roster, err := c.Roster()
		require.NoError(t, err)
		require.Equal(t, []game.Participant{game.HumanPlayer(1), game.HumanPlayer(2)}, roster)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := DefaultConfig
	c.Game.BoardSize = 12
	c.Agent.Duration = 250 * time.Millisecond

	require.NoError(t, saveCfgFile(path, &c, 0664))

	loaded := Config{}
	require.NoError(t, readCfgFile(path, &loaded))
	require.Equal(t, c, loaded)
}
