package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "tournament")
	require.NoError(t, err)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	game := GameMetric{
		SessionID:      "abc",
		Roster:         []string{"ai1", "ai2"},
		StartingPlayer: "ai2",
		Winner:         "ai1",
		StartTime:      start,
		EndTime:        start.Add(time.Second),
		Duration:       time.Second,
		Turns:          12,
	}
	game.AddEpisode(3)
	game.AddEpisode(1)

	require.NoError(t, w.WriteGameRecords([]GameRecord{{ID: 1, GameMetric: game}}))
	rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, []string{"1", "abc", "ai1|ai2", "ai2", "ai1", "2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z",
		"1s", "12", "2", "4", "3"}, rows[1])

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Participant: "ai1", Strategy: "rules"}}))
	rows = readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, []string{"1", "ai1", "rules", "0", "0s", "0", "0"}, rows[1])

	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Turn: 4, Player: "ai2"}}}))
	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{"game", "turn", "player", "duration", "episodes", "full_playouts"}, rows[0])
	require.Equal(t, "ai2", rows[1][2])
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, 60)
	c.AddEpisode()
	c.AddEpisode()
	c.AddFullPlayout()

	metric := c.Complete()
	require.Equal(t, 4, metric.Goroutines)
	require.Equal(t, 60, metric.Cutoff)
	require.Equal(t, 2, metric.Episodes)
	require.Equal(t, 1, metric.FullPlayouts)

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}
