package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(100, time.Second, 5)
	c.SetTreeReset(true)
	for i := 0; i < 3; i++ {
		c.AddEpisode()
	}
	c.AddFullPlayout()
	c.SetTreeSize(42)

	m := c.Complete()
	require.Equal(t, 100, m.Iterations)
	require.Equal(t, time.Second, m.Budget)
	require.Equal(t, 5, m.Cutoff)
	require.Equal(t, 3, m.Episodes)
	require.Equal(t, 1, m.FullPlayouts)
	require.Equal(t, 42, m.TreeSize)
	require.True(t, m.IsTreeReset)

	c.Start(10, 0, 0)
	require.Equal(t, 0, c.Complete().Episodes, "Start should reset counters")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}

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

	id := uuid.New()
	require.NoError(t, w.WriteTrials([]Trial{{
		ID:       id,
		Agent1:   "random",
		Agent2:   "shortest-path",
		Games:    []string{"e2/e8", "e2/e8/e3"},
		WinRate:  0.5,
		AvgTurns: 2.5,
	}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID:         1,
		Trial:      id,
		Agent1:     "random",
		Agent2:     "shortest-path",
		GameMetric: GameMetric{StartingPlayer: 1, Winner: 2, PGN: "e2/e8", TotalMoves: 2},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game:       1,
		MoveMetric: MoveMetric{Step: 1, Player: 1, Move: "e2", Strategy: "mcts", SearchMetric: SearchMetric{Episodes: 10}},
	}}))

	trials := readCSV(t, filepath.Join(w.Dir(), "trials.csv"))
	require.Len(t, trials, 2)
	require.Equal(t, id.String(), trials[1][0])
	require.Equal(t, "2", trials[1][3])
	require.Equal(t, "0.5000", trials[1][4])

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Equal(t, []string{"1", id.String(), "random", "shortest-path", "1", "2", "2"}, games[1][:7])
	require.Equal(t, "e2/e8", games[1][10])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{"1", "1", "1", "e2", "mcts"}, moves[1][:5])
	require.Equal(t, "10", moves[1][6])
}
