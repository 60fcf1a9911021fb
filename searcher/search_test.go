package searcher_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"quoridor/game"
	"quoridor/searcher"
)

func TestSearchQuoridor(t *testing.T) {
	t.Run("opening move is legal", func(t *testing.T) {
		m := searcher.NewMCTS(game.LoadSearchState,
			searcher.WithIterations(40),
			searcher.WithCutoff(10),
			searcher.WithEvaluationFn(game.SearchEvaluate(game.EvaluateDistance)),
			searcher.WithSeed(1),
		)
		move, _, err := m.Search(context.Background(), "")
		require.NoError(t, err)
		require.Contains(t, game.New().LegalMoves(), move)
	})

	t.Run("steps onto the goal row", func(t *testing.T) {
		// Player 1 on e8, one step from winning.
		pgn := "e2/d9/e3/c9/e4/d9/e5/c9/e6/d9/e7/c9/e8/d9"
		q, err := game.FromPGN(pgn)
		require.NoError(t, err)
		require.Equal(t, 1, q.CurrentPlayer().ID)

		m := searcher.NewMCTS(game.LoadSearchState,
			searcher.WithIterations(300),
			searcher.WithCutoff(4),
			searcher.WithEvaluationFn(game.SearchEvaluate(game.EvaluateDistance)),
			searcher.WithSeed(2),
		)
		move, _, err := m.Search(context.Background(), pgn)
		require.NoError(t, err)
		require.Equal(t, "e9", move)
	})

	t.Run("finished game", func(t *testing.T) {
		pgn := "e2/d9/e3/c9/e4/d9/e5/c9/e6/d9/e7/c9/e8/d9/e9"
		m := searcher.NewMCTS(game.LoadSearchState, searcher.WithIterations(10))
		_, _, err := m.Search(context.Background(), pgn)
		require.ErrorIs(t, err, searcher.ErrIllegalRootState)
	})
}
