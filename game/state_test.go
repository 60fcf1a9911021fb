package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	q := New()

	require.Equal(t, Player{ID: 1, Pos: "e1", Walls: WallsPerPlayer, Goal: 9}, q.CurrentPlayer())
	require.Equal(t, Player{ID: 2, Pos: "e9", Walls: WallsPerPlayer, Goal: 1}, q.WaitingPlayer())
	require.False(t, q.IsTerminated())
	require.Equal(t, 0, q.Winner())
	require.Equal(t, "", q.PGN())
	require.ElementsMatch(t, []string{"e2", "d1", "f1"}, q.LegalPawnMoves())
	// 3 pawn moves and every wall anchor in both orientations
	require.Len(t, q.LegalMoves(), 3+2*64)
}

func TestPGN(t *testing.T) {
	t.Run("replaying a move list", func(t *testing.T) {
		q, err := FromPGN("e2/e8/e3/e7/e1h")
		require.NoError(t, err)

		require.Equal(t, "e2/e8/e3/e7/e1h", q.PGN())
		require.Equal(t, 5, q.Turn())
		require.Equal(t, 2, q.CurrentPlayer().ID, "Player 2 should move after five plies")
		require.Equal(t, "e3", q.Player(1).Pos)
		require.Equal(t, "e7", q.Player(2).Pos)
		require.Equal(t, WallsPerPlayer-1, q.Player(1).Walls)
		require.Equal(t, []string{"e1h"}, q.PlacedWalls())
	})

	t.Run("rejecting an illegal move list", func(t *testing.T) {
		_, err := FromPGN("e2/e2")
		require.ErrorIs(t, err, ErrInvalidPGN)
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("empty token is the initial position", func(t *testing.T) {
		q, err := FromPGN("")
		require.NoError(t, err)
		require.Equal(t, New().CurrentPlayer(), q.CurrentPlayer())
	})
}

func TestWalls(t *testing.T) {
	t.Run("horizontal wall cuts two vertical edges", func(t *testing.T) {
		q := New()
		require.NoError(t, q.MakeMove("e1h"))

		board := q.Board()
		require.False(t, board.Connected("e1", "e2"))
		require.False(t, board.Connected("f1", "f2"))
		require.True(t, board.Connected("d1", "d2"))
		require.Contains(t, q.LegalPawnMoves(), "e8", "Player 2 moves are unaffected")
	})

	t.Run("vertical wall cuts two horizontal edges", func(t *testing.T) {
		q := New()
		require.NoError(t, q.MakeMove("d1v"))

		board := q.Board()
		require.False(t, board.Connected("d1", "e1"))
		require.False(t, board.Connected("d2", "e2"))
		require.True(t, board.Connected("d3", "e3"))
	})

	t.Run("rejecting overlapping and crossing walls", func(t *testing.T) {
		q := New()
		require.NoError(t, q.MakeMove("d4h"))
		require.NoError(t, q.MakeMove("a1h"))

		for _, wall := range []string{"d4h", "c4h", "e4h", "d4v"} {
			require.ErrorIs(t, q.Copy().MakeMove(wall), ErrIllegalMove, "Wall %s should be rejected", wall)
		}
		require.NoError(t, q.Copy().MakeMove("f4h"), "Adjacent non-overlapping wall should be accepted")
		require.NoError(t, q.Copy().MakeMove("c4v"), "Wall touching at the end should be accepted")
	})

	t.Run("rejecting a wall that seals a player in", func(t *testing.T) {
		q := New()
		q.players[0].Pos = "a1"
		require.NoError(t, q.MakeMove("a1h")) // cuts a1-a2 and b1-b2
		q.current = 0

		// b1v would cut b1-c1 and close the a1/b1 pocket
		require.NotContains(t, q.LegalMoves(), "b1v")
		require.ErrorIs(t, q.MakeMove("b1v"), ErrIllegalMove)
		require.NoError(t, q.Copy().MakeMove("c1v"))
		require.Equal(t, 10, q.Distance(1), "Player 1 should detour through c1")
	})

	t.Run("running out of walls", func(t *testing.T) {
		q := New()
		q.players[0].Walls = 0
		require.ErrorIs(t, q.MakeMove("a1h"), ErrIllegalMove)
		require.Len(t, q.LegalMoves(), len(q.LegalPawnMoves()))
	})
}

func TestJumps(t *testing.T) {
	t.Run("straight jump over adjacent opponent", func(t *testing.T) {
		q := New()
		q.players[0].Pos = "e4"
		q.players[1].Pos = "e5"

		moves := q.LegalPawnMoves()
		require.Contains(t, moves, "e6")
		require.NotContains(t, moves, "e5", "Occupied cell is never a destination")
	})

	t.Run("diagonal jump when wall is behind opponent", func(t *testing.T) {
		q := New()
		q.players[0].Pos = "e4"
		q.players[1].Pos = "e5"
		require.NoError(t, q.MakeMove("e5h")) // blocks e5-e6
		q.current = 0

		moves := q.LegalPawnMoves()
		require.NotContains(t, moves, "e6")
		require.Contains(t, moves, "d5")
		require.Contains(t, moves, "f5")
	})

	t.Run("diagonal jump when opponent is on the edge", func(t *testing.T) {
		q := New()
		q.players[0].Pos = "e8"
		q.players[1].Pos = "e9"

		moves := q.LegalPawnMoves()
		require.ElementsMatch(t, []string{"e7", "d8", "f8", "d9", "f9"}, moves)
	})
}

func TestTermination(t *testing.T) {
	q := New()
	q.players[0].Pos = "e8"
	q.players[1].Pos = "a9"

	require.NoError(t, q.MakeMove("e9"))

	require.True(t, q.IsTerminated())
	require.Equal(t, 1, q.Winner(), "Mover should win")
	require.Equal(t, 1, q.CurrentPlayer().ID, "Winner should stay the current player")
	require.Empty(t, q.LegalMoves())
	require.ErrorIs(t, q.MakeMove("e8"), ErrGameOver)
}

func TestCopy(t *testing.T) {
	q := New()
	c := q.Copy()
	require.NoError(t, c.MakeMove("e1h"))

	require.True(t, q.Board().Connected("e1", "e2"), "Original board should be untouched")
	require.Empty(t, q.PlacedWalls())
	require.Equal(t, "", q.PGN())
	require.Equal(t, 1, q.CurrentPlayer().ID)
}

func TestBoardIsPrivateCopy(t *testing.T) {
	q := New()
	board := q.Board()
	board["e1"] = nil

	require.True(t, slices.Contains(q.Board()["e1"], "e2"))
}

func TestEvaluateDistance(t *testing.T) {
	q := New()
	require.Equal(t, 0.0, EvaluateDistance(q), "Symmetric start should be even")

	require.NoError(t, q.MakeMove("e2"))
	// player 2 to move: 8 steps against player 1's 7
	require.Less(t, EvaluateDistance(q), 0.0)
	require.InDelta(t, -1.0/15, EvaluateDistance(q), 1e-9)
}
