package searcher

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockState is a countdown game: players alternately take 1 or 2 from a pile
// and whoever empties it wins. The winner stays the player to move.
type mockState struct {
	player int
	left   int
	moves  []string // overrides the generated move list when set
}

func loadMock(token string) (State, error) {
	var s mockState
	if _, err := fmt.Sscanf(token, "%d:%d", &s.player, &s.left); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *mockState) Player() int    { return m.player }
func (m *mockState) Terminal() bool { return m.left == 0 }
func (m *mockState) Token() string  { return fmt.Sprintf("%d:%d", m.player, m.left) }

func (m *mockState) Winner() int {
	if m.left == 0 {
		return m.player
	}
	return 0
}

func (m *mockState) LegalMoves() []string {
	if m.moves != nil {
		return m.moves
	}
	switch {
	case m.left >= 2:
		return []string{"1", "2"}
	case m.left == 1:
		return []string{"1"}
	}
	return nil
}

func (m *mockState) PawnMoves() []string { return m.LegalMoves() }

func (m *mockState) Play(move string) error {
	k, err := strconv.Atoi(move)
	if err != nil || k < 1 || k > m.left {
		return fmt.Errorf("illegal move %q", move)
	}
	m.left -= k
	if m.left > 0 {
		m.player = 3 - m.player
	}
	return nil
}

func (m *mockState) Clone() State {
	c := *m
	return &c
}

func TestTreeBackup(t *testing.T) {
	t.Run("alternating sign along a three level path", func(t *testing.T) {
		tr := newTree("root", false)
		child := tr.add(rootIndex, "a", "child", false)
		sibling := tr.add(rootIndex, "b", "sibling", false)
		grandchild := tr.add(child, "c", "grandchild", false)

		tr.backup(grandchild, 1)

		require.Equal(t, 1.0, tr.nodes[grandchild].rewards)
		require.Equal(t, -1.0, tr.nodes[child].rewards)
		require.Equal(t, 1.0, tr.nodes[rootIndex].rewards)
		for _, i := range []int{grandchild, child, rootIndex} {
			require.Equal(t, 1, tr.nodes[i].visits, "Every node on the path should gain a visit")
		}
		require.Equal(t, 0, tr.nodes[sibling].visits, "Off-path nodes should be untouched")
		require.Equal(t, 0.0, tr.nodes[sibling].rewards)
	})

	t.Run("accumulating several simulations", func(t *testing.T) {
		tr := newTree("root", false)
		child := tr.add(rootIndex, "a", "child", false)

		tr.backup(child, Win)
		tr.backup(child, Loss)
		tr.backup(child, Win)

		require.Equal(t, 3, tr.nodes[child].visits)
		require.Equal(t, 1.0, tr.nodes[child].rewards)
		require.Equal(t, -1.0, tr.nodes[rootIndex].rewards)
	})
}

func TestTreePickChild(t *testing.T) {
	t.Run("preferring an unvisited child over any score", func(t *testing.T) {
		tr := newTree("root", false)
		strong := tr.add(rootIndex, "a", "1", false)
		fresh := tr.add(rootIndex, "b", "2", false)
		tr.nodes[strong].visits, tr.nodes[strong].rewards = 100, 100
		tr.nodes[rootIndex].visits = 100

		require.Equal(t, fresh, tr.pickChild(rootIndex, ExplorationConstant))
	})

	t.Run("selecting the child with max UCT value", func(t *testing.T) {
		tr := newTree("root", false)
		weak := tr.add(rootIndex, "a", "1", false)
		strong := tr.add(rootIndex, "b", "2", false)
		tr.nodes[weak].visits, tr.nodes[weak].rewards = 10, -5
		tr.nodes[strong].visits, tr.nodes[strong].rewards = 10, 5
		tr.nodes[rootIndex].visits = 20

		require.Equal(t, strong, tr.pickChild(rootIndex, ExplorationConstant))
	})

	t.Run("exploring a rarely visited child", func(t *testing.T) {
		tr := newTree("root", false)
		explored := tr.add(rootIndex, "a", "1", false)
		rare := tr.add(rootIndex, "b", "2", false)
		tr.nodes[explored].visits, tr.nodes[explored].rewards = 1000, 100
		tr.nodes[rare].visits, tr.nodes[rare].rewards = 1, 0
		tr.nodes[rootIndex].visits = 1001

		require.Equal(t, rare, tr.pickChild(rootIndex, ExplorationConstant))
	})

	t.Run("panicking without children", func(t *testing.T) {
		tr := newTree("root", false)
		require.Panics(t, func() { tr.pickChild(rootIndex, ExplorationConstant) })
	})
}

func TestTreeBestMove(t *testing.T) {
	tr := newTree("root", false)
	_, ok := tr.bestMove(rootIndex)
	require.False(t, ok, "Unexpanded root has no move")

	a := tr.add(rootIndex, "a", "1", false)
	b := tr.add(rootIndex, "b", "2", false)
	tr.nodes[a].visits, tr.nodes[a].rewards = 3, 3
	tr.nodes[b].visits, tr.nodes[b].rewards = 7, -1

	move, ok := tr.bestMove(rootIndex)
	require.True(t, ok)
	require.Equal(t, "b", move, "Most visited child should win over highest reward")
	require.Equal(t, map[string]float64{"a": 3, "b": 7}, tr.policy(rootIndex))
}

func TestTreeSubtree(t *testing.T) {
	tr := newTree("r", false)
	a := tr.add(rootIndex, "a", "ra", false)
	tr.add(rootIndex, "b", "rb", false)
	aa := tr.add(a, "x", "rax", false)
	tr.add(aa, "y", "raxy", true)
	tr.nodes[a].visits, tr.nodes[a].rewards = 4, 2
	tr.nodes[aa].visits = 3

	found, ok := tr.find("rax", 2)
	require.True(t, ok)
	require.Equal(t, aa, found)
	_, ok = tr.find("raxy", 2)
	require.False(t, ok, "Search depth should be bounded")

	sub := tr.subtree(a)

	require.Equal(t, 3, sub.size())
	require.Equal(t, "ra", sub.nodes[rootIndex].token)
	require.Equal(t, "", sub.nodes[rootIndex].move)
	require.Equal(t, -1, sub.nodes[rootIndex].parent)
	require.Equal(t, 4, sub.nodes[rootIndex].visits)
	require.Equal(t, 2.0, sub.nodes[rootIndex].rewards)

	child, ok := sub.child(rootIndex, "x")
	require.True(t, ok)
	require.Equal(t, 3, sub.nodes[child].visits)
	grandchild, ok := sub.child(child, "y")
	require.True(t, ok)
	require.True(t, sub.nodes[grandchild].terminal)
	require.Equal(t, child, sub.nodes[grandchild].parent)
}
