// Package policy holds the non-searching move policies: the shortest-path
// race toward the goal row and uniform random choice over an action mask.
package policy

import (
	"errors"
	"fmt"

	"quoridor/codec"
	"quoridor/game"
	"quoridor/utils"
)

var ErrNoPathFound = errors.New("no path to goal row")

// Overlay is the transient set of edge changes that models the waiting
// player's pawn for one shortest-path query.
type Overlay struct {
	From    string   // current player's cell
	Removed string   // occupied neighbor no longer reachable, "" if none
	Added   []string // jump destinations
}

// JumpOverlay computes the edges to patch when the waiting player stands next
// to the current player: the occupied cell is dropped and the cell straight
// behind it is added, or every other neighbor of the opponent when that cell
// is off the board or walled off.
func JumpOverlay(board game.Board, current, waiting string) Overlay {
	o := Overlay{From: current}
	if !board.Connected(current, waiting) {
		return o
	}
	o.Removed = waiting
	if behind, ok := game.Behind(current, waiting); ok && board.Connected(waiting, behind) {
		o.Added = []string{behind}
		return o
	}
	for _, side := range board[waiting] {
		if side != current {
			o.Added = utils.AppendUnique(o.Added, side)
		}
	}
	return o
}

// Apply patches board in place. Only ever apply to a private copy.
func (o Overlay) Apply(board game.Board) {
	if o.Removed != "" {
		board[o.From] = utils.Remove(board[o.From], o.Removed)
	}
	board[o.From] = utils.AppendUnique(board[o.From], o.Added...)
}

// ShortestPath returns a shortest path from current to any cell on the goal
// row, starting with current itself. The caller's board is not modified.
func ShortestPath(board game.Board, current, waiting string, goal int) ([]string, error) {
	working := board.Clone()
	JumpOverlay(working, current, waiting).Apply(working)

	path := bfs(working, current, goal)
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: from %s to row %d", ErrNoPathFound, current, goal)
	}
	return path, nil
}

// NextStep returns the first cell along ShortestPath.
func NextStep(board game.Board, current, waiting string, goal int) (string, error) {
	path, err := ShortestPath(board, current, waiting, goal)
	if err != nil {
		return "", err
	}
	return path[1], nil
}

// bfs explores partial paths in FIFO order and stops at the first enqueued
// path whose last cell lies on the goal row. A cell is marked visited once
// all of its neighbors have been enqueued.
func bfs(board game.Board, from string, goal int) []string {
	queue := [][]string{{from}}
	visited := make(map[string]bool)
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		cell := path[len(path)-1]
		if visited[cell] {
			continue
		}
		for _, next := range board[cell] {
			extended := make([]string, len(path), len(path)+1)
			copy(extended, path)
			extended = append(extended, next)
			if game.Row(next) == goal {
				return extended
			}
			queue = append(queue, extended)
		}
		visited[cell] = true
	}
	return nil
}

// ShortestPathPolicy plays the next step of the current player's shortest
// path, ignoring walls it could place.
type ShortestPathPolicy struct{}

// Move returns the structured pawn move.
func (ShortestPathPolicy) Move(q *game.Quoridor) (string, error) {
	current, waiting := q.CurrentPlayer(), q.WaitingPlayer()
	return NextStep(q.Board(), current.Pos, waiting.Pos, current.Goal)
}

// Action returns the move as a discrete action index.
func (p ShortestPathPolicy) Action(q *game.Quoridor) (int, error) {
	move, err := p.Move(q)
	if err != nil {
		return 0, err
	}
	return codec.ToDiscrete(move)
}
