// Package game implements the Quoridor rules engine the search and policy
// layers run against: legal move generation, wall legality, terminal
// detection and the portable PGN token.
package game

import "errors"

const (
	Size           = 9 // cells per side
	WallsPerPlayer = 10
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrInvalidPGN  = errors.New("invalid pgn")
	ErrGameOver    = errors.New("game is over")
)

// Player is a snapshot of one side of the game.
type Player struct {
	ID    int    // 1 or 2
	Pos   string // cell label, e.g. "e1"
	Walls int    // walls left to place
	Goal  int    // row number (1-9) that wins the game
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(*Quoridor) float64
