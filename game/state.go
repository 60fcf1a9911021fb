package game

import (
	"fmt"
	"slices"
	"strings"
)

// Quoridor is a live, mutable game. Use Copy before exploring moves that must
// not affect the original.
type Quoridor struct {
	players    [2]Player
	current    int // index into players
	board      Board
	walls      map[string]bool // placed wall labels
	history    []string
	terminated bool
}

// New returns the initial position: player 1 on e1 heading to row 9, player 2
// on e9 heading to row 1, player 1 to move.
func New() *Quoridor {
	return &Quoridor{
		players: [2]Player{
			{ID: 1, Pos: "e1", Walls: WallsPerPlayer, Goal: Size},
			{ID: 2, Pos: "e9", Walls: WallsPerPlayer, Goal: 1},
		},
		board: NewBoard(),
		walls: make(map[string]bool),
	}
}

// FromPGN replays a slash separated move list such as "e2/e8/e3/e7/e1h".
// The empty string is the initial position.
func FromPGN(pgn string) (*Quoridor, error) {
	q := New()
	if pgn == "" {
		return q, nil
	}
	for i, move := range strings.Split(pgn, "/") {
		if err := q.MakeMove(move); err != nil {
			return nil, fmt.Errorf("%w: move %d %q: %w", ErrInvalidPGN, i+1, move, err)
		}
	}
	return q, nil
}

// PGN serializes the position as its move history.
func (q *Quoridor) PGN() string {
	return strings.Join(q.history, "/")
}

// Copy returns an independent deep copy.
func (q *Quoridor) Copy() *Quoridor {
	walls := make(map[string]bool, len(q.walls))
	for w := range q.walls {
		walls[w] = true
	}
	return &Quoridor{
		players:    q.players,
		current:    q.current,
		board:      q.board.Clone(),
		walls:      walls,
		history:    slices.Clone(q.history),
		terminated: q.terminated,
	}
}

func (q *Quoridor) CurrentPlayer() Player { return q.players[q.current] }
func (q *Quoridor) WaitingPlayer() Player { return q.players[1-q.current] }

// Player returns the player with the given id (1 or 2).
func (q *Quoridor) Player(id int) Player { return q.players[id-1] }

// Board returns a private copy of the adjacency graph.
func (q *Quoridor) Board() Board { return q.board.Clone() }

func (q *Quoridor) IsTerminated() bool { return q.terminated }

// Turn is the number of moves played so far.
func (q *Quoridor) Turn() int { return len(q.history) }

// Winner returns the id of the player who reached their goal row, or 0.
// The winner stays the current player once the game is over.
func (q *Quoridor) Winner() int {
	if !q.terminated {
		return 0
	}
	return q.players[q.current].ID
}

// PlacedWalls lists placed wall labels in lexical order.
func (q *Quoridor) PlacedWalls() []string {
	walls := make([]string, 0, len(q.walls))
	for w := range q.walls {
		walls = append(walls, w)
	}
	slices.Sort(walls)
	return walls
}

// LegalMoves lists pawn moves followed by wall placements.
func (q *Quoridor) LegalMoves() []string {
	if q.terminated {
		return nil
	}
	moves := q.LegalPawnMoves()
	if q.players[q.current].Walls == 0 {
		return moves
	}
	for _, orientation := range []byte{'h', 'v'} {
		for row := 0; row < Size-1; row++ {
			for col := 0; col < Size-1; col++ {
				if q.wallAllowed(col, row, orientation) {
					moves = append(moves, Cell(col, row)+string(orientation))
				}
			}
		}
	}
	return moves
}

// LegalPawnMoves lists the cells the current player can move to, including
// straight and diagonal jumps over an adjacent opponent.
func (q *Quoridor) LegalPawnMoves() []string {
	if q.terminated {
		return nil
	}
	from := q.players[q.current].Pos
	opponent := q.players[1-q.current].Pos

	moves := make([]string, 0, 5)
	for _, next := range q.board[from] {
		if next != opponent {
			moves = append(moves, next)
			continue
		}
		if behind, ok := Behind(from, opponent); ok && q.board.Connected(opponent, behind) {
			moves = append(moves, behind)
			continue
		}
		for _, side := range q.board[opponent] {
			if side != from {
				moves = append(moves, side)
			}
		}
	}
	return moves
}

// MakeMove applies a pawn move ("e2") or a wall placement ("e2h", "e2v").
func (q *Quoridor) MakeMove(move string) error {
	if q.terminated {
		return ErrGameOver
	}
	switch len(move) {
	case 2:
		if !slices.Contains(q.LegalPawnMoves(), move) {
			return fmt.Errorf("%w: pawn move %q", ErrIllegalMove, move)
		}
		player := &q.players[q.current]
		player.Pos = move
		q.history = append(q.history, move)
		if Row(move) == player.Goal {
			q.terminated = true
			return nil
		}
	case 3:
		col, row := Coords(move[:2])
		if !q.wallAllowed(col, row, move[2]) {
			return fmt.Errorf("%w: wall %q", ErrIllegalMove, move)
		}
		for _, e := range wallEdges(col, row, move[2]) {
			q.board.removeEdge(e[0], e[1])
		}
		q.walls[move] = true
		q.players[q.current].Walls--
		q.history = append(q.history, move)
	default:
		return fmt.Errorf("%w: %q", ErrIllegalMove, move)
	}
	q.current = 1 - q.current
	return nil
}

// Distance is the number of pawn steps the player needs to reach their goal
// row ignoring the other pawn, or -1 if it is walled off.
func (q *Quoridor) Distance(id int) int {
	p := q.players[id-1]
	return q.board.distance(p.Pos, p.Goal, [2]edge{})
}

// wallAllowed checks bounds, overlap, crossing, remaining walls and that both
// players keep a path to their goal row.
func (q *Quoridor) wallAllowed(col, row int, orientation byte) bool {
	if q.players[q.current].Walls == 0 {
		return false
	}
	if col < 0 || col >= Size-1 || row < 0 || row >= Size-1 {
		return false
	}
	if orientation != 'h' && orientation != 'v' {
		return false
	}
	anchor := Cell(col, row)
	if q.walls[anchor+"h"] || q.walls[anchor+"v"] {
		return false
	}
	if orientation == 'h' {
		if q.hasWall(col-1, row, 'h') || q.hasWall(col+1, row, 'h') {
			return false
		}
	} else {
		if q.hasWall(col, row-1, 'v') || q.hasWall(col, row+1, 'v') {
			return false
		}
	}

	blocked := wallEdges(col, row, orientation)
	for _, p := range q.players {
		if q.board.distance(p.Pos, p.Goal, blocked) < 0 {
			return false
		}
	}
	return true
}

func (q *Quoridor) hasWall(col, row int, orientation byte) bool {
	if col < 0 || col >= Size-1 || row < 0 || row >= Size-1 {
		return false
	}
	return q.walls[Cell(col, row)+string(orientation)]
}
