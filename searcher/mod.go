package searcher

import (
	"errors"

	"golang.org/x/exp/rand"
)

// Hyperparameters for MCTS

const ExplorationConstant = 1.414 // UCB1 constant for rewards in [-1, 1]

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)

var (
	ErrSearchExhausted  = errors.New("search budget exhausted before the root was expanded")
	ErrIllegalRootState = errors.New("search root is a terminal position")
)

// State is a live, mutable game position. The search only holds one for the
// duration of a single expansion or rollout.
type State interface {
	Player() int // player to move
	Winner() int // 0 until terminal
	Terminal() bool
	LegalMoves() []string
	PawnMoves() []string
	Play(move string) error
	Clone() State
	Token() string // opaque portable position
}

// Loader reconstructs a live position from its token.
type Loader func(token string) (State, error)

// RolloutPolicy picks the next move of a playout.
type RolloutPolicy func(state State, rng *rand.Rand) (string, error)

// Evaluates a non-terminal state to a score between -1 and 1 from the
// perspective of the player to move.
type Evaluate func(State) float64

// RandomPawnRollout plays a uniformly random pawn move.
func RandomPawnRollout(state State, rng *rand.Rand) (string, error) {
	moves := state.PawnMoves()
	if len(moves) == 0 {
		return "", errors.New("no pawn moves to roll out")
	}
	return moves[rng.Intn(len(moves))], nil
}

// reward scores a finished game for player.
func reward(winner, player int) float64 {
	if winner == player {
		return Win
	}
	return Loss
}
