// Package env exposes a Quoridor game through a turn-taking environment: one
// agent acts at a time, sees a board observation with an action mask and is
// rewarded when the game ends.
package env

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"quoridor/codec"
	"quoridor/game"
	"quoridor/meta"
)

const (
	Player1 = "player_1"
	Player2 = "player_2"
)

// Observation planes.
const (
	PlanePlayer1 = iota
	PlanePlayer2
	PlaneHorizontal
	PlaneVertical
	PlaneWalls1
	PlaneWalls2
	Planes
)

const IllegalReward = -1.0

var ErrGameOver = errors.New("environment episode is over")

// Observation is indexed [row-1][column][plane]. Wall count planes set their
// first n cells in row-major order.
type Observation struct {
	Board      [game.Size][game.Size][Planes]bool
	ActionMask [codec.ActionSpace]bool
}

type Info struct {
	PGN  string `json:"pgn"`
	Turn int    `json:"turn"`
}

// Env is one two-player episode. It is not safe for concurrent use.
type Env struct {
	game       *game.Quoridor
	maxTurns   int
	rewards    map[string]float64
	terminated bool
	truncated  bool
}

func New() *Env {
	e := &Env{maxTurns: meta.MAX_TURNS}
	e.Reset()
	return e
}

// Load resumes an episode from a PGN token.
func Load(pgn string) (*Env, error) {
	q, err := game.FromPGN(pgn)
	if err != nil {
		return nil, err
	}
	e := New()
	e.game = q
	if q.IsTerminated() {
		winner := agentName(q.Winner())
		e.rewards[winner] = 1
		e.rewards[opponent(winner)] = -1
		e.terminated = true
	}
	return e, nil
}

// WithMaxTurns overrides the truncation limit, 0 disables it.
func (e *Env) WithMaxTurns(n int) *Env {
	e.maxTurns = n
	return e
}

// Reset starts a new episode from the initial position.
func (e *Env) Reset() {
	e.game = game.New()
	e.rewards = map[string]float64{Player1: 0, Player2: 0}
	e.terminated = false
	e.truncated = false
}

// AgentSelection is the agent expected to act next.
func (e *Env) AgentSelection() string {
	return agentName(e.game.CurrentPlayer().ID)
}

// Rewards returns the latest reward of each agent.
func (e *Env) Rewards() map[string]float64 {
	out := make(map[string]float64, len(e.rewards))
	for k, v := range e.rewards {
		out[k] = v
	}
	return out
}

// Game returns a copy of the underlying position.
func (e *Env) Game() *game.Quoridor {
	return e.game.Copy()
}

// Last reports what the selected agent observes before acting.
func (e *Env) Last() (Observation, float64, bool, bool, Info) {
	agent := e.AgentSelection()
	return e.observe(), e.rewards[agent], e.terminated, e.truncated, e.info()
}

// Step plays action for the selected agent. An action outside the mask ends
// the episode with IllegalReward for the actor and 0 for the other agent.
func (e *Env) Step(action int) error {
	if e.terminated || e.truncated {
		return ErrGameOver
	}
	actor := e.AgentSelection()
	other := opponent(actor)

	mask := ActionMask(e.game)
	if action < 0 || action >= codec.ActionSpace || !mask[action] {
		log.Debug().Str("agent", actor).Int("action", action).Msg("illegal action")
		e.rewards[actor] = IllegalReward
		e.rewards[other] = 0
		e.terminated = true
		return nil
	}

	move, err := codec.ToStructured(action)
	if err != nil {
		return err
	}
	if err := e.game.MakeMove(move); err != nil {
		return fmt.Errorf("step %q: %w", move, err)
	}

	switch {
	case e.game.IsTerminated():
		winner := agentName(e.game.Winner())
		e.rewards[winner] = 1
		e.rewards[opponent(winner)] = -1
		e.terminated = true
	case e.maxTurns > 0 && e.game.Turn() >= e.maxTurns:
		e.truncated = true
	}
	return nil
}

func (e *Env) info() Info {
	return Info{PGN: e.game.PGN(), Turn: e.game.Turn()}
}

func (e *Env) observe() Observation {
	var obs Observation
	q := e.game
	set := func(cell string, plane int) {
		col, row := game.Coords(cell)
		obs.Board[row][col][plane] = true
	}
	set(q.Player(1).Pos, PlanePlayer1)
	set(q.Player(2).Pos, PlanePlayer2)
	for _, wall := range q.PlacedWalls() {
		if wall[2] == 'h' {
			set(wall[:2], PlaneHorizontal)
		} else {
			set(wall[:2], PlaneVertical)
		}
	}
	for i := 0; i < q.Player(1).Walls; i++ {
		obs.Board[i/game.Size][i%game.Size][PlaneWalls1] = true
	}
	for i := 0; i < q.Player(2).Walls; i++ {
		obs.Board[i/game.Size][i%game.Size][PlaneWalls2] = true
	}
	if !e.terminated && !e.truncated {
		obs.ActionMask = ActionMask(q)
	}
	return obs
}

// ActionMask marks the discrete index of every legal move.
func ActionMask(q *game.Quoridor) [codec.ActionSpace]bool {
	var mask [codec.ActionSpace]bool
	for _, move := range q.LegalMoves() {
		mask[codec.MustToDiscrete(move)] = true
	}
	return mask
}

func agentName(id int) string {
	if id == 2 {
		return Player2
	}
	return Player1
}

func opponent(agent string) string {
	if agent == Player1 {
		return Player2
	}
	return Player1
}
