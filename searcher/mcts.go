package searcher

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"quoridor/experiments/metrics"
)

// Plies below the current root searched for the new position when reusing
// the tree: our move then the opponent's reply.
const reuseDepth = 2

type Option func(mcts *MCTS)

// MCTS is a single-threaded UCT search over positions identified by opaque
// tokens. It is not safe for concurrent use.
type MCTS struct {
	iterations  int
	duration    time.Duration
	exploration float64
	cutoff      int
	evaluate    Evaluate
	rollout     RolloutPolicy
	reuse       bool
	load        Loader
	rng         *rand.Rand
	metrics     metrics.Collector

	tree   *tree
	player int // perspective of the current search
}

// WithIterations bounds the number of simulations per search.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithDuration bounds the wall-clock time per search. The deadline is only
// checked between simulations.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithCutoff stops playouts after depth moves and scores the position with
// the evaluation function instead.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.rollout = policy
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTreeReuse keeps the subtree of the position reached since the last
// search instead of starting from scratch.
func WithTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(load Loader, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: ExplorationConstant,
		evaluate:    func(State) float64 { return 0 },
		rollout:     RandomPawnRollout,
		load:        load,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search runs simulations from the position identified by token and returns
// the most visited move at the root.
func (m *MCTS) Search(ctx context.Context, token string) (string, metrics.SearchMetric, error) {
	state, err := m.load(token)
	if err != nil {
		return "", metrics.SearchMetric{}, fmt.Errorf("loading root: %w", err)
	}
	if state.Terminal() {
		return "", metrics.SearchMetric{}, ErrIllegalRootState
	}
	if m.iterations <= 0 && m.duration <= 0 {
		return "", metrics.SearchMetric{}, ErrSearchExhausted
	}

	m.findRoot(token)
	m.player = state.Player()

	m.metrics.Start(m.iterations, m.duration, m.cutoff)
	start := time.Now()
	for i := 0; m.withinBudget(i, start); i++ {
		if ctx.Err() != nil {
			break
		}
		if err := m.simulate(); err != nil {
			return "", metrics.SearchMetric{}, err
		}
		m.metrics.AddEpisode()
	}
	m.metrics.SetTreeSize(m.tree.size())
	metric := m.metrics.Complete()

	move, ok := m.tree.bestMove(rootIndex)
	if !ok {
		return "", metric, ErrSearchExhausted
	}

	root := m.tree.nodes[rootIndex]
	log.Debug().
		Str("move", move).
		Int("player", m.player).
		Int("visits", root.visits).
		Int("tree", m.tree.size()).
		Dur("elapsed", time.Since(start)).
		Msg("search complete")
	return move, metric, nil
}

// Policy maps each root move to its visit count after the last search.
func (m *MCTS) Policy() map[string]float64 {
	if m.tree == nil {
		return nil
	}
	return m.tree.policy(rootIndex)
}

func (m *MCTS) withinBudget(i int, start time.Time) bool {
	if m.iterations > 0 && i >= m.iterations {
		return false
	}
	if m.duration > 0 && time.Since(start) >= m.duration {
		return false
	}
	return true
}

// findRoot narrows the previous tree to token or starts a new one.
func (m *MCTS) findRoot(token string) {
	if m.reuse && m.tree != nil {
		if i, ok := m.tree.find(token, reuseDepth); ok {
			m.tree = m.tree.subtree(i)
			m.metrics.SetTreeReset(false)
			return
		}
		log.Warn().Str("token", token).Msg("position not in previous tree, resetting")
	}
	m.tree = newTree(token, false)
	m.metrics.SetTreeReset(true)
}

func (m *MCTS) simulate() error {
	leaf, depth, err := m.selectThenExpand()
	if err != nil {
		return err
	}
	score, err := m.simulateFrom(leaf)
	if err != nil {
		return err
	}
	// Stats at a node belong to the player who moved into it. Odd depths were
	// entered by the searching player, even depths by the opponent.
	if depth%2 == 0 {
		score = -score
	}
	m.tree.backup(leaf, score)
	return nil
}

// selectThenExpand descends from the root until it expands a leaf, returning
// a freshly created child and its depth.
func (m *MCTS) selectThenExpand() (int, int, error) {
	i, depth := rootIndex, 0
	for !m.tree.nodes[i].terminal {
		if len(m.tree.nodes[i].children) == 0 {
			if err := m.expand(i); err != nil {
				return 0, 0, err
			}
			children := m.tree.nodes[i].children
			if len(children) == 0 { // no legal moves, play out from here
				return i, depth, nil
			}
			return children[m.rng.Intn(len(children))], depth + 1, nil
		}
		i = m.tree.pickChild(i, m.exploration)
		depth++
	}
	return i, depth, nil
}

// expand adds one child per legal move, each played on a private copy.
func (m *MCTS) expand(i int) error {
	state, err := m.load(m.tree.nodes[i].token)
	if err != nil {
		return fmt.Errorf("loading node: %w", err)
	}
	for _, move := range state.LegalMoves() {
		if _, ok := m.tree.child(i, move); ok {
			continue
		}
		next := state.Clone()
		if err := next.Play(move); err != nil {
			return fmt.Errorf("expanding %q: %w", move, err)
		}
		m.tree.add(i, move, next.Token(), next.Terminal())
	}
	return nil
}

// simulateFrom plays out from node i and scores the result for the searching
// player.
func (m *MCTS) simulateFrom(i int) (float64, error) {
	state, err := m.load(m.tree.nodes[i].token)
	if err != nil {
		return 0, fmt.Errorf("loading node: %w", err)
	}
	return rollout(state, m.player, m.rollout, m.rng, m.cutoff, m.evaluate, m.metrics)
}

func rollout(state State, player int, policy RolloutPolicy, rng *rand.Rand, cutoff int, evaluate Evaluate, metrics metrics.Collector) (float64, error) {
	depth := 0
	// Rollout till game over or for cutoff number of moves
	for !state.Terminal() && (cutoff <= 0 || depth < cutoff) {
		move, err := policy(state, rng)
		if err != nil {
			return 0, fmt.Errorf("rollout: %w", err)
		}
		if err := state.Play(move); err != nil {
			return 0, fmt.Errorf("rollout move %q: %w", move, err)
		}
		depth++
	}

	if state.Terminal() {
		metrics.AddFullPlayout()
		return reward(state.Winner(), player), nil
	}

	// At cutoff, evaluate from the player to move and flip to our perspective
	score := evaluate(state)
	if state.Player() != player {
		score = -score
	}
	return score, nil
}
