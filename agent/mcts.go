package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"quoridor/codec"
	"quoridor/config"
	"quoridor/env"
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/policy"
	"quoridor/searcher"
)

type Strategy string

const (
	StrategyShortestPath Strategy = "shortest-path"
	StrategyTreeSearch   Strategy = "mcts"
)

// Report describes how the last action was chosen.
type Report struct {
	Strategy Strategy
	Move     string
	Search   metrics.SearchMetric // zero unless the tree search ran
}

// MCTSAgent searches with MCTS while it can still place walls and follows its
// shortest path once they are spent.
type MCTSAgent struct {
	player int
	search *searcher.MCTS
	last   Report
}

// NewMCTSAgent configures the search from cfg. The evaluation function is
// only consulted when cfg.Cutoff is set.
func NewMCTSAgent(player int, cfg *config.Config) *MCTSAgent {
	options := []searcher.Option{
		searcher.WithIterations(cfg.Iterations),
		searcher.WithDuration(cfg.Duration),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithCutoff(cfg.Cutoff),
		searcher.WithEvaluationFn(game.SearchEvaluate(game.EvaluateDistance)),
		searcher.WithMetrics(),
	}
	if cfg.Rollout == config.RolloutShortestPath {
		options = append(options, searcher.WithRolloutPolicy(ShortestPathRollout))
	}
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed+uint64(player)))
	}
	if cfg.ReuseTree {
		options = append(options, searcher.WithTreeReuse())
	}
	return &MCTSAgent{
		player: player,
		search: searcher.NewMCTS(game.LoadSearchState, options...),
	}
}

// StrategyFor selects how to play the position.
func StrategyFor(q *game.Quoridor) Strategy {
	if q.CurrentPlayer().Walls == 0 {
		return StrategyShortestPath
	}
	return StrategyTreeSearch
}

func (a *MCTSAgent) Act(ctx context.Context, _ env.Observation, _ float64, info env.Info) (int, error) {
	q, err := game.FromPGN(info.PGN)
	if err != nil {
		return 0, err
	}

	strategy := StrategyFor(q)
	var move string
	var metric metrics.SearchMetric
	switch strategy {
	case StrategyShortestPath:
		move, err = policy.ShortestPathPolicy{}.Move(q)
	case StrategyTreeSearch:
		move, metric, err = a.search.Search(ctx, info.PGN)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", strategy, err)
	}

	a.last = Report{Strategy: strategy, Move: move, Search: metric}
	log.Debug().
		Int("player", a.player).
		Str("strategy", string(strategy)).
		Str("move", move).
		Msg("mcts agent acted")
	return codec.ToDiscrete(move)
}

func (a *MCTSAgent) Report() Report {
	return a.last
}

// Policy exposes the root visit counts of the last tree search.
func (a *MCTSAgent) Policy() map[string]float64 {
	return a.search.Policy()
}

// ShortestPathRollout steps the player to move along its shortest path. It
// only accepts states produced by game.LoadSearchState.
func ShortestPathRollout(state searcher.State, _ *rand.Rand) (string, error) {
	return policy.ShortestPathPolicy{}.Move(state.(game.SearchState).Quoridor)
}
