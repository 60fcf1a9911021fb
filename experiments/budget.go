package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"quoridor/config"
)

// BudgetContestants pairs MCTS agents at increasing iteration budgets with a
// baseline agent kind. Each MCTS agent gets a copy of cfg.
func BudgetContestants(cfg *config.Config, baseline string, budgets []int) (Contestant, []Contestant) {
	var contestants []Contestant
	for _, budget := range budgets {
		c := *cfg
		c.Iterations = budget
		c.Duration = 0
		contestants = append(contestants, Contestant{
			Name:   fmt.Sprintf("mcts-%d", budget),
			Kind:   config.AgentMCTS,
			Config: &c,
		})
	}
	return NewContestant(baseline, cfg), contestants
}

// RunBudgetExperiment plays every budgeted MCTS agent against the baseline,
// once from each seat, and returns one result per pairing.
func RunBudgetExperiment(ctx context.Context, cfg *config.Config, baseline string, budgets []int) ([]Result, error) {
	base, contestants := BudgetContestants(cfg, baseline, budgets)
	log.Info().Msgf("starting budget experiment against %s...", base.Name)

	var results []Result
	for i, c := range contestants {
		log.Info().Msgf("starting matchup %d of %d with %s...", i+1, len(contestants), c.Name)
		for _, pair := range [][2]Contestant{{c, base}, {base, c}} {
			res, err := Simulate(ctx, pair[0], pair[1], cfg.Games, cfg.Concurrency, cfg.MaxTurns)
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
		log.Info().Msgf("completed matchup %d of %d", i+1, len(contestants))
	}

	log.Info().Msg("completed budget experiment")
	return results, nil
}
