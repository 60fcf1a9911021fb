package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"quoridor/agent"
	"quoridor/codec"
	"quoridor/env"
	"quoridor/experiments/metrics"
)

var _ Engine = (*LocalEngine)(nil)

// LocalEngine plays two in-process agents against each other.
type LocalEngine struct {
	env    *env.Env
	agents map[string]agent.Agent
	names  map[string]string // strategy label for agents that don't report one
}

// NewLocalEngine seats agents[0] as player 1 and agents[1] as player 2.
// maxTurns truncates the game, 0 disables the limit.
func NewLocalEngine(agents [2]agent.Agent, names [2]string, maxTurns int) *LocalEngine {
	return &LocalEngine{
		env: env.New().WithMaxTurns(maxTurns),
		agents: map[string]agent.Agent{
			env.Player1: agents[0],
			env.Player2: agents[1],
		},
		names: map[string]string{
			env.Player1: names[0],
			env.Player2: names[1],
		},
	}
}

// Run executes the entire game loop until a winner is found. An illegal
// action forfeits the game; the winner is 0 when it was truncated.
func (e *LocalEngine) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	e.env.Reset()
	start := time.Now()
	gameMetric := metrics.GameMetric{StartingPlayer: 1, StartTime: start}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s vs %s", e.names[env.Player1], e.names[env.Player2])

	for {
		if err := ctx.Err(); err != nil {
			return 0, gameMetric, moveMetrics, err
		}
		current := e.env.AgentSelection()
		obs, reward, terminated, truncated, info := e.env.Last()
		if terminated || truncated {
			break
		}

		action, err := e.agents[current].Act(ctx, obs, reward, info)
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("%s on turn %d: %w", current, info.Turn+1, err)
		}
		move, _ := codec.ToStructured(action)

		moveMetric := metrics.MoveMetric{
			Step:     info.Turn + 1,
			Player:   playerID(current),
			Move:     move,
			Strategy: e.names[current],
		}
		if reporter, ok := e.agents[current].(agent.Reporter); ok {
			report := reporter.Report()
			moveMetric.Strategy = string(report.Strategy)
			moveMetric.SearchMetric = report.Search
		}
		moveMetrics = append(moveMetrics, moveMetric)
		log.Debug().Int("turn", moveMetric.Step).Str("agent", current).Str("move", move).Msg("move played")

		if err := e.env.Step(action); err != nil {
			return 0, gameMetric, moveMetrics, err
		}
	}

	winner := 0
	rewards := e.env.Rewards()
	switch {
	case rewards[env.Player1] > rewards[env.Player2]:
		winner = 1
	case rewards[env.Player2] > rewards[env.Player1]:
		winner = 2
	}

	final := e.env.Game()
	gameMetric.Winner = winner
	gameMetric.PGN = final.PGN()
	gameMetric.TotalMoves = final.Turn()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(start)

	if winner == 0 {
		log.Info().Msgf("stopped after %d turns without a winner", final.Turn())
	} else {
		log.Info().Msgf("player %d won after %d turns", winner, final.Turn())
	}
	return winner, gameMetric, moveMetrics, nil
}

func playerID(name string) int {
	if name == env.Player2 {
		return 2
	}
	return 1
}
