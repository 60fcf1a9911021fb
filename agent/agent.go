// Package agent turns policies and the tree search into environment players.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"quoridor/config"
	"quoridor/env"
	"quoridor/game"
	"quoridor/policy"
)

var ErrIllegalAction = errors.New("action not allowed by the mask")

type Agent interface {
	// Act picks a discrete action for the position described by obs and info.
	// reward is the agent's reward for its previous action.
	Act(ctx context.Context, obs env.Observation, reward float64, info env.Info) (int, error)
}

// Reporter is implemented by agents that record how their last move was chosen.
type Reporter interface {
	Report() Report
}

// NewAgent builds an agent by kind for player 1 or 2.
func NewAgent(kind string, player int, cfg *config.Config) (Agent, error) {
	seed := cfg.Seed
	if seed != 0 {
		seed += uint64(player)
	}
	switch kind {
	case config.AgentRandom:
		return NewRandomAgent(seed), nil
	case config.AgentShortestPath:
		return &ShortestPathAgent{}, nil
	case config.AgentRandomShortestPath:
		return NewRandomShortestPathAgent(seed), nil
	case config.AgentMCTS:
		return NewMCTSAgent(player, cfg), nil
	case config.AgentHuman:
		return NewHumanAgent(os.Stdin, os.Stdout), nil
	case config.AgentRemote:
		if cfg.Remote == "" {
			return nil, errors.New("remote agent needs a server url")
		}
		return NewRemoteAgent(cfg.Remote), nil
	}
	return nil, fmt.Errorf("unknown agent %q", kind)
}

// RandomAgent plays uniformly among the legal actions.
type RandomAgent struct {
	policy *policy.RandomPolicy
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{policy: policy.NewRandomPolicy(clockSeed(seed))}
}

func (a *RandomAgent) Act(_ context.Context, obs env.Observation, _ float64, _ env.Info) (int, error) {
	return a.policy.Action(obs.ActionMask[:])
}

// ShortestPathAgent always steps along its shortest path to the goal row.
type ShortestPathAgent struct{}

func (ShortestPathAgent) Act(_ context.Context, _ env.Observation, _ float64, info env.Info) (int, error) {
	q, err := game.FromPGN(info.PGN)
	if err != nil {
		return 0, err
	}
	return policy.ShortestPathPolicy{}.Action(q)
}

// RandomShortestPathAgent plays randomly while it has walls left and races
// along its shortest path once they are spent.
type RandomShortestPathAgent struct {
	random *policy.RandomPolicy
}

func NewRandomShortestPathAgent(seed uint64) *RandomShortestPathAgent {
	return &RandomShortestPathAgent{random: policy.NewRandomPolicy(clockSeed(seed))}
}

func (a *RandomShortestPathAgent) Act(_ context.Context, obs env.Observation, _ float64, info env.Info) (int, error) {
	q, err := game.FromPGN(info.PGN)
	if err != nil {
		return 0, err
	}
	if q.CurrentPlayer().Walls == 0 {
		return policy.ShortestPathPolicy{}.Action(q)
	}
	return a.random.Action(obs.ActionMask[:])
}

// clockSeed replaces the unset seed 0 with the current time.
func clockSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}
