package experiments

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"quoridor/agent"
	"quoridor/config"
	"quoridor/engine"
	"quoridor/experiments/metrics"
)

// Contestant is an agent kind with the configuration it plays under.
type Contestant struct {
	Name   string
	Kind   string
	Config *config.Config
}

func NewContestant(kind string, cfg *config.Config) Contestant {
	return Contestant{Name: kind, Kind: kind, Config: cfg}
}

// Result holds everything recorded while simulating one pairing.
type Result struct {
	Trial metrics.Trial
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Simulate plays games episodes between player1 and player2, up to
// concurrency at a time. Every game gets fresh agents.
func Simulate(ctx context.Context, player1, player2 Contestant, games, concurrency, maxTurns int) (Result, error) {
	trialID := uuid.New()
	start := time.Now()
	log.Info().Msgf("starting trial %s: %s vs %s, %d games", trialID, player1.Name, player2.Name, games)

	records := make([]metrics.GameRecord, games)
	moves := make([][]metrics.MoveMetric, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			a1, err := newAgent(player1, 1, i)
			if err != nil {
				return err
			}
			a2, err := newAgent(player2, 2, i)
			if err != nil {
				return err
			}
			e := engine.NewLocalEngine([2]agent.Agent{a1, a2}, [2]string{player1.Name, player2.Name}, maxTurns)
			winner, gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			records[i] = metrics.GameRecord{
				ID:         i + 1,
				Trial:      trialID,
				Agent1:     player1.Name,
				Agent2:     player2.Name,
				GameMetric: gameMetric,
			}
			moves[i] = moveMetrics
			log.Info().Msgf("completed game %d of %d with winner: %d", i+1, games, winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{
		Trial: metrics.Trial{
			ID:       trialID,
			Agent1:   player1.Name,
			Agent2:   player2.Name,
			Time:     start,
			Duration: time.Since(start),
		},
		Games: records,
	}
	wins, turns := 0, 0
	for i, record := range records {
		if record.Winner == 1 {
			wins++
		}
		turns += record.TotalMoves
		res.Trial.Games = append(res.Trial.Games, record.PGN)
		for _, mm := range moves[i] {
			res.Moves = append(res.Moves, metrics.MoveRecord{Game: record.ID, MoveMetric: mm})
		}
	}
	res.Trial.WinRate = float64(wins) / float64(games)
	res.Trial.AvgTurns = float64(turns) / float64(games)

	log.Info().Msgf("completed trial %s: win rate %.2f%%, average turns %.2f",
		trialID, res.Trial.WinRate*100, res.Trial.AvgTurns)
	return res, nil
}

// newAgent varies the seed per game so parallel games differ.
func newAgent(c Contestant, player, game int) (agent.Agent, error) {
	cfg := *c.Config
	if cfg.Seed != 0 {
		cfg.Seed += uint64(game) * 7919
	}
	return agent.NewAgent(c.Kind, player, &cfg)
}

// Standing is one row of a tournament ranking.
type Standing struct {
	Name string
	Wins int
}

// Tournament is a round robin where every contestant plays every other
// contestant as player 1 and as player 2. The ranking is by total wins.
type Tournament struct {
	contestants []Contestant
	games       int
	concurrency int
	maxTurns    int

	wins    map[string]int
	results []Result
}

func NewTournament(contestants []Contestant, games, concurrency, maxTurns int) *Tournament {
	wins := make(map[string]int, len(contestants))
	for _, c := range contestants {
		wins[c.Name] = 0
	}
	return &Tournament{
		contestants: contestants,
		games:       games,
		concurrency: concurrency,
		maxTurns:    maxTurns,
		wins:        wins,
	}
}

func (t *Tournament) Run(ctx context.Context) error {
	pairings := 0
	for _, c1 := range t.contestants {
		for _, c2 := range t.contestants {
			if c1.Name == c2.Name {
				continue
			}
			pairings++
			log.Info().Msgf("starting pairing %d of %d between %s and %s...",
				pairings, len(t.contestants)*(len(t.contestants)-1), c1.Name, c2.Name)

			res, err := Simulate(ctx, c1, c2, t.games, t.concurrency, t.maxTurns)
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", c1.Name, c2.Name, err)
			}
			t.record(res)
		}
	}
	return nil
}

func (t *Tournament) record(res Result) {
	for _, game := range res.Games {
		switch game.Winner {
		case 1:
			t.wins[game.Agent1]++
		case 2:
			t.wins[game.Agent2]++
		}
	}
	t.results = append(t.results, res)
}

// Ranking orders contestants by wins, ties by name.
func (t *Tournament) Ranking() []Standing {
	ranking := make([]Standing, 0, len(t.wins))
	for name, wins := range t.wins {
		ranking = append(ranking, Standing{Name: name, Wins: wins})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Wins != ranking[j].Wins {
			return ranking[i].Wins > ranking[j].Wins
		}
		return ranking[i].Name < ranking[j].Name
	})
	return ranking
}

func (t *Tournament) Results() []Result {
	return append([]Result(nil), t.results...)
}

// Save writes trials, games and moves of results under dir/name.
func Save(dir, name string, results []Result) (string, error) {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", err
	}

	var trials []metrics.Trial
	var games []metrics.GameRecord
	var moves []metrics.MoveRecord
	for _, res := range results {
		offset := len(games)
		trials = append(trials, res.Trial)
		for _, g := range res.Games {
			g.ID += offset
			games = append(games, g)
		}
		for _, m := range res.Moves {
			m.Game += offset
			moves = append(moves, m)
		}
	}

	if err := writer.WriteTrials(trials); err != nil {
		return "", fmt.Errorf("failed to store trials: %w", err)
	}
	log.Info().Msg("stored trials")
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
