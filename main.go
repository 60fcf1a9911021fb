package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"quoridor/agent"
	"quoridor/config"
	"quoridor/engine"
	"quoridor/experiments"
)

var (
	v          = viper.New()
	cfg        *config.Config
	configPath string
	budgets    []int
	baseline   string
)

var rootCmd = &cobra.Command{
	Use:   "quoridor",
	Short: "Quoridor agents, tree search and experiments",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(v, configPath)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		setupLogging(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a series of games between player1 and player2",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := experiments.Simulate(cmd.Context(),
			experiments.NewContestant(cfg.Player1, cfg),
			experiments.NewContestant(cfg.Player2, cfg),
			cfg.Games, cfg.Concurrency, cfg.MaxTurns)
		if err != nil {
			return err
		}
		fmt.Printf("Total time taken: %.2f seconds\n", res.Trial.Duration.Seconds())
		fmt.Printf("win rate: %.2f%%\n", res.Trial.WinRate*100)
		fmt.Printf("average turns: %.2f\n", res.Trial.AvgTurns)
		return save("simulate", []experiments.Result{res})
	},
}

var tournamentCmd = &cobra.Command{
	Use:   "tournament [kind...]",
	Short: "Round robin between agent kinds, ranked by wins",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{config.AgentRandom, config.AgentRandomShortestPath, config.AgentShortestPath}
		}
		var contestants []experiments.Contestant
		for _, kind := range args {
			if !config.ValidAgent(kind) || kind == config.AgentHuman {
				return fmt.Errorf("agent %q cannot play a tournament", kind)
			}
			contestants = append(contestants, experiments.NewContestant(kind, cfg))
		}

		t := experiments.NewTournament(contestants, cfg.Games, cfg.Concurrency, cfg.MaxTurns)
		if err := t.Run(cmd.Context()); err != nil {
			return err
		}
		for i, s := range t.Ranking() {
			fmt.Printf("%d. %s: %d wins\n", i+1, s.Name, s.Wins)
		}
		return save("tournament", t.Results())
	},
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Play MCTS at several iteration budgets against a baseline agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := experiments.RunBudgetExperiment(cmd.Context(), cfg, baseline, budgets)
		if err != nil {
			return err
		}
		for _, res := range results {
			fmt.Printf("%s vs %s: player 1 win rate %.2f%%\n", res.Trial.Agent1, res.Trial.Agent2, res.Trial.WinRate*100)
		}
		return save("budget", results)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve player1's agent over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := agent.NewAgent(cfg.Player1, 1, cfg)
		if err != nil {
			return err
		}
		srv := &http.Server{Addr: cfg.Addr, Handler: agent.NewServer(a).Routes()}
		go func() {
			<-cmd.Context().Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()

		log.Info().Msgf("starting %s agent server on %s ...", cfg.Player1, cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a single game in the terminal, human as player 1 by default",
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := [2]string{cfg.Player1, cfg.Player2}
		if !cmd.Flags().Changed("player1") {
			kinds[0] = config.AgentHuman
		}
		if !cmd.Flags().Changed("player2") {
			kinds[1] = config.AgentShortestPath
		}
		var agents [2]agent.Agent
		for i, kind := range kinds {
			a, err := agent.NewAgent(kind, i+1, cfg)
			if err != nil {
				return err
			}
			agents[i] = a
		}

		winner, gameMetric, _, err := engine.NewLocalEngine(agents, kinds, cfg.MaxTurns).Run(cmd.Context())
		if err != nil {
			return err
		}
		switch {
		case winner == 0:
			fmt.Println("Draw!")
		case kinds[winner-1] == config.AgentHuman:
			fmt.Println("You won!")
		case kinds[0] == config.AgentHuman || kinds[1] == config.AgentHuman:
			fmt.Println("You lost!")
		default:
			fmt.Printf("Player %d won!\n", winner)
		}
		fmt.Println(gameMetric.PGN)
		return nil
	},
}

func init() {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (yaml, json or toml)")

	// Search settings
	flags.Int("iterations", defaults.Iterations, "MCTS simulations per move (0 for duration only)")
	flags.Duration("duration", defaults.Duration, "MCTS time budget per move (0 for iterations only)")
	flags.Float64("exploration", defaults.Exploration, "UCT exploration constant")
	flags.Int("cutoff", defaults.Cutoff, "Playout depth before evaluating (0 plays to the end)")
	flags.String("rollout", defaults.Rollout, "Playout policy (random, shortest-path)")
	flags.Bool("reuse-tree", defaults.ReuseTree, "Keep the search tree between moves")
	flags.Uint64("seed", defaults.Seed, "Random seed (0 seeds from the clock)")

	// Experiment settings
	flags.Int("games", defaults.Games, "Games per pairing")
	flags.Int("concurrency", defaults.Concurrency, "Games played in parallel")
	flags.Int("max-turns", defaults.MaxTurns, "Plies before a game is truncated (0 for unlimited)")
	flags.String("output-dir", defaults.OutputDir, "Directory for experiment records")
	flags.String("player1", defaults.Player1, "Agent kind for player 1")
	flags.String("player2", defaults.Player2, "Agent kind for player 2")

	// Server settings
	flags.String("addr", defaults.Addr, "Agent server listen address")
	flags.String("remote", defaults.Remote, "Agent server url for remote agents")

	// Logging
	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")

	// Bind flags to viper keys for config file and environment variable support
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" {
			v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		}
	})

	budgetCmd.Flags().IntSliceVar(&budgets, "budgets", []int{10, 100, 1000}, "MCTS iteration budgets")
	budgetCmd.Flags().StringVar(&baseline, "baseline", config.AgentRandomShortestPath, "Baseline agent kind")

	rootCmd.AddCommand(simulateCmd, tournamentCmd, budgetCmd, serveCmd, playCmd)
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func save(name string, results []experiments.Result) error {
	dir, err := experiments.Save(cfg.OutputDir, name, results)
	if err != nil {
		return err
	}
	log.Info().Msgf("stored records in %s", dir)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
