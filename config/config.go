package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"quoridor/meta"
)

const EnvPrefix = "QUORIDOR"

// Agent kinds accepted by agent.NewAgent.
const (
	AgentRandom             = "random"
	AgentShortestPath       = "shortest-path"
	AgentRandomShortestPath = "random-shortest-path"
	AgentMCTS               = "mcts"
	AgentHuman              = "human"
	AgentRemote             = "remote"
)

// Rollout policies for the MCTS agent.
const (
	RolloutRandom       = "random"
	RolloutShortestPath = "shortest-path"
)

// Config holds all engine configuration
type Config struct {
	// Search
	Iterations  int           `mapstructure:"iterations"`
	Duration    time.Duration `mapstructure:"duration"`
	Exploration float64       `mapstructure:"exploration"`
	Cutoff      int           `mapstructure:"cutoff"`
	Rollout     string        `mapstructure:"rollout"`
	ReuseTree   bool          `mapstructure:"reuse_tree"`
	Seed        uint64        `mapstructure:"seed"` // 0 seeds from the clock

	// Experiments
	Games       int    `mapstructure:"games"`
	Concurrency int    `mapstructure:"concurrency"`
	MaxTurns    int    `mapstructure:"max_turns"`
	OutputDir   string `mapstructure:"output_dir"`
	Player1     string `mapstructure:"player1"`
	Player2     string `mapstructure:"player2"`

	// Agent server
	Addr   string `mapstructure:"addr"`
	Remote string `mapstructure:"remote"` // url of the server a remote agent plays through

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Iterations:  meta.ITERATIONS,
		Exploration: 1.414,
		Cutoff:      meta.WITH_CUTOFF,
		Rollout:     RolloutRandom,
		Games:       meta.EPISODES,
		Concurrency: meta.GO_ROUTINES,
		MaxTurns:    meta.MAX_TURNS,
		OutputDir:   "results",
		Player1:     AgentRandomShortestPath,
		Player2:     AgentRandom,
		Addr:        ":8080",
		LogLevel:    "info",
	}
}

// Load layers an optional config file and QUORIDOR_* environment variables
// over the defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	cfg := Default()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("iterations", cfg.Iterations)
	v.SetDefault("duration", cfg.Duration)
	v.SetDefault("exploration", cfg.Exploration)
	v.SetDefault("cutoff", cfg.Cutoff)
	v.SetDefault("rollout", cfg.Rollout)
	v.SetDefault("reuse_tree", cfg.ReuseTree)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("games", cfg.Games)
	v.SetDefault("concurrency", cfg.Concurrency)
	v.SetDefault("max_turns", cfg.MaxTurns)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("player1", cfg.Player1)
	v.SetDefault("player2", cfg.Player2)
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("remote", cfg.Remote)
	v.SetDefault("log_level", cfg.LogLevel)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Iterations <= 0 && c.Duration <= 0 {
		return errors.New("iterations or duration must be positive")
	}
	if c.Exploration <= 0 {
		return errors.New("exploration must be positive")
	}
	if c.Cutoff < 0 {
		return errors.New("cutoff must not be negative")
	}
	if c.Rollout != RolloutRandom && c.Rollout != RolloutShortestPath {
		return fmt.Errorf("unknown rollout %q", c.Rollout)
	}
	if c.Games <= 0 {
		return errors.New("games must be positive")
	}
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be positive")
	}
	if c.MaxTurns < 0 {
		return errors.New("max_turns must not be negative")
	}
	for _, kind := range []string{c.Player1, c.Player2} {
		if !ValidAgent(kind) {
			return fmt.Errorf("unknown agent %q", kind)
		}
		if kind == AgentRemote && c.Remote == "" {
			return errors.New("remote agents need remote to be set")
		}
	}
	return nil
}

func ValidAgent(kind string) bool {
	switch kind {
	case AgentRandom, AgentShortestPath, AgentRandomShortestPath, AgentMCTS, AgentHuman, AgentRemote:
		return true
	}
	return false
}
