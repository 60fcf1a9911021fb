// meta/meta.go
package meta

// MAX_TURNS defines the number of plies after which a game is truncated.
const MAX_TURNS = 300

// ITERATIONS defines the default number of MCTS simulations per move.
const ITERATIONS = 1000

// WITH_CUTOFF defines the default playout depth for MCTS, 0 plays to the end.
const WITH_CUTOFF = 0

// GO_ROUTINES defines the number of games run in parallel by experiments.
const GO_ROUTINES = 8

// EPISODES defines the number of games per simulation.
const EPISODES = 3
