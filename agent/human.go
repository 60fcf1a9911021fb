package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"quoridor/codec"
	"quoridor/env"
	"quoridor/game"
)

// HumanAgent reads structured moves such as "e2" or "d4h" from a terminal,
// prompting again until the move is legal.
type HumanAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanAgent(in io.Reader, out io.Writer) *HumanAgent {
	return &HumanAgent{in: bufio.NewScanner(in), out: out}
}

func (a *HumanAgent) Act(ctx context.Context, obs env.Observation, _ float64, info env.Info) (int, error) {
	q, err := game.FromPGN(info.PGN)
	if err != nil {
		return 0, err
	}
	current, waiting := q.CurrentPlayer(), q.WaitingPlayer()
	fmt.Fprintf(a.out, "Turn %d:\n", info.Turn)
	fmt.Fprintf(a.out, "Current player position: %s\n", current.Pos)
	fmt.Fprintf(a.out, "Current opponent position: %s\n", waiting.Pos)
	fmt.Fprintf(a.out, "Current player walls: %d\n", current.Walls)
	fmt.Fprintf(a.out, "Current opponent walls: %d\n", waiting.Walls)
	fmt.Fprintf(a.out, "Placed walls: %v\n", q.PlacedWalls())
	fmt.Fprintf(a.out, "Your legal moves: %v\n", q.LegalMoves())

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintln(a.out, "Enter your move:")
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		move := strings.TrimSpace(a.in.Text())
		action, err := codec.ToDiscrete(move)
		if err == nil && !obs.ActionMask[action] {
			err = fmt.Errorf("%w: %s", ErrIllegalAction, move)
		}
		if err != nil {
			fmt.Fprintf(a.out, "Invalid move: %v\n", err)
			continue
		}
		return action, nil
	}
}
