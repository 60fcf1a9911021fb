// Package codec maps structured Quoridor moves ("e2", "c3h", "f7v") onto the
// fixed Discrete(209) action space shared by agents and environments.
package codec

import (
	"errors"
	"fmt"
)

// Action space layout
const (
	BoardSize = 9
	WallSize  = BoardSize - 1

	PawnOffset       = 0
	HorizontalOffset = PawnOffset + BoardSize*BoardSize      // 81
	VerticalOffset   = HorizontalOffset + WallSize*WallSize // 145
	ActionSpace      = VerticalOffset + WallSize*WallSize   // 209
)

var ErrInvalidMoveFormat = errors.New("invalid move format")

// ToDiscrete converts a structured move to its index in [0, ActionSpace).
func ToDiscrete(move string) (int, error) {
	switch len(move) {
	case 2:
		col, row, err := parseCell(move, BoardSize)
		if err != nil {
			return 0, err
		}
		return PawnOffset + col + BoardSize*row, nil
	case 3:
		col, row, err := parseCell(move[:2], WallSize)
		if err != nil {
			return 0, err
		}
		switch move[2] {
		case 'h':
			return HorizontalOffset + col + WallSize*row, nil
		case 'v':
			return VerticalOffset + col + WallSize*row, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, move)
}

// ToStructured converts an action index back to its structured move.
func ToStructured(action int) (string, error) {
	switch {
	case action < PawnOffset || action >= ActionSpace:
		return "", fmt.Errorf("%w: action %d out of range [0, %d)", ErrInvalidMoveFormat, action, ActionSpace)
	case action < HorizontalOffset:
		i := action - PawnOffset
		return cell(i%BoardSize, i/BoardSize), nil
	case action < VerticalOffset:
		i := action - HorizontalOffset
		return cell(i%WallSize, i/WallSize) + "h", nil
	default:
		i := action - VerticalOffset
		return cell(i%WallSize, i/WallSize) + "v", nil
	}
}

// MustToDiscrete is ToDiscrete for moves produced by the rules engine itself.
func MustToDiscrete(move string) int {
	action, err := ToDiscrete(move)
	if err != nil {
		panic(err)
	}
	return action
}

// IsWall reports whether the action index lies in one of the wall bands.
func IsWall(action int) bool {
	return action >= HorizontalOffset && action < ActionSpace
}

// parseCell returns zero-based column and row of a two character cell label
// whose coordinates must both lie in [1, size].
func parseCell(label string, size int) (int, int, error) {
	col := int(label[0]) - 'a'
	row := int(label[1]) - '1'
	if col < 0 || col >= size || row < 0 || row >= size {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, label)
	}
	return col, row, nil
}

func cell(col, row int) string {
	return string([]byte{byte('a' + col), byte('1' + row)})
}
