package game

import (
	"slices"

	"quoridor/utils"
)

// Board maps every cell label to the ordered list of cells a pawn can step to
// from it, ignoring pawns. Walls remove entries.
type Board map[string][]string

// NewBoard returns the open 9x9 grid.
func NewBoard() Board {
	b := make(Board, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			neighbors := make([]string, 0, 4)
			// up, down, left, right
			for _, d := range [4][2]int{{0, 1}, {0, -1}, {-1, 0}, {1, 0}} {
				if OnBoard(col+d[0], row+d[1]) {
					neighbors = append(neighbors, Cell(col+d[0], row+d[1]))
				}
			}
			b[Cell(col, row)] = neighbors
		}
	}
	return b
}

// Clone deep-copies the adjacency lists.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for cell, neighbors := range b {
		c[cell] = slices.Clone(neighbors)
	}
	return c
}

// Connected reports whether the two cells share an open edge.
func (b Board) Connected(a, c string) bool {
	return utils.FindIndex(b[a], c) >= 0
}

// removeEdge cuts the edge in both directions.
func (b Board) removeEdge(a, c string) {
	b[a] = utils.Remove(b[a], c)
	b[c] = utils.Remove(b[c], a)
}

// Cell formats zero-based column and row as a label such as "e1".
func Cell(col, row int) string {
	return string([]byte{byte('a' + col), byte('1' + row)})
}

// Coords parses a cell label into zero-based column and row.
func Coords(cell string) (col, row int) {
	return int(cell[0] - 'a'), int(cell[1] - '1')
}

// Row returns the one-based row number of a cell label.
func Row(cell string) int {
	return int(cell[1]-'1') + 1
}

func OnBoard(col, row int) bool {
	return col >= 0 && col < Size && row >= 0 && row < Size
}

// Behind returns the cell on the far side of over when stepping from from,
// along the same line, and whether it lies on the board.
func Behind(from, over string) (string, bool) {
	fcol, frow := Coords(from)
	ocol, orow := Coords(over)
	col, row := 2*ocol-fcol, 2*orow-frow
	if !OnBoard(col, row) {
		return "", false
	}
	return Cell(col, row), true
}

type edge [2]string

// wallEdges returns the two edges a wall label blocks.
func wallEdges(col, row int, orientation byte) [2]edge {
	if orientation == 'h' {
		return [2]edge{
			{Cell(col, row), Cell(col, row+1)},
			{Cell(col+1, row), Cell(col+1, row+1)},
		}
	}
	return [2]edge{
		{Cell(col, row), Cell(col+1, row)},
		{Cell(col, row+1), Cell(col+1, row+1)},
	}
}

// distance is the number of steps from cell to the goal row, ignoring pawns
// and treating blocked edges as cut. It returns -1 if the goal is unreachable.
func (b Board) distance(from string, goal int, blocked [2]edge) int {
	if Row(from) == goal {
		return 0
	}
	isBlocked := func(a, c string) bool {
		for _, e := range blocked {
			if (e[0] == a && e[1] == c) || (e[0] == c && e[1] == a) {
				return true
			}
		}
		return false
	}

	depth := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, next := range b[cell] {
			if _, seen := depth[next]; seen || isBlocked(cell, next) {
				continue
			}
			depth[next] = depth[cell] + 1
			if Row(next) == goal {
				return depth[next]
			}
			queue = append(queue, next)
		}
	}
	return -1
}
