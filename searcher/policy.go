package searcher

import "math"

// uct scores the children of one parent with N visits.
type uct struct {
	numerator float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: c * c * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + c*sqrt(ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// pickChild selects an unvisited child if there is one, otherwise the child
// with the highest UCT score. Ties go to the earlier child.
func (t *tree) pickChild(parent int, c float64) int {
	children := t.nodes[parent].children
	if len(children) == 0 {
		panic("node has no children")
	}
	for _, ch := range children {
		if t.nodes[ch].visits == 0 {
			return ch
		}
	}

	policy := newUCT(c, float64(t.nodes[parent].visits))
	best := -1
	maxScore := math.Inf(-1)
	for _, ch := range children {
		n := t.nodes[ch]
		if score := policy.evaluate(n.rewards, float64(n.visits)); score > maxScore {
			maxScore = score
			best = ch
		}
	}
	return best
}

// bestMove returns the move of the most visited child. Ties go to the earlier
// child.
func (t *tree) bestMove(parent int) (string, bool) {
	children := t.nodes[parent].children
	if len(children) == 0 {
		return "", false
	}
	best := children[0]
	for _, ch := range children[1:] {
		if t.nodes[ch].visits > t.nodes[best].visits {
			best = ch
		}
	}
	return t.nodes[best].move, true
}
