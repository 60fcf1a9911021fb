package policy

import (
	"errors"

	"golang.org/x/exp/rand"
)

var ErrNoLegalAction = errors.New("action mask has no legal action")

// RandomPolicy picks uniformly among the legal entries of an action mask.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Action(mask []bool) (int, error) {
	legal := make([]int, 0, len(mask))
	for i, ok := range mask {
		if ok {
			legal = append(legal, i)
		}
	}
	if len(legal) == 0 {
		return 0, ErrNoLegalAction
	}
	return legal[p.rng.Intn(len(legal))], nil
}
