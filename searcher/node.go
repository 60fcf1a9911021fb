package searcher

const rootIndex = 0

// node is one position in the search tree. Parent and children are indices
// into the owning tree's arena.
type node struct {
	token    string
	move     string // move that led here from the parent, "" at the root
	parent   int    // -1 at the root
	children []int
	rewards  float64 // from the perspective of the player who moved into this node
	visits   int
	terminal bool
}

type tree struct {
	nodes []node
}

func newTree(token string, terminal bool) *tree {
	return &tree{nodes: []node{{token: token, parent: -1, terminal: terminal}}}
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) add(parent int, move, token string, terminal bool) int {
	i := len(t.nodes)
	t.nodes = append(t.nodes, node{
		token:    token,
		move:     move,
		parent:   parent,
		terminal: terminal,
	})
	t.nodes[parent].children = append(t.nodes[parent].children, i)
	return i
}

// child finds the child reached by move. Children are unique per move label.
func (t *tree) child(parent int, move string) (int, bool) {
	for _, c := range t.nodes[parent].children {
		if t.nodes[c].move == move {
			return c, true
		}
	}
	return -1, false
}

// backup walks from i to the root, flipping the reward's sign at each level.
func (t *tree) backup(i int, reward float64) {
	for i >= 0 {
		n := &t.nodes[i]
		n.visits++
		n.rewards += reward
		reward = -reward
		i = n.parent
	}
}

// policy maps each child move to its visit count.
func (t *tree) policy(parent int) map[string]float64 {
	children := t.nodes[parent].children
	p := make(map[string]float64, len(children))
	for _, ch := range children {
		p[t.nodes[ch].move] = float64(t.nodes[ch].visits)
	}
	return p
}

// find looks for a node holding token within maxDepth plies of the root.
func (t *tree) find(token string, maxDepth int) (int, bool) {
	frontier := []int{rootIndex}
	for depth := 0; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []int
		for _, i := range frontier {
			if t.nodes[i].token == token {
				return i, true
			}
			next = append(next, t.nodes[i].children...)
		}
		frontier = next
	}
	return -1, false
}

// subtree copies the nodes reachable from i into a fresh arena rooted at i.
// Nothing outside that subtree survives.
func (t *tree) subtree(i int) *tree {
	out := &tree{nodes: make([]node, 0, 64)}
	remap := map[int]int{}
	queue := []int{i}
	for len(queue) > 0 {
		old := queue[0]
		queue = queue[1:]
		n := t.nodes[old]
		parent := -1
		if old != i {
			parent = remap[n.parent]
		}
		remap[old] = len(out.nodes)
		out.nodes = append(out.nodes, node{
			token:    n.token,
			move:     n.move,
			parent:   parent,
			rewards:  n.rewards,
			visits:   n.visits,
			terminal: n.terminal,
		})
		if parent >= 0 {
			out.nodes[parent].children = append(out.nodes[parent].children, remap[old])
		}
		queue = append(queue, n.children...)
	}
	out.nodes[rootIndex].move = ""
	return out
}
