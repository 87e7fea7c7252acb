package searcher

import (
	"math"
	"sync"

	"chainclash/game"
)

type decision struct {
	sync.RWMutex
	parent   *decision
	mover    string // Player who chose the move into this node, credited on backup
	moves    []game.Move
	children []Node
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, mover string, state game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:   parent,
		mover:    mover,
		moves:    moves,
		children: make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		childState := state.Play(move)
		child := newDecision(d, state.Player(), childState)
		d.children = append(d.children, child)
		child.ApplyLoss()
		return child, childState, true
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.ApplyLoss()
	return child, state.Play(d.moves[ith]), false
}

func (d *decision) pickChild() int {
	// Concurrent expansions can outrun the backups that count parent visits
	normalizer := C_SQUARED * math.Log(math.Max(d.visits, 1))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.Score(normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// ApplyLoss counts a pending visit as a loss so concurrent descents spread out.
func (d *decision) ApplyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += LOSS
	d.visits++
}

func (d *decision) Score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

func (d *decision) Backup(reward func(string) float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.rewards -= LOSS
		d.visits--
	}

	d.rewards += reward(d.mover)
	d.visits++

	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy returns each explored move's share of the children's visits.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	total := 0.0
	for _, child := range d.children {
		total += child.Visits()
	}
	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		if total > 0 {
			policy[d.moves[i]] = child.Visits() / total
		}
	}
	return policy
}

// bestMove returns the most visited move, the first one on ties.
func (d *decision) bestMove() (game.Move, bool) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return game.Move{}, false
	}
	best := 0
	maxVisits := d.children[0].Visits()
	for i, child := range d.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			best = i + 1
		}
	}
	return d.moves[best], true
}
