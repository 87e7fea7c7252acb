package game

// Episode is one chain reaction, from the triggering cell to an empty queue.
// Each Step detonates exactly one queued cell so callers can pace and observe them.
type Episode struct {
	board      *Board
	owner      Participant
	threshold  int
	queue      []Cell
	enqueued   map[Cell]bool // A cell joins the queue at most once per episode
	onDetonate func(Cell)
	steps      int
	affected   int
}

// NewEpisode seeds the queue with the cell that reached the threshold.
func NewEpisode(board *Board, trigger Cell, owner Participant, threshold int) *Episode {
	return &Episode{
		board:     board,
		owner:     owner,
		threshold: threshold,
		queue:     []Cell{trigger},
		enqueued:  map[Cell]bool{trigger: true},
	}
}

func (e *Episode) Owner() Participant {
	return e.owner
}

// Done reports whether the queue is drained.
func (e *Episode) Done() bool {
	return len(e.queue) == 0
}

// Steps counts detonations processed so far.
func (e *Episode) Steps() int {
	return e.steps
}

// Affected counts neighbour hits so far, a cell hit twice counts twice.
func (e *Episode) Affected() int {
	return e.affected
}

// Pending returns a copy of the cells still waiting to detonate.
func (e *Episode) Pending() []Cell {
	pending := make([]Cell, len(e.queue))
	copy(pending, e.queue)
	return pending
}

// Step detonates the head of the queue and returns every changed cell,
// the detonated cell first and then its neighbours in Directions order.
func (e *Episode) Step() []Cell {
	if e.Done() {
		return nil
	}
	current := e.queue[0]
	e.queue = e.queue[1:]
	e.steps++

	e.board.Clear(current)
	if e.onDetonate != nil {
		e.onDetonate(current)
	}
	changed := []Cell{current}

	for _, n := range e.board.Neighbors(current) {
		e.affected++
		// Occupied neighbours are captured whatever their count, empty ones are claimed
		e.board.Set(n, e.board.PointsAt(n)+1, e.owner)
		changed = append(changed, n)

		if e.board.PointsAt(n) >= e.threshold && !e.enqueued[n] {
			e.queue = append(e.queue, n)
			e.enqueued[n] = true
		}
	}
	return changed
}

// Run drains the episode and returns the number of detonations.
func (e *Episode) Run() int {
	for !e.Done() {
		e.Step()
	}
	return e.steps
}
