package game

// EvaluateTerritory tallies cells and points per participant to produce a relative score
// between -1 and 1 from the current participant's perspective against its strongest rival.
func EvaluateTerritory(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Current()
	if current.IsNone() {
		return 0
	}

	cells := make(map[Participant]float64)
	points := make(map[Participant]float64)
	for i, owner := range gs.Board.Owners {
		if gs.Board.Points[i] > 0 {
			cells[owner]++
			points[owner] += float64(gs.Board.Points[i])
		}
	}

	rival := None
	for _, p := range gs.Roster {
		if p != current && (rival.IsNone() || cells[p] > cells[rival]) {
			rival = p
		}
	}

	cellScore := normalize(cells[current], cells[rival])
	pointScore := normalize(points[current], points[rival])

	return (cellScore + pointScore) / 2.0
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
