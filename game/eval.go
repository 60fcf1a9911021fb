package game

// EvaluateDistance scores the race to the goal rows: the shorter the current
// player's remaining path relative to the opponent's, the closer to 1.
func EvaluateDistance(q *Quoridor) float64 {
	if q.terminated {
		return 1 // the mover stays current and has won
	}
	mine := q.Distance(q.CurrentPlayer().ID)
	theirs := q.Distance(q.WaitingPlayer().ID)
	return normalize(float64(theirs), float64(mine))
}

// EvaluateDistanceWalls weighs remaining walls alongside the path race.
func EvaluateDistanceWalls(q *Quoridor) float64 {
	if q.terminated {
		return 1
	}
	walls := normalize(float64(q.CurrentPlayer().Walls), float64(q.WaitingPlayer().Walls))
	return (3*EvaluateDistance(q) + walls) / 4
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
