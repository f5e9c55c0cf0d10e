package domain

// PositionStep is the gap left between a task and a new neighbour placed
// outside the current range of positions.
const PositionStep = 1.0

// PositionAtEnd returns the position for a task appended after every existing
// task. maxPosition is ignored when hasTasks is false, and the first task of a
// user gets PositionStep.
func PositionAtEnd(maxPosition float64, hasTasks bool) float64 {
	if !hasTasks {
		return PositionStep
	}
	return maxPosition + PositionStep
}

// PositionAtTop returns the position for a task moved before the current first
// task, or 0 when the list is empty. Repeated moves to the top keep decreasing
// the minimum; positions are never renormalized here.
func PositionAtTop(firstPosition float64, hasTasks bool) float64 {
	if !hasTasks {
		return 0
	}
	return firstPosition - PositionStep
}

// PositionAfter returns the position for a task placed immediately after the
// anchor: the midpoint between the anchor and its successor, or one step past
// the anchor when it is last.
//
// Midpoints lose precision after many inserts into the same gap. Renormalizing
// the list restores evenly spaced keys.
func PositionAfter(anchorPosition, nextPosition float64, hasNext bool) float64 {
	if !hasNext {
		return anchorPosition + PositionStep
	}
	return (anchorPosition + nextPosition) / 2
}

// RenormalizedPositions returns evenly spaced positions 1, 2, ..., n.
func RenormalizedPositions(n int) []float64 {
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = float64(i+1) * PositionStep
	}
	return positions
}
