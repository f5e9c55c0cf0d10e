package domain

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionAtEnd(t *testing.T) {
	assert.Equal(t, 1.0, PositionAtEnd(0, false), "first task starts at 1.0")
	assert.Equal(t, 4.0, PositionAtEnd(3, true))
	assert.Equal(t, 0.5, PositionAtEnd(-0.5, true))
}

func TestPositionAtTop(t *testing.T) {
	assert.Equal(t, 0.0, PositionAtTop(0, false))
	assert.Equal(t, 0.0, PositionAtTop(1, true))
	assert.Equal(t, -3.0, PositionAtTop(-2, true))
}

func TestPositionAfter(t *testing.T) {
	assert.Equal(t, 1.5, PositionAfter(1, 2, true))
	assert.Equal(t, 3.0, PositionAfter(2, 0, false))
	assert.Equal(t, -0.75, PositionAfter(-1, -0.5, true))
}

func TestRenormalizedPositions(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, RenormalizedPositions(3))
	assert.Empty(t, RenormalizedPositions(0))
}

// Inserting between neighbours must always land strictly inside the gap while
// the gap is representable.
func TestPositionAfterStaysBetweenNeighbours(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		a := rng.Float64()*200 - 100
		b := a + rng.Float64()*10 + 1e-6
		p := PositionAfter(a, b, true)

		assert.Greater(t, p, a)
		assert.Less(t, p, b)
	}
}

func TestRepeatedTopMovesKeepDecreasing(t *testing.T) {
	positions := []float64{1, 2, 3}

	for i := 0; i < 50; i++ {
		sort.Float64s(positions)
		top := PositionAtTop(positions[0], true)
		assert.Less(t, top, positions[0])
		positions[len(positions)-1] = top
	}
}
