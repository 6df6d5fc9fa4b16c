package maze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcadia-games/dicewalk/internal/game/maze"
)

// TestOpposite verifies the cardinal opposite pairs and that composite
// masks are rejected.
func TestOpposite(t *testing.T) {
	assert.Equal(t, maze.South, maze.North.Opposite())
	assert.Equal(t, maze.North, maze.South.Opposite())
	assert.Equal(t, maze.West, maze.East.Opposite())
	assert.Equal(t, maze.East, maze.West.Opposite())
	assert.Panics(t, func() { maze.Longitudinal.Opposite() },
		"composite masks have no opposite")
	assert.Panics(t, func() { maze.Direction(0).Opposite() })
}

// TestIsCardinal verifies single-bit detection.
func TestIsCardinal(t *testing.T) {
	for _, d := range maze.Cardinals {
		assert.True(t, d.IsCardinal(), "%v must be cardinal", d)
	}
	assert.False(t, maze.Latitudinal.IsCardinal())
	assert.False(t, maze.Omnidirectional.IsCardinal())
	assert.False(t, maze.Direction(0).IsCardinal())
}

// TestDirection_Has verifies bit containment on composite masks.
func TestDirection_Has(t *testing.T) {
	exits := maze.North | maze.East
	assert.True(t, exits.Has(maze.North))
	assert.True(t, exits.Has(maze.East))
	assert.False(t, exits.Has(maze.South))
	assert.True(t, maze.Omnidirectional.Has(maze.Longitudinal))
}

// TestDirection_String verifies display names for cardinals and masks.
func TestDirection_String(t *testing.T) {
	assert.Equal(t, "north", maze.North.String())
	assert.Equal(t, "none", maze.Direction(0).String())
	assert.Equal(t, "north|south", maze.Longitudinal.String())
	assert.Equal(t, "north|east|south|west", maze.Omnidirectional.String())
}

// TestStep verifies in-bounds movement and edge rejection. North increases
// Y; stepping off the grid fails without wraparound.
func TestStep(t *testing.T) {
	c := maze.Coordinates{X: 1, Y: 1}

	next, ok := c.Step(maze.North, 3, 3)
	assert.True(t, ok)
	assert.Equal(t, maze.Coordinates{X: 1, Y: 2}, next)

	next, ok = c.Step(maze.South, 3, 3)
	assert.True(t, ok)
	assert.Equal(t, maze.Coordinates{X: 1, Y: 0}, next)

	next, ok = c.Step(maze.East, 3, 3)
	assert.True(t, ok)
	assert.Equal(t, maze.Coordinates{X: 2, Y: 1}, next)

	next, ok = c.Step(maze.West, 3, 3)
	assert.True(t, ok)
	assert.Equal(t, maze.Coordinates{X: 0, Y: 1}, next)

	edge := maze.Coordinates{X: 0, Y: 2}
	_, ok = edge.Step(maze.North, 3, 3)
	assert.False(t, ok, "north off the top edge must fail")
	_, ok = edge.Step(maze.West, 3, 3)
	assert.False(t, ok, "west off the left edge must fail")

	assert.Panics(t, func() { c.Step(maze.Longitudinal, 3, 3) },
		"a step requires a single cardinal bit")
}

// TestManhattanDistance verifies the L1 metric.
func TestManhattanDistance(t *testing.T) {
	a := maze.Coordinates{X: 2, Y: 3}
	b := maze.Coordinates{X: 5, Y: 1}
	assert.Equal(t, 5, a.ManhattanDistance(b))
	assert.Equal(t, 5, b.ManhattanDistance(a))
	assert.Zero(t, a.ManhattanDistance(a))
}
