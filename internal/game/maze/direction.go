// Package maze provides the procedurally generated game map: a grid of
// wall, path, and goal cells connected by carved corridors, with items
// distributed along secondary connections.
package maze

import (
	"fmt"
	"strings"
)

// Direction is a bitmask over the four cardinal directions. A single
// cardinal bit denotes one step of movement; a combination denotes a
// cell's exit set (e.g. North|South for a straight corridor, all four for
// a crossroads).
type Direction uint8

// Cardinal direction bits and the composite masks built from them.
const (
	North Direction = 1 << iota
	South
	East
	West

	Longitudinal = North | South
	Latitudinal  = East | West

	Omnidirectional = Longitudinal | Latitudinal
)

// Cardinals lists the four cardinal directions in the fixed enumeration
// order used for navigation tie-breaking.
var Cardinals = [4]Direction{North, East, South, West}

// IsCardinal reports whether d is exactly one of the four cardinal bits.
func (d Direction) IsCardinal() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// Has reports whether every bit of dir is set in d.
func (d Direction) Has(dir Direction) bool {
	return d&dir == dir
}

// Opposite returns the opposite cardinal direction.
//
// Precondition: d must be a single cardinal bit; panics otherwise, since a
// composite mask has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	panic(fmt.Sprintf("maze: Opposite: %#x is not a cardinal direction", uint8(d)))
}

// String returns the lowercase name of a cardinal direction, or the names
// of the set bits joined with "|" for a composite mask.
func (d Direction) String() string {
	names := map[Direction]string{
		North: "north",
		South: "south",
		East:  "east",
		West:  "west",
	}
	if name, ok := names[d]; ok {
		return name
	}
	if d == 0 {
		return "none"
	}
	var parts []string
	for _, c := range Cardinals {
		if d.Has(c) {
			parts = append(parts, names[c])
		}
	}
	return strings.Join(parts, "|")
}

// Coordinates is a pair of non-negative grid indices (column, row).
// North increases Y, East increases X.
type Coordinates struct {
	X int
	Y int
}

// Step returns the coordinate one cell away in the given direction and
// true, or the receiver unchanged and false when the step would leave a
// width x height grid.
//
// Precondition: dir must be a single cardinal bit; panics otherwise.
func (c Coordinates) Step(dir Direction, width, height int) (Coordinates, bool) {
	switch dir {
	case North:
		if c.Y >= height-1 {
			return c, false
		}
		return Coordinates{X: c.X, Y: c.Y + 1}, true
	case South:
		if c.Y == 0 {
			return c, false
		}
		return Coordinates{X: c.X, Y: c.Y - 1}, true
	case East:
		if c.X >= width-1 {
			return c, false
		}
		return Coordinates{X: c.X + 1, Y: c.Y}, true
	case West:
		if c.X == 0 {
			return c, false
		}
		return Coordinates{X: c.X - 1, Y: c.Y}, true
	}
	panic(fmt.Sprintf("maze: Step: %#x is not a cardinal direction", uint8(dir)))
}

// ManhattanDistance returns the L1 distance between c and other.
func (c Coordinates) ManhattanDistance(other Coordinates) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
