// Package npc provides the decision strategies for automated players:
// which direction to move and which inventory item to use.
package npc

import (
	"fmt"

	"github.com/arcadia-games/dicewalk/internal/game/maze"
	"github.com/arcadia-games/dicewalk/internal/game/player"
)

// MoveAlgorithm selects the movement strategy for an automated player.
type MoveAlgorithm int

// Registered movement strategies.
const (
	// ShortestPath always steps toward the neighbor closest to the goal.
	ShortestPath MoveAlgorithm = iota
)

// String returns the display name of the algorithm.
func (a MoveAlgorithm) String() string {
	switch a {
	case ShortestPath:
		return "Shortest Path"
	}
	return fmt.Sprintf("MoveAlgorithm(%d)", int(a))
}

// ComputeMove returns the next step for an automated player standing at
// start on m, or 0 when no move improves on staying put (standing on the
// goal).
//
// Precondition: start must be a walkable cell; navigating from inside a
// wall is an internal-consistency failure and panics.
func (a MoveAlgorithm) ComputeMove(start maze.Coordinates, m *maze.Map) maze.Direction {
	switch a {
	case ShortestPath:
		return shortestPath(start, m)
	}
	panic(fmt.Sprintf("npc: ComputeMove: unknown algorithm %d", int(a)))
}

// shortestPath enumerates the cell's exits in the fixed order North, East,
// South, West and picks the direction whose neighbor has the smallest
// precomputed distance to the goal; the first direction found wins ties.
func shortestPath(start maze.Coordinates, m *maze.Map) maze.Direction {
	cell := m.CellAt(start)
	if cell.Kind == maze.KindWall {
		panic(fmt.Sprintf("npc: shortestPath: cannot navigate from inside a wall at (%d, %d)", start.X, start.Y))
	}
	if cell.Kind == maze.KindGoal {
		return 0
	}

	best := maze.Direction(0)
	minDistance := int(^uint(0) >> 1)
	for _, dir := range maze.Cardinals {
		if !cell.Exits.Has(dir) {
			continue
		}
		next, ok := start.Step(dir, m.Width(), m.Height())
		if !ok {
			panic(fmt.Sprintf("npc: shortestPath: exit %v at (%d, %d) points off the grid", dir, start.X, start.Y))
		}
		distance, reachable := m.DistanceToGoal(next)
		if !reachable {
			panic(fmt.Sprintf("npc: shortestPath: neighbor (%d, %d) of a connected cell has no goal distance", next.X, next.Y))
		}
		if distance < minDistance {
			minDistance = distance
			best = dir
		}
	}
	return best
}

// ItemAlgorithm selects the item-use strategy for an automated player.
type ItemAlgorithm int

// Registered item strategies.
const (
	// HighestGain uses the inventory item with the largest positive
	// expected-roll improvement for the user's own die.
	HighestGain ItemAlgorithm = iota
)

// String returns the display name of the algorithm.
func (a ItemAlgorithm) String() string {
	switch a {
	case HighestGain:
		return "Highest gain"
	}
	return fmt.Sprintf("ItemAlgorithm(%d)", int(a))
}

// ChooseItem returns the inventory index the automated player should use
// and true, or false when no item offers a positive gain.
func (a ItemAlgorithm) ChooseItem(user *player.Player) (int, bool) {
	switch a {
	case HighestGain:
		return highestSelfBenefit(user)
	}
	panic(fmt.Sprintf("npc: ChooseItem: unknown algorithm %d", int(a)))
}

// highestSelfBenefit ranks the user's items by the expected face-value
// gain of applying them to the user's own die.
func highestSelfBenefit(user *player.Player) (int, bool) {
	bestIndex := -1
	maxGain := 0.0
	die := user.Die()
	for i, it := range user.Items() {
		if gain := it.ExpectedGain(die); gain > maxGain {
			maxGain = gain
			bestIndex = i
		}
	}
	if bestIndex < 0 {
		return 0, false
	}
	return bestIndex, true
}
