package maze

import "github.com/arcadia-games/dicewalk/internal/game/item"

// CellKind discriminates the grid cell variants.
type CellKind uint8

// Grid cell variants. Exactly one cell per generated map is KindGoal.
const (
	// KindWall is solid rock: no exits, never holds an item.
	KindWall CellKind = iota
	// KindPath is a carved corridor cell with an exit mask and an
	// optional item waiting to be picked up.
	KindPath
	// KindGoal is the single goal cell every player races toward.
	KindGoal
)

// GridCell is one cell of the map grid.
//
// Invariant: after generation completes, every set exit bit on a Path or
// Goal cell points at a neighboring Path or Goal cell, never at a Wall or
// off the grid. Wall cells carry no exits and no item.
type GridCell struct {
	Kind  CellKind
	Exits Direction
	Item  *item.Item
}

// IsWalkable reports whether a player may stand on the cell.
func (c *GridCell) IsWalkable() bool {
	return c.Kind == KindPath || c.Kind == KindGoal
}
