package maze

import (
	"fmt"
	"math"

	"github.com/arcadia-games/dicewalk/internal/game/dice"
	"github.com/arcadia-games/dicewalk/internal/game/item"
)

// GenerateConfig holds the caller-configured map generation parameters.
// Range validation lives in the config layer; Generate only rejects values
// that make generation impossible.
type GenerateConfig struct {
	Width          int
	Height         int
	Players        int
	ItemDensity    float64
	TravelDistance int
}

// Map is an owned 2D grid of cells, the goal coordinates, and the ordered
// per-player starting coordinates. It is built once per game in a single
// generation pass and mutated afterwards only to remove picked-up items.
//
// Invariant: exactly one cell is the goal; every start is connected to the
// goal by carved path cells; no exit bit on any cell points at a wall.
type Map struct {
	grid   [][]GridCell
	goal   Coordinates
	starts []Coordinates
	dist   [][]int
}

// maxPlacementAttempts bounds the retry loops that sample random cells
// under exclusion constraints. Valid choices always exist for legal
// configurations, so exhausting this is an internal-consistency failure.
const maxPlacementAttempts = 10000

// Generate builds a random map per the staged algorithm: an all-wall grid,
// a random goal, one distinct start per player at exactly TravelDistance
// from the goal connected by an L-shaped corridor, and item pairs on secondary
// corridors until round(width*height*ItemDensity) item cells are placed.
//
// Precondition: gen and src must be non-nil.
// Postcondition: the returned map satisfies the Map invariants and carries
// a distance-to-goal field for navigation queries.
func Generate(cfg GenerateConfig, gen *item.Generator, src dice.Source) (*Map, error) {
	if cfg.Width < 2 || cfg.Height < 2 {
		return nil, fmt.Errorf("maze: Generate: grid %dx%d is too small", cfg.Width, cfg.Height)
	}
	if cfg.Players < 1 {
		return nil, fmt.Errorf("maze: Generate: need at least one player, got %d", cfg.Players)
	}
	if cfg.TravelDistance < 1 || cfg.TravelDistance > cfg.Width-1+cfg.Height-1 {
		return nil, fmt.Errorf("maze: Generate: travel distance %d does not fit a %dx%d grid",
			cfg.TravelDistance, cfg.Width, cfg.Height)
	}
	if cfg.ItemDensity < 0 || cfg.ItemDensity > 1 {
		return nil, fmt.Errorf("maze: Generate: item density %v outside [0, 1]", cfg.ItemDensity)
	}

	grid := make([][]GridCell, cfg.Height)
	for y := range grid {
		grid[y] = make([]GridCell, cfg.Width)
	}
	m := &Map{grid: grid}

	if best := m.widestDistanceRing(cfg.TravelDistance); best < cfg.Players {
		return nil, fmt.Errorf("maze: Generate: no goal placement on a %dx%d grid seats %d distinct starts at distance %d",
			cfg.Width, cfg.Height, cfg.Players, cfg.TravelDistance)
	}

	// A goal near a corner may not leave enough cells at the exact travel
	// distance to seat every player; reject those placements.
	m.goal = m.randomCell(src)
	for attempts := 0; m.cellsAtDistance(m.goal, cfg.TravelDistance) < cfg.Players; attempts++ {
		if attempts >= maxPlacementAttempts {
			panic("maze: Generate: cannot place a goal with room for every start")
		}
		m.goal = m.randomCell(src)
	}
	m.cellAt(m.goal).Kind = KindGoal

	for i := 0; i < cfg.Players; i++ {
		start := m.randomCellWithDistance(m.goal, cfg.TravelDistance, src)
		for attempts := 0; m.isStart(start); attempts++ {
			if attempts >= maxPlacementAttempts {
				panic("maze: Generate: cannot find a distinct start cell")
			}
			start = m.randomCellWithDistance(m.goal, cfg.TravelDistance, src)
		}
		m.connectCells(start, m.goal)
		m.starts = append(m.starts, start)
	}

	// Secondary connections: each pair of item cells gets its own corridor,
	// which is what lets corridors cross and form multi-exit intersections.
	itemSquares := int(math.Round(float64(cfg.Width*cfg.Height) * cfg.ItemDensity))
	for i := 0; i < itemSquares/2; i++ {
		first := m.randomEmptyCell(src)
		second := m.randomEmptyCell(src)
		for attempts := 0; second == first; attempts++ {
			if attempts >= maxPlacementAttempts {
				panic("maze: Generate: cannot find a distinct second item cell")
			}
			second = m.randomEmptyCell(src)
		}
		m.connectCells(first, second)
		m.placeItem(first, gen.Random())
		m.placeItem(second, gen.Random())
	}

	m.computeDistances()
	return m, nil
}

// Width returns the number of columns.
func (m *Map) Width() int {
	return len(m.grid[0])
}

// Height returns the number of rows.
func (m *Map) Height() int {
	return len(m.grid)
}

// Goal returns the goal coordinates.
func (m *Map) Goal() Coordinates {
	return m.goal
}

// StartingPositions returns the per-player starting coordinates, ordered
// by player index. Callers must not mutate the returned slice.
func (m *Map) StartingPositions() []Coordinates {
	return m.starts
}

// CellAt returns the cell at the given coordinates.
//
// Precondition: c must be inside the grid.
func (m *Map) CellAt(c Coordinates) *GridCell {
	return &m.grid[c.Y][c.X]
}

// cellAt is CellAt without the exported-name weight, for generation code.
func (m *Map) cellAt(c Coordinates) *GridCell {
	return &m.grid[c.Y][c.X]
}

// TakeItem removes and returns the item at c. Ownership transfers to the
// caller atomically: after return the cell holds no item.
func (m *Map) TakeItem(c Coordinates) (*item.Item, bool) {
	cell := m.cellAt(c)
	if cell.Item == nil {
		return nil, false
	}
	it := cell.Item
	cell.Item = nil
	return it, true
}

// Each calls fn for every cell in the grid, row by row. Renderers use this
// to draw tiles.
func (m *Map) Each(fn func(Coordinates, *GridCell)) {
	for y := range m.grid {
		for x := range m.grid[y] {
			fn(Coordinates{X: x, Y: y}, &m.grid[y][x])
		}
	}
}

// placeItem puts it into the path cell at c.
//
// Precondition: the cell at c must be a path cell. The exclusion logic in
// randomEmptyCell plus the corridor carving guarantee this; a violation is
// an internal-consistency failure and panics.
func (m *Map) placeItem(c Coordinates, it *item.Item) {
	cell := m.cellAt(c)
	if cell.Kind != KindPath {
		panic(fmt.Sprintf("maze: placeItem: cell (%d, %d) is not a path", c.X, c.Y))
	}
	cell.Item = it
}

// supplementCell ORs dir into an existing path or goal cell's exit mask,
// or converts a wall into a path carrying exactly dir. It never removes
// previously carved exits, which is what lets corridors share cells.
func (m *Map) supplementCell(c Coordinates, dir Direction) {
	cell := m.cellAt(c)
	if cell.Kind == KindWall {
		cell.Kind = KindPath
		cell.Exits = dir
		return
	}
	cell.Exits |= dir
}

// connectCells carves an orthogonal L-shaped corridor from start to end:
// the horizontal run at start's row, then the vertical run at end's
// column, with the elbow cell at (end.X, start.Y) receiving the bits that
// join both legs. Equal start and end is a degenerate no-op.
func (m *Map) connectCells(start, end Coordinates) {
	if start == end {
		return
	}

	var corner Direction

	if start.X != end.X {
		var lo, hi int
		if start.X < end.X {
			m.supplementCell(start, East)
			corner |= West
			lo, hi = start.X+1, end.X
		} else {
			m.supplementCell(start, West)
			corner |= East
			lo, hi = end.X+1, start.X
		}
		m.straightPath(lo, hi, true, start.Y)
	} else {
		if start.Y < end.Y {
			m.supplementCell(start, North)
		} else {
			m.supplementCell(start, South)
		}
		corner = 0
	}

	if start.Y != end.Y {
		var lo, hi int
		if start.Y < end.Y {
			m.supplementCell(end, South)
			corner |= North
			lo, hi = start.Y+1, end.Y
		} else {
			m.supplementCell(end, North)
			corner |= South
			lo, hi = end.Y+1, start.Y
		}
		m.straightPath(lo, hi, false, end.X)
	} else {
		m.supplementCell(end, corner)
		corner = 0
	}

	m.supplementCell(Coordinates{X: end.X, Y: start.Y}, corner)
}

// straightPath supplements every cell with coordinate in [lo, hi) along
// one axis with the two exit bits of a straight corridor. When xRange is
// true the run is horizontal at row fixed; otherwise vertical at column
// fixed.
func (m *Map) straightPath(lo, hi int, xRange bool, fixed int) {
	for coord := lo; coord < hi; coord++ {
		if xRange {
			m.supplementCell(Coordinates{X: coord, Y: fixed}, Latitudinal)
		} else {
			m.supplementCell(Coordinates{X: fixed, Y: coord}, Longitudinal)
		}
	}
}

// randomCell returns a uniformly random coordinate in the grid.
func (m *Map) randomCell(src dice.Source) Coordinates {
	return Coordinates{X: src.Intn(m.Width()), Y: src.Intn(m.Height())}
}

// randomEmptyCell returns a uniformly random coordinate that is neither
// the goal, nor a starting position, nor a cell already holding an item.
// Walls are eligible: the caller carves a corridor through them before
// placing anything. Excluding occupied cells keeps the configured item
// density exact instead of a soft upper bound.
func (m *Map) randomEmptyCell(src dice.Source) Coordinates {
	for attempts := 0; attempts < maxPlacementAttempts; attempts++ {
		c := m.randomCell(src)
		cell := m.cellAt(c)
		if cell.Kind == KindGoal || cell.Item != nil {
			continue
		}
		if m.isStart(c) {
			continue
		}
		return c
	}
	panic("maze: randomEmptyCell: cannot find an eligible cell")
}

func (m *Map) isStart(c Coordinates) bool {
	for _, s := range m.starts {
		if s == c {
			return true
		}
	}
	return false
}

// cellsAtDistance counts the grid cells at exactly the given Manhattan
// distance from target.
func (m *Map) cellsAtDistance(target Coordinates, distance int) int {
	count := 0
	for dx := -distance; dx <= distance; dx++ {
		x := target.X + dx
		if x < 0 || x > m.Width()-1 {
			continue
		}
		dy := distance - abs(dx)
		if target.Y+dy <= m.Height()-1 {
			count++
		}
		if dy > 0 && target.Y-dy >= 0 {
			count++
		}
	}
	return count
}

// widestDistanceRing returns the largest cellsAtDistance over every
// possible goal placement, which bounds how many distinct starts the grid
// can seat at that distance.
func (m *Map) widestDistanceRing(distance int) int {
	best := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if n := m.cellsAtDistance(Coordinates{X: x, Y: y}, distance); n > best {
				best = n
			}
		}
	}
	return best
}

// randomCellWithDistance returns a coordinate at exactly the given
// Manhattan distance from target: an x-offset is sampled uniformly within
// the grid-clamped [target.X-distance, target.X+distance] band, the
// y-offset is the remainder, and the row is chosen above or below the
// target, preferring whichever stays in bounds and choosing randomly when
// both do. Offsets whose remainder cannot fit the grid vertically are
// resampled.
//
// Postcondition: the result's Manhattan distance to target is exactly
// distance.
func (m *Map) randomCellWithDistance(target Coordinates, distance int, src dice.Source) Coordinates {
	xLow := target.X - distance
	if xLow < 0 {
		xLow = 0
	}
	xHigh := target.X + distance
	if xHigh > m.Width()-1 {
		xHigh = m.Width() - 1
	}

	for attempts := 0; attempts < maxPlacementAttempts; attempts++ {
		x := xLow + src.Intn(xHigh-xLow+1)
		dy := distance - abs(x-target.X)
		above := target.Y+dy <= m.Height()-1
		below := target.Y-dy >= 0
		switch {
		case above && below:
			if src.Intn(2) == 0 {
				return Coordinates{X: x, Y: target.Y - dy}
			}
			return Coordinates{X: x, Y: target.Y + dy}
		case above:
			return Coordinates{X: x, Y: target.Y + dy}
		case below:
			return Coordinates{X: x, Y: target.Y - dy}
		default:
			// dy overshoots the grid on both sides for this x; try another.
			continue
		}
	}
	panic(fmt.Sprintf("maze: randomCellWithDistance: no cell at distance %d from (%d, %d) fits the grid",
		distance, target.X, target.Y))
}
