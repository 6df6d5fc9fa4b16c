// Package player provides the per-player game state: board position,
// inventory, the owned weighted die, and the per-turn move history used
// for corridor-following.
package player

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arcadia-games/dicewalk/internal/game/dice"
	"github.com/arcadia-games/dicewalk/internal/game/item"
	"github.com/arcadia-games/dicewalk/internal/game/maze"
)

// ErrBlocked is returned when a step is refused: the current cell has no
// exit in the requested direction or the step would leave the grid. The
// caller simply ignores the attempted move.
var ErrBlocked = errors.New("movement blocked")

// ErrNoSuchItem is returned when an inventory index is out of range.
var ErrNoSuchItem = errors.New("no such inventory item")

// Player is one participant. Created at game setup from a map starting
// position, mutated by movement, pickups, item use, and rolls, and
// discarded at game teardown.
type Player struct {
	id        uuid.UUID
	name      string
	number    int
	position  maze.Coordinates
	inventory []*item.Item
	die       dice.WeightedDie
	moves     []maze.Direction
}

// SpawnAt creates a player at the given starting position with a fair die
// and an empty inventory.
//
// Precondition: number is the zero-based player index.
func SpawnAt(position maze.Coordinates, number int) *Player {
	return &Player{
		id:       uuid.New(),
		name:     fmt.Sprintf("Player %d", number+1),
		number:   number,
		position: position,
		die:      dice.Fair(),
	}
}

// ID returns the player's unique identifier.
func (p *Player) ID() uuid.UUID {
	return p.id
}

// Name returns the display name.
func (p *Player) Name() string {
	return p.name
}

// SetName replaces the display name.
//
// Precondition: name must be non-empty.
func (p *Player) SetName(name string) {
	if name == "" {
		panic("player: SetName: name must not be empty")
	}
	p.name = name
}

// Number returns the zero-based player index.
func (p *Player) Number() int {
	return p.number
}

// Position returns the player's current coordinates.
func (p *Player) Position() maze.Coordinates {
	return p.position
}

// Die returns a copy of the player's die, suitable for display and
// previews.
func (p *Player) Die() dice.WeightedDie {
	return p.die
}

// Step attempts to move one cell in the given direction on m.
//
// The current cell's exit mask must contain the direction and the step
// must stay on the grid; otherwise ErrBlocked is returned and nothing
// changes. A destination wall despite a matching exit bit is an
// internal-consistency violation and panics, since carving never produces
// dangling exits.
//
// On success the direction is appended to the turn's move history when it
// differs from the last recorded move.
//
// Precondition: dir must be a single cardinal bit.
func (p *Player) Step(dir maze.Direction, m *maze.Map) error {
	if !dir.IsCardinal() {
		panic(fmt.Sprintf("player: Step: %v is not a cardinal direction", dir))
	}
	cell := m.CellAt(p.position)
	if !cell.Exits.Has(dir) {
		return fmt.Errorf("no %v exit from (%d, %d): %w", dir, p.position.X, p.position.Y, ErrBlocked)
	}
	next, ok := p.position.Step(dir, m.Width(), m.Height())
	if !ok {
		return fmt.Errorf("%v step off the grid edge from (%d, %d): %w", dir, p.position.X, p.position.Y, ErrBlocked)
	}
	if !m.CellAt(next).IsWalkable() {
		panic(fmt.Sprintf("player: Step: exit %v from (%d, %d) leads into a wall", dir, p.position.X, p.position.Y))
	}

	p.position = next
	if last, moved := p.LastMove(); !moved || last != dir {
		p.moves = append(p.moves, dir)
	}
	return nil
}

// LastMove returns the most recent distinct direction moved this turn.
func (p *Player) LastMove() (maze.Direction, bool) {
	if len(p.moves) == 0 {
		return 0, false
	}
	return p.moves[len(p.moves)-1], true
}

// ReversedInto reports whether moving in dir would double back against
// the last recorded move. Corridor-following uses this to keep automated
// movement from oscillating inside a straight passage.
func (p *Player) ReversedInto(dir maze.Direction) bool {
	last, moved := p.LastMove()
	return moved && dir == last.Opposite()
}

// EndTurn clears the turn's move history.
func (p *Player) EndTurn() {
	p.moves = p.moves[:0]
}

// PickUp appends it to the inventory. Ownership transfers to the player.
func (p *Player) PickUp(it *item.Item) {
	p.inventory = append(p.inventory, it)
}

// Items returns the ordered inventory. Callers must not mutate the
// returned slice.
func (p *Player) Items() []*item.Item {
	return p.inventory
}

// InventoryEmpty reports whether the player holds no items.
func (p *Player) InventoryEmpty() bool {
	return len(p.inventory) == 0
}

// UseItem removes the item at index from the inventory and commits its
// transform to the player's die.
//
// Postcondition: on success the inventory shrinks by one and the die
// carries the transformed weights; returns ErrNoSuchItem for an
// out-of-range index.
func (p *Player) UseItem(index int) error {
	if index < 0 || index >= len(p.inventory) {
		return fmt.Errorf("index %d with %d items held: %w", index, len(p.inventory), ErrNoSuchItem)
	}
	it := p.inventory[index]
	p.inventory = append(p.inventory[:index], p.inventory[index+1:]...)
	it.Use(p)
	return nil
}

// TakeItem removes and returns the item at index without applying it.
// Callers use this when the item targets another player: the owner gives
// the item up and the effect lands elsewhere.
func (p *Player) TakeItem(index int) (*item.Item, error) {
	if index < 0 || index >= len(p.inventory) {
		return nil, fmt.Errorf("index %d with %d items held: %w", index, len(p.inventory), ErrNoSuchItem)
	}
	it := p.inventory[index]
	p.inventory = append(p.inventory[:index], p.inventory[index+1:]...)
	return it, nil
}

// PreviewItem returns the die as it is now and as it would be after using
// the item at index, without committing anything. The commit/cancel
// decision happens later at the presentation layer, so both values are
// copies.
func (p *Player) PreviewItem(index int) (before, after dice.WeightedDie, err error) {
	if index < 0 || index >= len(p.inventory) {
		return dice.WeightedDie{}, dice.WeightedDie{},
			fmt.Errorf("index %d with %d items held: %w", index, len(p.inventory), ErrNoSuchItem)
	}
	before = p.die
	after = p.die
	p.inventory[index].UseOnDie(&after)
	return before, after, nil
}

// TransformDie applies t to the player's die. This satisfies
// item.DieHolder, making the player a valid item target.
func (p *Player) TransformDie(t dice.Transform) {
	p.die.Apply(t)
}

// Roll rolls the player's die.
func (p *Player) Roll(src dice.Source) int {
	return p.die.Roll(src)
}
