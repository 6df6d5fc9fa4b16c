package item

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arcadia-games/dicewalk/internal/game/dice"
)

// SpawnEntry is one row of a spawn table: an item kind and its relative
// spawn weight.
type SpawnEntry struct {
	Kind   string `yaml:"kind"`
	Weight int    `yaml:"weight"`
}

// SpawnTable defines the relative frequencies with which item kinds are
// generated during map population.
type SpawnTable struct {
	Entries []SpawnEntry `yaml:"items"`
}

// DefaultSpawnTable returns a table that spawns every registered kind with
// equal weight.
func DefaultSpawnTable() SpawnTable {
	entries := make([]SpawnEntry, 0, len(Kinds))
	for _, kind := range Kinds {
		entries = append(entries, SpawnEntry{Kind: kind, Weight: 1})
	}
	return SpawnTable{Entries: entries}
}

// Validate checks the spawn table invariants.
//
// Postcondition: returns nil iff the table is non-empty, every kind is
// registered and unique, and every weight is >= 1.
func (t SpawnTable) Validate() error {
	if len(t.Entries) == 0 {
		return fmt.Errorf("spawn table: must contain at least one entry")
	}
	registered := map[string]bool{}
	for _, kind := range Kinds {
		registered[kind] = true
	}
	seen := map[string]bool{}
	for i, entry := range t.Entries {
		if !registered[entry.Kind] {
			return fmt.Errorf("spawn table: entry[%d] has unknown kind %q", i, entry.Kind)
		}
		if seen[entry.Kind] {
			return fmt.Errorf("spawn table: kind %q listed more than once", entry.Kind)
		}
		seen[entry.Kind] = true
		if entry.Weight < 1 {
			return fmt.Errorf("spawn table: entry[%d] weight must be >= 1, got %d", i, entry.Weight)
		}
	}
	return nil
}

// totalWeight returns the sum of all entry weights.
//
// Precondition: the table has passed Validate.
func (t SpawnTable) totalWeight() int {
	total := 0
	for _, entry := range t.Entries {
		total += entry.Weight
	}
	return total
}

// LoadSpawnTable reads and validates a spawn table from a YAML file.
//
// Postcondition: returns a validated table or a non-nil error.
func LoadSpawnTable(path string) (SpawnTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SpawnTable{}, fmt.Errorf("LoadSpawnTable: cannot read file %q: %w", path, err)
	}
	var table SpawnTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return SpawnTable{}, fmt.Errorf("LoadSpawnTable: cannot parse file %q: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return SpawnTable{}, fmt.Errorf("LoadSpawnTable: invalid table in %q: %w", path, err)
	}
	return table, nil
}

// Generator produces randomized item instances from a spawn table and a
// randomness source.
type Generator struct {
	src   dice.Source
	table SpawnTable
}

// NewGenerator constructs a Generator.
//
// Precondition: src must be non-nil and table must have passed Validate.
func NewGenerator(src dice.Source, table SpawnTable) *Generator {
	if src == nil {
		panic("item: NewGenerator: src must not be nil")
	}
	if err := table.Validate(); err != nil {
		panic("item: NewGenerator: " + err.Error())
	}
	return &Generator{src: src, table: table}
}

// Random constructs one randomized item: a kind drawn proportionally to
// the spawn weights, distinct random faces, and strengths drawn uniformly
// from [0.5, 1.0] so every item has a meaningful effect.
func (g *Generator) Random() *Item {
	switch kind := g.drawKind(); kind {
	case KindSingleTransfer:
		faces := g.drawFaces(2)
		return NewSingleTransfer(faces[0], faces[1], g.drawStrength())
	case KindDoubleTransfer:
		faces := g.drawFaces(3)
		return NewDoubleTransfer(faces[0], faces[1], faces[2], g.drawStrength())
	case KindPairTransfer:
		faces := g.drawFaces(4)
		return NewPairTransfer(faces[0], faces[1], faces[2], faces[3],
			g.drawStrength(), g.drawStrength())
	default:
		panic(fmt.Sprintf("item: Random: spawn table produced unknown kind %q", kind))
	}
}

// drawKind samples a kind proportionally to the spawn weights via a
// cumulative scan.
func (g *Generator) drawKind() string {
	roll := g.src.Intn(g.table.totalWeight())
	for _, entry := range g.table.Entries {
		if roll < entry.Weight {
			return entry.Kind
		}
		roll -= entry.Weight
	}
	panic("item: drawKind: cumulative scan exhausted the spawn table")
}

// drawFaces samples n distinct faces in [1, 6], retrying collisions.
// Termination is guaranteed because n is always smaller than the face
// space for the registered kinds.
func (g *Generator) drawFaces(n int) []int {
	if n > dice.Faces {
		panic(fmt.Sprintf("item: drawFaces: cannot draw %d distinct faces", n))
	}
	chosen := make([]int, 0, n)
	used := map[int]bool{}
	for len(chosen) < n {
		face := g.src.Intn(dice.Faces) + 1
		if used[face] {
			continue
		}
		used[face] = true
		chosen = append(chosen, face)
	}
	return chosen
}

// drawStrength samples uniformly from [0.5, 1.0].
func (g *Generator) drawStrength() float64 {
	return 0.5 + 0.5*g.src.Float64()
}

// Random constructs one randomized item with the default (uniform) spawn
// table.
func Random(src dice.Source) *Item {
	return NewGenerator(src, DefaultSpawnTable()).Random()
}
