// Package item provides the catalog of usable items: named, parameterized
// probability transforms a player can apply to a weighted die.
//
// The item kind set is closed: each kind is a tagged variant carrying its
// own transform and pre-rendered description strings, and callers dispatch
// on the tag for display grouping only, never for behavior.
package item

import (
	"fmt"

	"github.com/arcadia-games/dicewalk/internal/game/dice"
)

// Item kind tags. Used for display grouping, not behavior dispatch.
const (
	KindSingleTransfer = "single_transfer"
	KindDoubleTransfer = "double_transfer"
	KindPairTransfer   = "pair_transfer"
)

// Kinds lists every registered item kind.
var Kinds = []string{KindSingleTransfer, KindDoubleTransfer, KindPairTransfer}

// DieHolder is the capability an item needs from its target: anything that
// owns a weighted die and can apply a transform to it. A Player satisfies
// this.
type DieHolder interface {
	TransformDie(t dice.Transform)
}

// Item is one owned item instance. Ownership is exclusive: an item sits in
// exactly one map cell before pickup or one player inventory after, never
// both. Items are immutable after construction.
type Item struct {
	kind      string
	short     string
	full      string
	transform dice.Transform
}

// Kind returns the item's display-grouping tag.
func (it *Item) Kind() string {
	return it.kind
}

// ShortDescription returns the one-line inventory label, fixed at
// construction.
func (it *Item) ShortDescription() string {
	return it.short
}

// FullDescription returns the detailed effect description, fixed at
// construction.
func (it *Item) FullDescription() string {
	return it.full
}

// Transform returns the item's effective transform.
func (it *Item) Transform() dice.Transform {
	return it.transform
}

// UseOnDie applies the item's transform directly to d. This is the preview
// path: callers pass a copy of a die to see the effect without committing.
func (it *Item) UseOnDie(d *dice.WeightedDie) {
	d.Apply(it.transform)
}

// Use applies the item's transform to the target's die. This is the
// canonical, committing use.
func (it *Item) Use(target DieHolder) {
	target.TransformDie(it.transform)
}

// ExpectedGain returns the change in expected face value that applying the
// item to d would produce. Positive means the die gets better for its
// owner; automated players use this to rank their inventory.
func (it *Item) ExpectedGain(d dice.WeightedDie) float64 {
	before := d.ExpectedValue()
	preview := d
	preview.Apply(it.transform)
	return preview.ExpectedValue() - before
}

// NewSingleTransfer returns an item that shifts weight from one face to
// another at the given strength.
//
// Precondition: from and to are distinct faces in [1, 6]; strength is in
// [0, 1]. Violations panic via the transform constructor.
func NewSingleTransfer(from, to int, strength float64) *Item {
	return &Item{
		kind:  KindSingleTransfer,
		short: fmt.Sprintf("Weight transfer %d > %d", from, to),
		full: fmt.Sprintf(
			"Changes the weights on %d, %d to a weighted average favoring %d at %.0f%%",
			from, to, to, strength*100,
		),
		transform: dice.SuperimposePair(to, from, strength),
	}
}

// NewDoubleTransfer returns an item that drains two faces into a third:
// two superimpose transforms composed into one operator, both feeding the
// same destination.
//
// Precondition: from1, from2, and to are three distinct faces in [1, 6];
// strength is in [0, 1]. Panics otherwise.
func NewDoubleTransfer(from1, from2, to int, strength float64) *Item {
	if from1 == from2 || from1 == to || from2 == to {
		panic(fmt.Sprintf("item: NewDoubleTransfer: faces %d, %d, %d must be distinct", from1, from2, to))
	}
	first := dice.SuperimposePair(to, from1, strength)
	second := dice.SuperimposePair(to, from2, strength)
	return &Item{
		kind:  KindDoubleTransfer,
		short: fmt.Sprintf("Double weight transfer %d, %d > %d", from1, from2, to),
		full: fmt.Sprintf(
			"Feeds the weights of both %d and %d into %d at %.0f%% strength",
			from1, from2, to, strength*100,
		),
		transform: second.CombinedWith(first),
	}
}

// NewPairTransfer returns an item bundling two independent transfers on
// disjoint face pairs, applied together.
//
// Precondition: all four faces are distinct and in [1, 6]; both strengths
// are in [0, 1]. Panics otherwise.
func NewPairTransfer(from1, to1, from2, to2 int, strength1, strength2 float64) *Item {
	faces := map[int]bool{from1: true, to1: true, from2: true, to2: true}
	if len(faces) != 4 {
		panic(fmt.Sprintf("item: NewPairTransfer: faces %d, %d, %d, %d must be distinct",
			from1, to1, from2, to2))
	}
	first := dice.SuperimposePair(to1, from1, strength1)
	second := dice.SuperimposePair(to2, from2, strength2)
	return &Item{
		kind:  KindPairTransfer,
		short: fmt.Sprintf("Paired weight transfer %d > %d, %d > %d", from1, to1, from2, to2),
		full: fmt.Sprintf(
			"Transfers weight %d > %d at %.0f%% and %d > %d at %.0f%% in a single use",
			from1, to1, strength1*100, from2, to2, strength2*100,
		),
		transform: second.CombinedWith(first),
	}
}
