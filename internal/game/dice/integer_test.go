package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-games/dicewalk/internal/game/dice"
)

// TestFairInteger verifies the fair integer die's weights and total.
func TestFairInteger(t *testing.T) {
	die := dice.FairInteger()
	assert.Equal(t, [dice.Faces]int{1, 1, 1, 1, 1, 1}, die.IntegerWeights())
	assert.Equal(t, 6, die.Total())
}

// TestWithIntegerWeights verifies any non-negative vector is accepted and
// the total is the sum of the weights, while negative weights panic.
func TestWithIntegerWeights(t *testing.T) {
	die := dice.WithIntegerWeights([dice.Faces]int{0, 2, 0, 5, 1, 0})
	assert.Equal(t, 8, die.Total())

	assert.Panics(t, func() {
		dice.WithIntegerWeights([dice.Faces]int{1, 1, -1, 1, 1, 1})
	}, "negative weights must be rejected")
}

// TestIntegerRoll_RespectsWeights verifies zero-weight faces never come up
// and tallies track the weights.
func TestIntegerRoll_RespectsWeights(t *testing.T) {
	die := dice.WithIntegerWeights([dice.Faces]int{3, 0, 1, 0, 0, 0})
	src := dice.NewSeededSource(11)
	var results [dice.Faces]int
	for i := 0; i < 1000; i++ {
		face := die.Roll(src)
		results[face-1]++
	}
	assert.Zero(t, results[1], "face 2 has no weight")
	assert.Zero(t, results[3], "face 4 has no weight")
	assert.Greater(t, results[0], results[2], "face 1 carries 3x face 3's weight")
}

// TestIntegerRoll_ZeroTotal verifies rolling an all-zero die panics: this
// state must never be reached by a correct caller.
func TestIntegerRoll_ZeroTotal(t *testing.T) {
	die := dice.WithIntegerWeights([dice.Faces]int{})
	assert.Panics(t, func() { die.Roll(dice.NewSeededSource(1)) })
}

// TestBoostValues verifies scaling selected diagonal entries.
func TestBoostValues(t *testing.T) {
	die := dice.WithIntegerWeights([dice.Faces]int{2, 2, 2, 2, 2, 2})
	die.ApplyScaling(dice.BoostValues(3, 5, 6))
	assert.Equal(t, [dice.Faces]int{2, 2, 2, 2, 6, 6}, die.IntegerWeights())
	assert.Equal(t, 20, die.Total())
}

// TestApplyScaling_Rounding verifies fractional results are rounded to the
// nearest integer and the total is recomputed from the rounded weights. The
// resulting drift from the pre-transform total is the documented behavior.
func TestApplyScaling_Rounding(t *testing.T) {
	die := dice.WithIntegerWeights([dice.Faces]int{1, 1, 1, 1, 1, 1})
	die.ApplyScaling(dice.BoostValues(1.5, 1))

	weights := die.IntegerWeights()
	assert.Equal(t, 2, weights[0], "1 * 1.5 rounds to 2")
	assert.Equal(t, 7, die.Total(), "total recomputed from rounded weights")
}

// TestBoostValues_InvalidInput verifies precondition panics.
func TestBoostValues_InvalidInput(t *testing.T) {
	assert.Panics(t, func() { dice.BoostValues(-1, 1) }, "factor must be >= 0")
	assert.Panics(t, func() { dice.BoostValues(2, 0) }, "face 0 is out of range")
	assert.Panics(t, func() { dice.BoostValues(2, 7) }, "face 7 is out of range")
}

// TestSeededSource_Deterministic verifies two sources with the same seed
// produce identical sequences.
func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Intn(100), b.Intn(100), "seeded sources must agree")
		require.Equal(t, a.Float64(), b.Float64(), "seeded sources must agree")
	}
}

// TestCryptoSource_Range verifies crypto-backed samples stay in range.
func TestCryptoSource_Range(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 100; i++ {
		n := src.Intn(6)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 6)
		f := src.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
	assert.Panics(t, func() { src.Intn(0) }, "Intn requires n > 0")
}
