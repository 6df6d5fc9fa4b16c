package dice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/arcadia-games/dicewalk/internal/game/dice"
)

// generateRolls rolls die count times and tallies the outcomes per face.
func generateRolls(t *testing.T, die dice.WeightedDie, src dice.Source, count int) [dice.Faces]int {
	t.Helper()
	var results [dice.Faces]int
	for i := 0; i < count; i++ {
		face := die.Roll(src)
		require.GreaterOrEqual(t, face, 1, "rolled face must be >= 1")
		require.LessOrEqual(t, face, dice.Faces, "rolled face must be <= 6")
		results[face-1]++
	}
	return results
}

// TestFair_Normalized verifies the fair die satisfies the normalization
// invariant: squared amplitude magnitudes sum to 1 within 1e-12.
func TestFair_Normalized(t *testing.T) {
	die := dice.Fair()
	total := 0.0
	for _, p := range die.Probabilities() {
		assert.InDelta(t, 1.0/6.0, p, 1e-12, "fair die face probability must be 1/6")
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-12, "probabilities must sum to 1")
}

// TestWithWeights_AcceptsNormalized verifies construction from an explicit
// non-uniform amplitude vector whose squared magnitudes sum to 1.
func TestWithWeights_AcceptsNormalized(t *testing.T) {
	var w dice.Weights
	for i := 0; i < dice.Faces; i++ {
		w[i] = complex(math.Sqrt(float64(i+1)/21.0), 0)
	}
	die := dice.WithWeights(w)
	assert.InDelta(t, 6.0/21.0, die.Probability(6), 1e-12, "face 6 probability must be 6/21")
}

// TestWithWeights_RejectsDenormalized verifies that a weight vector off by
// more than the tolerance panics.
func TestWithWeights_RejectsDenormalized(t *testing.T) {
	var w dice.Weights
	for i := range w {
		w[i] = complex(0.5, 0) // squared magnitudes sum to 1.5
	}
	assert.Panics(t, func() { dice.WithWeights(w) },
		"denormalized weights must be rejected")
}

// TestRoll_FairDistribution rolls a fair die 6000 times and checks each
// face lands within a generous band around the expected 1000. The band is
// wide enough (±5 sigma, sigma ~= 29) for this to be stable.
func TestRoll_FairDistribution(t *testing.T) {
	die := dice.Fair()
	src := dice.NewSeededSource(1)
	results := generateRolls(t, die, src, 6000)
	for face, count := range results {
		assert.Greater(t, count, 850, "face %d rolled too rarely: %d", face+1, count)
		assert.Less(t, count, 1150, "face %d rolled too often: %d", face+1, count)
	}
}

// TestRoll_SkewedDistribution verifies a heavily weighted face dominates
// the outcome tallies.
func TestRoll_SkewedDistribution(t *testing.T) {
	var w dice.Weights
	w[0] = complex(math.Sqrt(0.95), 0)
	for i := 1; i < dice.Faces; i++ {
		w[i] = complex(math.Sqrt(0.01), 0)
	}
	die := dice.WithWeights(w)
	src := dice.NewSeededSource(2)
	results := generateRolls(t, die, src, 1000)
	assert.Greater(t, results[0], 900, "face 1 carries 95%% of the weight")
}

// TestApply_Identity verifies the identity transform leaves any valid
// weight vector unchanged.
func TestApply_Identity(t *testing.T) {
	var w dice.Weights
	for i := 0; i < dice.Faces; i++ {
		w[i] = complex(math.Sqrt(float64(i+1)/21.0), 0)
	}
	die := dice.WithWeights(w)
	die.Apply(dice.Identity())
	assert.Equal(t, w, die.Weights(), "identity transform must be a no-op")
}

// TestApply_FullTransfer applies SuperimposePair(1, 2, 1.0) to a fair die:
// the maximum-transfer boundary case. Face 1 must end up with the combined
// weight of both faces and face 2 with none, while normalization holds.
func TestApply_FullTransfer(t *testing.T) {
	die := dice.Fair()
	die.Apply(dice.SuperimposePair(1, 2, 1.0))

	p := die.Probabilities()
	assert.InDelta(t, 1.0/3.0, p[0], 1e-12, "face 1 must hold both faces' weight")
	assert.InDelta(t, 0.0, p[1], 1e-12, "face 2 must be emptied")
	total := 0.0
	for face := 2; face < dice.Faces; face++ {
		assert.InDelta(t, 1.0/6.0, p[face], 1e-12, "face %d must be untouched", face+1)
	}
	for _, prob := range p {
		total += prob
	}
	assert.InDelta(t, 1.0, total, 1e-12, "normalization must survive the transform")
}

// TestApply_Normalization_Property verifies that applying any randomly
// generated superimpose transform to any valid die preserves normalization.
func TestApply_Normalization_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		die := dice.Fair()
		steps := rapid.IntRange(1, 8).Draw(rt, "steps")
		for s := 0; s < steps; s++ {
			to := rapid.IntRange(1, 6).Draw(rt, "to")
			from := rapid.IntRange(1, 6).Filter(func(f int) bool { return f != to }).Draw(rt, "from")
			strength := rapid.Float64Range(0, 1).Draw(rt, "strength")
			die.Apply(dice.SuperimposePair(to, from, strength))
		}
		total := 0.0
		for _, p := range die.Probabilities() {
			assert.GreaterOrEqual(rt, p, -1e-12, "probabilities must be non-negative")
			total += p
		}
		assert.InDelta(rt, 1.0, total, 1e-9, "normalization must survive any transform chain")
	})
}

// TestExpectedValue_Fair verifies the fair die's mean face value is 3.5.
func TestExpectedValue_Fair(t *testing.T) {
	assert.InDelta(t, 3.5, dice.Fair().ExpectedValue(), 1e-12)
}

// TestProbability_OutOfRange verifies face bounds are enforced.
func TestProbability_OutOfRange(t *testing.T) {
	die := dice.Fair()
	assert.Panics(t, func() { die.Probability(0) })
	assert.Panics(t, func() { die.Probability(7) })
}

// TestPreviewCopy verifies the value-copy preview flow: transforming a copy
// must not mutate the original.
func TestPreviewCopy(t *testing.T) {
	original := dice.Fair()
	preview := original
	preview.Apply(dice.SuperimposePair(3, 4, 1.0))

	assert.InDelta(t, 1.0/6.0, original.Probability(3), 1e-12,
		"original die must be untouched by the preview")
	assert.InDelta(t, 1.0/3.0, preview.Probability(3), 1e-12,
		"preview die must carry the transformed weights")
}

// TestLoggedRoller rolls through the logged wrapper and checks outcomes
// stay in range.
func TestLoggedRoller(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewSeededSource(7), zaptest.NewLogger(t))
	die := dice.Fair()
	for i := 0; i < 100; i++ {
		face := roller.Roll(die)
		require.GreaterOrEqual(t, face, 1)
		require.LessOrEqual(t, face, dice.Faces)
	}
}
