// Package dice provides the weighted six-sided die and the linear
// probability transforms that redistribute weight between its faces.
//
// A die is represented as six complex amplitudes whose squared magnitudes
// sum to 1; the squared magnitude of a face's amplitude is its roll
// probability. Transforms are unitary 6x6 matrices, so applying one always
// yields another valid die.
package dice

import (
	"fmt"
	"math"
)

// Faces is the number of faces on the die.
const Faces = 6

// normTolerance is the maximum deviation from exact normalization (or from
// exact unitarity, per matrix entry) accepted before the state is
// considered corrupt.
const normTolerance = 1e-12

// Weights holds one complex amplitude per face, indexed face-1.
type Weights [Faces]complex128

// WeightedDie is a six-sided die with per-face complex amplitudes.
//
// Invariant: the squared magnitudes of the amplitudes sum to 1 within
// normTolerance. The zero value is NOT a valid die; construct with Fair or
// WithWeights.
//
// WeightedDie is a value type: copying it is the supported way to preview
// the effect of a transform without committing it.
type WeightedDie struct {
	weights Weights
}

// Fair returns a die with uniform roll probabilities.
//
// Postcondition: every face has probability 1/6.
func Fair() WeightedDie {
	var w Weights
	amp := complex(math.Sqrt(1.0/Faces), 0)
	for i := range w {
		w[i] = amp
	}
	return WeightedDie{weights: w}
}

// WithWeights constructs a die from explicit amplitudes.
//
// Precondition: the squared magnitudes of w must sum to 1 within 1e-12.
// Panics otherwise; a denormalized die is an internal-consistency failure,
// not a recoverable input error.
func WithWeights(w Weights) WeightedDie {
	total := 0.0
	for _, amp := range w {
		total += normSqr(amp)
	}
	if math.Abs(total-1) > normTolerance {
		panic(fmt.Sprintf("dice: WithWeights: squared magnitudes sum to %v, want 1", total))
	}
	return WeightedDie{weights: w}
}

// Weights returns the die's amplitudes.
func (d WeightedDie) Weights() Weights {
	return d.weights
}

// Probability returns the roll probability of the given face.
//
// Precondition: face is in [1, 6].
func (d WeightedDie) Probability(face int) float64 {
	if face < 1 || face > Faces {
		panic(fmt.Sprintf("dice: Probability: face %d out of range", face))
	}
	return normSqr(d.weights[face-1])
}

// Probabilities returns all six roll probabilities, indexed face-1.
//
// Postcondition: the returned values sum to 1 within tolerance.
func (d WeightedDie) Probabilities() [Faces]float64 {
	var p [Faces]float64
	for i, amp := range d.weights {
		p[i] = normSqr(amp)
	}
	return p
}

// ExpectedValue returns the probability-weighted mean face value.
func (d WeightedDie) ExpectedValue() float64 {
	ev := 0.0
	for i, amp := range d.weights {
		ev += float64(i+1) * normSqr(amp)
	}
	return ev
}

// Roll draws one face from the die, in [1, 6], with probability equal to
// each face's squared amplitude magnitude. It performs a cumulative scan
// over the faces against a single uniform sample.
//
// Precondition: src must be non-nil and d must satisfy the normalization
// invariant. Panics if the scan exhausts all faces, which cannot happen for
// a valid die.
func (d WeightedDie) Roll(src Source) int {
	roll := src.Float64()
	for i, amp := range d.weights {
		p := normSqr(amp)
		if roll < p {
			return i + 1
		}
		roll -= p
	}
	panic("dice: Roll: cumulative scan exhausted all faces; die is denormalized")
}

// Apply replaces the die's amplitudes with t applied to them.
//
// Postcondition: the die remains normalized, since t is unitary.
func (d *WeightedDie) Apply(t Transform) {
	d.weights = t.Apply(d.weights)
}

// normSqr returns the squared magnitude of a complex amplitude.
func normSqr(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
