package dice

import (
	"fmt"
	"math"
)

// IntegerDie is the integer-weight representation of the weighted die: six
// non-negative integer weights with an implicit total. The roll probability
// of a face is weight/total. It is an alternative to the amplitude
// representation, not composable with it; a game uses one or the other.
//
// Invariant: every weight is >= 0 and the total is the sum of the weights.
type IntegerDie struct {
	weights [Faces]int
	total   int
}

// FairInteger returns an integer die with every weight set to 1.
func FairInteger() IntegerDie {
	return IntegerDie{weights: [Faces]int{1, 1, 1, 1, 1, 1}, total: Faces}
}

// WithIntegerWeights constructs an integer die from explicit weights. Any
// non-negative vector is accepted; there is no normalization requirement
// beyond non-negativity.
//
// Precondition: every weight is >= 0. Panics otherwise.
func WithIntegerWeights(w [Faces]int) IntegerDie {
	total := 0
	for i, weight := range w {
		if weight < 0 {
			panic(fmt.Sprintf("dice: WithIntegerWeights: face %d has negative weight %d", i+1, weight))
		}
		total += weight
	}
	return IntegerDie{weights: w, total: total}
}

// IntegerWeights returns the die's weights.
func (d IntegerDie) IntegerWeights() [Faces]int {
	return d.weights
}

// Total returns the sum of the weights.
func (d IntegerDie) Total() int {
	return d.total
}

// Roll draws one face in [1, 6] with probability weight/total via a
// cumulative scan.
//
// Precondition: the total must be positive; rolling an all-zero die is an
// internal-consistency failure and panics.
func (d IntegerDie) Roll(src Source) int {
	if d.total <= 0 {
		panic("dice: Roll: integer die has no weight to roll")
	}
	roll := src.Intn(d.total)
	for i, weight := range d.weights {
		if roll < weight {
			return i + 1
		}
		roll -= weight
	}
	panic("dice: Roll: cumulative scan exhausted all faces; total is inconsistent")
}

// ApplyScaling replaces the weights with t applied to them, rounding each
// component to the nearest integer and recomputing the total. Repeated
// fractional scalings can drift the total away from its pre-transform
// value; that drift is a documented approximation of this representation,
// not a defect.
func (d *IntegerDie) ApplyScaling(t ScalingTransform) {
	var in [Faces]float64
	for i, w := range d.weights {
		in[i] = float64(w)
	}
	out := t.Apply(in)
	total := 0
	for i, w := range out {
		rounded := int(math.Round(w))
		d.weights[i] = rounded
		total += rounded
	}
	d.total = total
}

// ScalingTransform is a real-valued 6x6 operator for the integer-weight
// die. It preserves non-negativity by construction (entries are never
// negative) but is not unitary and does not preserve the total exactly.
type ScalingTransform struct {
	m [Faces][Faces]float64
}

// ScalingIdentity returns the identity scaling transform.
func ScalingIdentity() ScalingTransform {
	var m [Faces][Faces]float64
	for i := 0; i < Faces; i++ {
		m[i][i] = 1
	}
	return ScalingTransform{m: m}
}

// BoostValues returns a transform that scales the weights of the given
// faces by factor and leaves all other faces alone.
//
// Precondition: factor >= 0 and every face is in [1, 6]. Panics otherwise.
func BoostValues(factor float64, faces ...int) ScalingTransform {
	if factor < 0 {
		panic(fmt.Sprintf("dice: BoostValues: factor %v must be >= 0", factor))
	}
	t := ScalingIdentity()
	for _, face := range faces {
		if face < 1 || face > Faces {
			panic(fmt.Sprintf("dice: BoostValues: face %d out of range", face))
		}
		t.m[face-1][face-1] = factor
	}
	return t
}

// Apply multiplies the matrix into the given real weight vector.
func (t ScalingTransform) Apply(w [Faces]float64) [Faces]float64 {
	var res [Faces]float64
	for i := 0; i < Faces; i++ {
		for j := 0; j < Faces; j++ {
			res[i] += t.m[i][j] * w[j]
		}
	}
	return res
}
