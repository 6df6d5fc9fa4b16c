package dice

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix is a 6x6 complex matrix over the face space, indexed [row][col].
type Matrix [Faces][Faces]complex128

// Transform is a unitary linear operator over the six-dimensional face
// space. Applying it to a normalized weight vector always produces another
// normalized weight vector.
//
// Invariant: the matrix is unitary within normTolerance per entry. Every
// constructor and composition enforces this; a non-unitary matrix is an
// internal-consistency failure and panics. Transforms are immutable after
// construction and safe to share.
type Transform struct {
	m Matrix
}

// Identity returns the identity transform, which leaves any die unchanged.
func Identity() Transform {
	var m Matrix
	for i := 0; i < Faces; i++ {
		m[i][i] = 1
	}
	return Transform{m: m}
}

// WithMatrix constructs a transform from an explicit matrix.
//
// Precondition: m must be unitary within tolerance; panics otherwise.
func WithMatrix(m Matrix) Transform {
	if !IsUnitary(m) {
		panic("dice: WithMatrix: matrix is not unitary")
	}
	return Transform{m: m}
}

// Matrix returns the transform's matrix.
func (t Transform) Matrix() Matrix {
	return t.m
}

// MatrixProduct computes the standard matrix product a x b. It is used both
// for transform composition and for the unitarity check.
func MatrixProduct(a, b Matrix) Matrix {
	var combined Matrix
	for i := 0; i < Faces; i++ {
		for j := 0; j < Faces; j++ {
			for k := 0; k < Faces; k++ {
				combined[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return combined
}

// CombinedWith returns the composition t after other: the resulting
// transform applies other first, then t. This matches matrix composition
// order, result = t.m x other.m.
//
// Postcondition: the result is unitary; panics if composition of two valid
// transforms somehow is not, which indicates numerical corruption.
func (t Transform) CombinedWith(other Transform) Transform {
	m := MatrixProduct(t.m, other.m)
	if !IsUnitary(m) {
		panic("dice: CombinedWith: composition of unitary transforms is not unitary")
	}
	return Transform{m: m}
}

// SuperimposePair returns a transform that mixes the amplitudes of two
// faces. The amplitude at to becomes
//
//	sqrt(strength/2)*old_to + sqrt((2-strength)/2)*old_from
//
// and from receives the same combination with the sign of the cross term
// flipped: a 2x2 rotation embedded in the identity, unitary for any
// strength in [0, 1]. At strength 1 the pair's weight is fully exchanged.
//
// Precondition: to and from are distinct faces in [1, 6]; strength is in
// [0, 1]. Panics otherwise.
func SuperimposePair(to, from int, strength float64) Transform {
	if to < 1 || to > Faces || from < 1 || from > Faces {
		panic(fmt.Sprintf("dice: SuperimposePair: faces %d, %d out of range", to, from))
	}
	if to == from {
		panic(fmt.Sprintf("dice: SuperimposePair: faces must be distinct, got %d twice", to))
	}
	if strength < 0 || strength > 1 {
		panic(fmt.Sprintf("dice: SuperimposePair: strength %v outside [0, 1]", strength))
	}

	i, j := to-1, from-1
	t := Identity()
	a := complex(math.Sqrt(strength/2), 0)
	b := complex(math.Sqrt((2-strength)/2), 0)

	t.m[i][i] = a
	t.m[j][j] = a
	t.m[i][j] = b
	t.m[j][i] = -b

	if !IsUnitary(t.m) {
		panic("dice: SuperimposePair: constructed matrix is not unitary")
	}
	return t
}

// Apply multiplies the matrix into the given weight vector.
func (t Transform) Apply(w Weights) Weights {
	var res Weights
	for i := 0; i < Faces; i++ {
		for j := 0; j < Faces; j++ {
			res[i] += t.m[i][j] * w[j]
		}
	}
	return res
}

// IsUnitary reports whether m x conjugate-transpose(m) equals the identity
// within normTolerance per entry.
func IsUnitary(m Matrix) bool {
	var ct Matrix
	for i := 0; i < Faces; i++ {
		for j := 0; j < Faces; j++ {
			ct[i][j] = cmplx.Conj(m[j][i])
		}
	}
	product := MatrixProduct(m, ct)
	for i := 0; i < Faces; i++ {
		for j := 0; j < Faces; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(product[i][j]-want) > normTolerance {
				return false
			}
		}
	}
	return true
}
