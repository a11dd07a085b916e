// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/linalg/matrix"
	"gonum.org/v1/gonum/blas/blas64"
)

// eps is 2^-52, the spacing of float64 at 1.
const eps = 0x1p-52

// bi is the BLAS backend shared by every kernel in the package.
var bi = blas64.Implementation()

// ownedCopy validates a and returns a private row-major copy with its shape.
// Empty shapes are rejected: every factor type needs at least one row and column.
func ownedCopy(tag string, a matrix.Matrix) ([]float64, int, int, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, 0, 0, opsErrorf(tag, err)
	}
	if err := nonEmpty(a); err != nil {
		return nil, 0, 0, opsErrorf(tag, err)
	}
	data, err := matrix.Flatten(a)
	if err != nil {
		return nil, 0, 0, opsErrorf(tag, err)
	}

	return data, a.Rows(), a.Cols(), nil
}

func nonEmpty(a matrix.Matrix) error {
	if a.Rows() <= 0 || a.Cols() <= 0 {
		return fmt.Errorf("%dx%d: %w", a.Rows(), a.Cols(), matrix.ErrInvalidDimensions)
	}

	return nil
}

// flattenRHS copies a right-hand side whose row count the caller already checked.
func flattenRHS(b matrix.Matrix) ([]float64, error) {
	if err := nonEmpty(b); err != nil {
		return nil, err
	}

	return matrix.Flatten(b)
}

// toDense wraps a freshly allocated row-major buffer. Arithmetic results may
// legitimately hold NaN or Inf, so the numeric policy is relaxed.
func toDense(r, c int, data []float64) *matrix.Dense {
	d, err := matrix.NewDenseFrom(r, c, data, matrix.WithNoValidateNaNInf())
	if err != nil {
		// ownedCopy and flattenRHS keep every shape non-empty, and callers size data as r*c.
		panic(err)
	}

	return d
}

// transposeFlat returns the c×r transpose of the r×c buffer a.
func transposeFlat(a []float64, r, c int) []float64 {
	out := make([]float64, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out[j*r+i] = a[i*c+j]
		}
	}

	return out
}
