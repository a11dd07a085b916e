// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Cheap matrix norms that need no factorization: ‖A‖₁, ‖A‖∞, ‖A‖_F, and the trace.
//   - The spectral norm ‖A‖₂ needs singular values and lives in matrix/ops (Norm2).
//
// Determinism & Performance:
//   - *Dense inputs are read in place; other implementations are flattened once.
//   - Column/row sums use blas64 Dasum with the row-major stride.

package matrix

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

const (
	opNorm1   = "Norm1"
	opNormInf = "NormInf"
	opNormF   = "NormF"
	opTrace   = "Trace"
)

// rowMajor returns the row-major data of m without copying when m is *Dense.
// Callers must treat the slice as read-only.
func rowMajor(m Matrix) ([]float64, error) {
	if d, ok := m.(*Dense); ok {
		return d.data, nil
	}

	return Flatten(m)
}

// Norm1 returns the maximum absolute column sum, max_j Σ_i |A[i,j]|.
//
// Errors:
//   - ErrNilMatrix; At errors from foreign implementations.
//
// Complexity:
//   - Time O(r*c), Space O(1) for *Dense, O(r*c) otherwise.
func Norm1(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNorm1, err)
	}
	data, err := rowMajor(m)
	if err != nil {
		return 0, matrixErrorf(opNorm1, err)
	}
	r, c := m.Rows(), m.Cols()
	bi := blas64.Implementation()
	best := NormZero
	var s float64
	for j := 0; j < c; j++ {
		s = bi.Dasum(r, data[j:], c)
		if s > best {
			best = s
		}
	}

	return best, nil
}

// NormInf returns the maximum absolute row sum, max_i Σ_j |A[i,j]|.
//
// Errors:
//   - ErrNilMatrix; At errors from foreign implementations.
//
// Complexity:
//   - Time O(r*c).
func NormInf(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNormInf, err)
	}
	data, err := rowMajor(m)
	if err != nil {
		return 0, matrixErrorf(opNormInf, err)
	}
	r, c := m.Rows(), m.Cols()
	bi := blas64.Implementation()
	best := NormZero
	var s float64
	for i := 0; i < r; i++ {
		s = bi.Dasum(c, data[i*c:], 1)
		if s > best {
			best = s
		}
	}

	return best, nil
}

// NormF returns the Frobenius norm sqrt(Σ A[i,j]²).
// The sum is accumulated with scaling (floats.Norm), so entries near the
// float64 limits do not overflow or underflow the intermediate squares.
//
// Errors:
//   - ErrNilMatrix; At errors from foreign implementations.
func NormF(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNormF, err)
	}
	data, err := rowMajor(m)
	if err != nil {
		return 0, matrixErrorf(opNormF, err)
	}

	return floats.Norm(data, 2), nil
}

// Trace returns the sum of the main diagonal over the leading min(r,c) square.
// Rectangular inputs are accepted.
func Trace(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	k := min(m.Rows(), m.Cols())
	sum := ZeroSum
	var v float64
	var err error
	for i := 0; i < k; i++ {
		if v, err = m.At(i, i); err != nil {
			return 0, matrixErrorf(opTrace, err)
		}
		sum += v
	}

	return sum, nil
}
