// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linalg/matrix"
	"gonum.org/v1/gonum/floats"
)

const (
	ctxCholesky      = "NewCholesky"
	ctxCholeskyL     = "Cholesky.L"
	ctxCholeskySolve = "Cholesky.Solve"
)

// Cholesky is the outcome of factoring a square matrix as A = L·Lᵀ.
//
// The factorization itself never fails on numeric grounds: a non-symmetric or
// non-positive-definite input produces a Cholesky whose IsSPD is false and
// whose Err names the reason and the offending column. L and Solve refuse to
// hand out an invalid factor.
type Cholesky struct {
	l   []float64 // row-major n×n lower triangle
	n   int
	err error // nil when A is symmetric positive definite
}

// NewCholesky factors a square matrix column by column.
//
// Implementation:
//   - Stage 1: private copy, square check.
//   - Stage 2: for row j, L[j][k] = (A[j][k] − L[k][:k]·L[j][:k]) / L[k][k] for
//     k < j, checking A[k][j] == A[j][k] exactly; then the radicand
//     d = A[j][j] − ‖L[j][:j]‖² must be positive.
//   - Stage 3: the first violation stops the factorization and is recorded.
//
// Errors (returned directly):
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func NewCholesky(a matrix.Matrix) (*Cholesky, error) {
	src, m, n, err := ownedCopy(ctxCholesky, a)
	if err != nil {
		return nil, err
	}
	if m != n {
		return nil, opsErrorf(ctxCholesky, fmt.Errorf("%dx%d: %w", m, n, matrix.ErrNonSquare))
	}

	var (
		l          = make([]float64, n*n)
		lrowj      []float64
		lrowk      []float64
		j, k       int
		s, d       float64
		failReason error
	)
factor:
	for j = 0; j < n; j++ {
		lrowj = l[j*n : (j+1)*n]
		d = 0
		for k = 0; k < j; k++ {
			if src[k*n+j] != src[j*n+k] {
				failReason = fmt.Errorf("A[%d][%d] != A[%d][%d]: %w", k, j, j, k, ErrNotSymmetric)
				break factor
			}
			lrowk = l[k*n : (k+1)*n]
			s = floats.Dot(lrowk[:k], lrowj[:k])
			s = (src[j*n+k] - s) / l[k*n+k]
			lrowj[k] = s
			d += s * s
		}
		d = src[j*n+j] - d
		if !(d > 0) {
			failReason = fmt.Errorf("column %d: %w", j, ErrNotPositiveDefinite)
			break
		}
		lrowj[j] = math.Sqrt(d)
	}

	c := &Cholesky{l: l, n: n}
	if failReason != nil {
		c.err = opsErrorf(ctxCholesky, failReason)
	}

	return c, nil
}

// IsSPD reports whether A was symmetric positive definite.
func (c *Cholesky) IsSPD() bool { return c.err == nil }

// Err returns the failure reason, matching ErrNotSymmetric or
// ErrNotPositiveDefinite, or nil for a valid factor.
func (c *Cholesky) Err() error { return c.err }

// L returns the lower triangular factor, or Err when A is not SPD.
func (c *Cholesky) L() (*matrix.Dense, error) {
	if c.err != nil {
		return nil, opsErrorf(ctxCholeskyL, c.err)
	}
	out := make([]float64, len(c.l))
	copy(out, c.l)

	return toDense(c.n, c.n, out), nil
}

// Solve returns X with A·X = B through L·Y = B and Lᵀ·X = Y.
//
// Errors:
//   - Err() when A is not SPD.
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (B.Rows() != n).
func (c *Cholesky) Solve(b matrix.Matrix) (*matrix.Dense, error) {
	if c.err != nil {
		return nil, opsErrorf(ctxCholeskySolve, c.err)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, opsErrorf(ctxCholeskySolve, err)
	}
	if b.Rows() != c.n {
		return nil, opsErrorf(ctxCholeskySolve, fmt.Errorf("B has %d rows, want %d: %w", b.Rows(), c.n, matrix.ErrDimensionMismatch))
	}
	x, err := flattenRHS(b)
	if err != nil {
		return nil, opsErrorf(ctxCholeskySolve, err)
	}

	var (
		n    = c.n
		nx   = b.Cols()
		j, k int
		lkk  float64
	)
	// L·Y = B
	for k = 0; k < n; k++ {
		lkk = c.l[k*n+k]
		for j = 0; j < nx; j++ {
			x[k*nx+j] = (x[k*nx+j] - bi.Ddot(k, c.l[k*n:], 1, x[j:], nx)) / lkk
		}
	}
	// Lᵀ·X = Y
	for k = n - 1; k >= 0; k-- {
		lkk = c.l[k*n+k]
		for j = 0; j < nx; j++ {
			if k+1 < n {
				x[k*nx+j] -= bi.Ddot(n-k-1, c.l[(k+1)*n+k:], n, x[(k+1)*nx+j:], nx)
			}
			x[k*nx+j] /= lkk
		}
	}

	return toDense(n, nx, x), nil
}
