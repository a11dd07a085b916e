// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linalg/matrix"
)

const (
	ctxLU      = "NewLU"
	ctxLUDet   = "LU.Det"
	ctxLUSolve = "LU.Solve"
)

// LU is the partially pivoted factorization A[piv, :] = L·U of an m×n matrix.
// L is unit lower triangular m×min(m,n); U is upper triangular min(m,n)×n.
// Both factors share one packed buffer: L strictly below the diagonal, U on
// and above it. A finished LU is read-only and safe for concurrent use.
type LU struct {
	lu      []float64 // packed factors, row-major m×n
	m, n    int
	piv     []int // row i of L·U is row piv[i] of A
	pivSign int   // +1/-1 parity of piv
}

// NewLU factors a with Gaussian elimination and partial pivoting.
//
// Implementation:
//   - Stage 1: take a private row-major copy of a (a is never written).
//   - Stage 2: left-looking elimination. For each column j, gather it, apply
//     the previously computed transformations with dot products against the
//     rows of L, pick the largest magnitude at or below the diagonal as pivot,
//     swap whole rows, then scale the subdiagonal by the pivot.
//
// A zero pivot does not abort the factorization; it is visible through
// IsNonsingular and reported by Solve.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrInvalidDimensions (empty shape);
//     At errors of foreign Matrix implementations.
//
// Complexity:
//   - Time O(m·n·min(m,n)), Space O(m·n).
func NewLU(a matrix.Matrix) (*LU, error) {
	lu, m, n, err := ownedCopy(ctxLU, a)
	if err != nil {
		return nil, err
	}

	piv := make([]int, m)
	for i := range piv {
		piv[i] = i
	}
	pivSign := 1

	var (
		col     = make([]float64, m) // working copy of column j
		i, j, p int
		s       float64
	)
	for j = 0; j < n; j++ {
		bi.Dcopy(m, lu[j:], n, col, 1)

		// Apply previous transformations: row i of L times column j of U.
		for i = 0; i < m; i++ {
			s = bi.Ddot(min(i, j), lu[i*n:], 1, col, 1)
			col[i] -= s
			lu[i*n+j] = col[i]
		}
		if j >= m {
			continue // wide matrix: nothing left to eliminate below row m
		}

		p = j
		for i = j + 1; i < m; i++ {
			if math.Abs(col[i]) > math.Abs(col[p]) {
				p = i
			}
		}
		if p != j {
			bi.Dswap(n, lu[p*n:], 1, lu[j*n:], 1)
			piv[p], piv[j] = piv[j], piv[p]
			pivSign = -pivSign
		}

		if lu[j*n+j] != 0 {
			for i = j + 1; i < m; i++ {
				lu[i*n+j] /= lu[j*n+j]
			}
		}
	}

	return &LU{lu: lu, m: m, n: n, piv: piv, pivSign: pivSign}, nil
}

// IsNonsingular reports whether every diagonal entry of U is non-zero.
func (f *LU) IsNonsingular() bool {
	k := min(f.m, f.n)
	for j := 0; j < k; j++ {
		if f.lu[j*f.n+j] == 0 {
			return false
		}
	}

	return true
}

// L returns the m×min(m,n) unit lower triangular factor.
func (f *LU) L() *matrix.Dense {
	k := min(f.m, f.n)
	out := make([]float64, f.m*k)
	var i, j int
	for i = 0; i < f.m; i++ {
		for j = 0; j < k && j <= i; j++ {
			if i == j {
				out[i*k+j] = 1
			} else {
				out[i*k+j] = f.lu[i*f.n+j]
			}
		}
	}

	return toDense(f.m, k, out)
}

// U returns the min(m,n)×n upper triangular factor.
func (f *LU) U() *matrix.Dense {
	k := min(f.m, f.n)
	out := make([]float64, k*f.n)
	for i := 0; i < k; i++ {
		copy(out[i*f.n+i:(i+1)*f.n], f.lu[i*f.n+i:(i+1)*f.n])
	}

	return toDense(k, f.n, out)
}

// Pivot returns a copy of the row permutation: row i of L·U is row Pivot()[i] of A.
func (f *LU) Pivot() []int {
	out := make([]int, len(f.piv))
	copy(out, f.piv)

	return out
}

// PivotFloat returns Pivot as float64 values.
func (f *LU) PivotFloat() []float64 {
	out := make([]float64, len(f.piv))
	for i, p := range f.piv {
		out[i] = float64(p)
	}

	return out
}

// Det returns det(A) = pivSign · Π U[j][j]. A singular A yields exactly 0.
func (f *LU) Det() (float64, error) {
	if f.m != f.n {
		return 0, opsErrorf(ctxLUDet, fmt.Errorf("%dx%d: %w", f.m, f.n, matrix.ErrNonSquare))
	}
	d := float64(f.pivSign)
	for j := 0; j < f.n; j++ {
		d *= f.lu[j*f.n+j]
	}

	return d, nil
}

// Solve returns X with A·X = B for a square nonsingular A.
//
// Implementation:
//   - Stage 1: permute the rows of B by piv.
//   - Stage 2: forward substitution with unit L, then back substitution with U,
//     each as row-axpy updates over all right-hand sides at once.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare (rectangular factor),
//     matrix.ErrDimensionMismatch (B.Rows() != m), ErrSingular.
func (f *LU) Solve(b matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, opsErrorf(ctxLUSolve, err)
	}
	if f.m != f.n {
		return nil, opsErrorf(ctxLUSolve, fmt.Errorf("%dx%d: %w", f.m, f.n, matrix.ErrNonSquare))
	}
	if b.Rows() != f.m {
		return nil, opsErrorf(ctxLUSolve, fmt.Errorf("B has %d rows, want %d: %w", b.Rows(), f.m, matrix.ErrDimensionMismatch))
	}
	if !f.IsNonsingular() {
		return nil, opsErrorf(ctxLUSolve, ErrSingular)
	}
	bd, err := flattenRHS(b)
	if err != nil {
		return nil, opsErrorf(ctxLUSolve, err)
	}

	var (
		n    = f.n
		nx   = b.Cols()
		x    = make([]float64, n*nx)
		i, k int
	)
	for i = 0; i < n; i++ {
		copy(x[i*nx:(i+1)*nx], bd[f.piv[i]*nx:(f.piv[i]+1)*nx])
	}

	// L·Y = B[piv, :]
	for k = 0; k < n; k++ {
		for i = k + 1; i < n; i++ {
			bi.Daxpy(nx, -f.lu[i*n+k], x[k*nx:], 1, x[i*nx:], 1)
		}
	}
	// U·X = Y
	for k = n - 1; k >= 0; k-- {
		d := f.lu[k*n+k]
		row := x[k*nx : (k+1)*nx]
		for i = range row {
			row[i] /= d
		}
		for i = 0; i < k; i++ {
			bi.Daxpy(nx, -f.lu[i*n+k], row, 1, x[i*nx:], 1)
		}
	}

	return toDense(n, nx, x), nil
}
