// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/linalg/matrix"
)

const (
	ctxQR      = "NewQR"
	ctxQRSolve = "QR.Solve"
)

// QR is the Householder factorization A = Q·R of an m×n matrix.
// The reflector vectors live in the lower trapezoid of qr; the diagonal of R
// is kept separately in rdiag.
type QR struct {
	qr    []float64 // row-major m×n
	m, n  int
	rdiag []float64 // len min(m,n)
}

// NewQR factors a with min(m,n) Householder reflections.
//
// Implementation:
//   - Stage 1: private copy of a.
//   - Stage 2: for each column k, nrm = ‖A[k:,k]‖ (scaled 2-norm, no overflow),
//     form v = A[k:,k]/nrm + e_k with the sign of A[k][k], apply
//     H = I - v·vᵀ/v_k to the trailing columns, and record R[k][k] = -nrm.
//
// A zero column leaves its reflector empty and R[k][k] = 0; the factorization
// never fails on rank deficiency.
//
// Complexity:
//   - Time O(m·n·min(m,n)), Space O(m·n).
func NewQR(a matrix.Matrix) (*QR, error) {
	qr, m, n, err := ownedCopy(ctxQR, a)
	if err != nil {
		return nil, err
	}

	var (
		kmax    = min(m, n)
		rdiag   = make([]float64, kmax)
		i, j, k int
		nrm, s  float64
	)
	for k = 0; k < kmax; k++ {
		nrm = bi.Dnrm2(m-k, qr[k*n+k:], n)
		if nrm != 0 {
			if qr[k*n+k] < 0 {
				nrm = -nrm
			}
			for i = k; i < m; i++ {
				qr[i*n+k] /= nrm
			}
			qr[k*n+k]++

			for j = k + 1; j < n; j++ {
				s = bi.Ddot(m-k, qr[k*n+k:], n, qr[k*n+j:], n)
				s = -s / qr[k*n+k]
				bi.Daxpy(m-k, s, qr[k*n+k:], n, qr[k*n+j:], n)
			}
		}
		rdiag[k] = -nrm
	}

	return &QR{qr: qr, m: m, n: n, rdiag: rdiag}, nil
}

// IsFullRank reports whether A has full column rank, i.e. m >= n and no
// diagonal entry of R is zero.
func (f *QR) IsFullRank() bool {
	if f.m < f.n {
		return false
	}
	for _, d := range f.rdiag {
		if d == 0 {
			return false
		}
	}

	return true
}

// H returns the m×min(m,n) lower trapezoidal matrix of Householder vectors.
func (f *QR) H() *matrix.Dense {
	k := len(f.rdiag)
	out := make([]float64, f.m*k)
	var i, j int
	for i = 0; i < f.m; i++ {
		for j = 0; j < k && j <= i; j++ {
			out[i*k+j] = f.qr[i*f.n+j]
		}
	}

	return toDense(f.m, k, out)
}

// R returns the m×n upper trapezoidal factor.
func (f *QR) R() *matrix.Dense {
	out := make([]float64, f.m*f.n)
	var i, j int
	for i = 0; i < len(f.rdiag); i++ {
		out[i*f.n+i] = f.rdiag[i]
		for j = i + 1; j < f.n; j++ {
			out[i*f.n+j] = f.qr[i*f.n+j]
		}
	}

	return toDense(f.m, f.n, out)
}

// Q returns the full m×m orthogonal factor H_0·H_1·…·H_{k-1}.
// It is accumulated backwards onto the identity; columns left of k are
// untouched by H_k, so each reflector only visits columns k..m-1.
func (f *QR) Q() *matrix.Dense {
	var (
		m, n    = f.m, f.n
		q       = make([]float64, m*m)
		j, k    int
		s, vkk  float64
		reflect []float64
	)
	for j = 0; j < m; j++ {
		q[j*m+j] = 1
	}
	for k = len(f.rdiag) - 1; k >= 0; k-- {
		vkk = f.qr[k*n+k]
		if vkk == 0 {
			continue
		}
		reflect = f.qr[k*n+k:]
		for j = k; j < m; j++ {
			s = bi.Ddot(m-k, reflect, n, q[k*m+j:], m)
			s = -s / vkk
			bi.Daxpy(m-k, s, reflect, n, q[k*m+j:], m)
		}
	}

	return toDense(m, m, q)
}

// Solve returns the least-squares X minimizing ‖A·X − B‖_F.
//
// Implementation:
//   - Stage 1: Y = Qᵀ·B by applying the reflectors in order.
//   - Stage 2: back substitution R[:n,:n]·X = Y[:n].
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (B.Rows() != m),
//     ErrNotTall (m < n), ErrRankDeficient.
//
// Complexity:
//   - Time O(m·n·nx), Space O(m·nx).
func (f *QR) Solve(b matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, opsErrorf(ctxQRSolve, err)
	}
	if b.Rows() != f.m {
		return nil, opsErrorf(ctxQRSolve, fmt.Errorf("B has %d rows, want %d: %w", b.Rows(), f.m, matrix.ErrDimensionMismatch))
	}
	if f.m < f.n {
		return nil, opsErrorf(ctxQRSolve, fmt.Errorf("%dx%d: %w", f.m, f.n, ErrNotTall))
	}
	if !f.IsFullRank() {
		return nil, opsErrorf(ctxQRSolve, ErrRankDeficient)
	}
	x, err := flattenRHS(b)
	if err != nil {
		return nil, opsErrorf(ctxQRSolve, err)
	}

	var (
		m, n    = f.m, f.n
		nx      = b.Cols()
		i, j, k int
		s       float64
	)
	for k = 0; k < n; k++ {
		for j = 0; j < nx; j++ {
			s = bi.Ddot(m-k, f.qr[k*n+k:], n, x[k*nx+j:], nx)
			s = -s / f.qr[k*n+k]
			bi.Daxpy(m-k, s, f.qr[k*n+k:], n, x[k*nx+j:], nx)
		}
	}
	for k = n - 1; k >= 0; k-- {
		for j = 0; j < nx; j++ {
			x[k*nx+j] /= f.rdiag[k]
		}
		for i = 0; i < k; i++ {
			bi.Daxpy(nx, -f.qr[i*n+k], x[k*nx:], 1, x[i*nx:], 1)
		}
	}

	return toDense(n, nx, x[:n*nx]), nil
}
