// SPDX-License-Identifier: MIT

package ops

import "github.com/katalvlaran/linalg/matrix"

const (
	ctxSolve          = "Solve"
	ctxSolveTranspose = "SolveTranspose"
	ctxInverse        = "Inverse"
	ctxDet            = "Det"
	ctxRank           = "Rank"
	ctxCond           = "Cond"
	ctxNorm2          = "Norm2"
)

// Solve returns X with A·X = B: the exact solution through LU when A is
// square, the least-squares solution through QR otherwise.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
//   - ErrSingular (square), ErrNotTall or ErrRankDeficient (rectangular).
func Solve(a, b matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, opsErrorf(ctxSolve, err)
	}
	if a.Rows() == a.Cols() {
		lu, err := NewLU(a)
		if err != nil {
			return nil, opsErrorf(ctxSolve, err)
		}
		x, err := lu.Solve(b)
		if err != nil {
			return nil, opsErrorf(ctxSolve, err)
		}

		return x, nil
	}

	qr, err := NewQR(a)
	if err != nil {
		return nil, opsErrorf(ctxSolve, err)
	}
	x, err := qr.Solve(b)
	if err != nil {
		return nil, opsErrorf(ctxSolve, err)
	}

	return x, nil
}

// SolveTranspose returns X with X·A = B by solving Aᵀ·Xᵀ = Bᵀ.
// B must have as many columns as A.
func SolveTranspose(a, b matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, opsErrorf(ctxSolveTranspose, err)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, opsErrorf(ctxSolveTranspose, err)
	}
	at, err := matrix.Transpose(a)
	if err != nil {
		return nil, opsErrorf(ctxSolveTranspose, err)
	}
	bt, err := matrix.Transpose(b)
	if err != nil {
		return nil, opsErrorf(ctxSolveTranspose, err)
	}
	xt, err := Solve(at, bt)
	if err != nil {
		return nil, opsErrorf(ctxSolveTranspose, err)
	}
	data, err := matrix.Flatten(xt)
	if err != nil {
		return nil, opsErrorf(ctxSolveTranspose, err)
	}

	return toDense(xt.Cols(), xt.Rows(), transposeFlat(data, xt.Rows(), xt.Cols())), nil
}

// Inverse returns A⁻¹ for a square nonsingular A, or the least-squares
// pseudo-inverse (AᵀA)⁻¹Aᵀ for a tall full-rank A. It is Solve(A, I).
func Inverse(a matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, opsErrorf(ctxInverse, err)
	}
	id, err := matrix.Identity(a.Rows(), a.Rows())
	if err != nil {
		return nil, opsErrorf(ctxInverse, err)
	}
	x, err := Solve(a, id)
	if err != nil {
		return nil, opsErrorf(ctxInverse, err)
	}

	return x, nil
}

// Det returns det(A) through LU.
func Det(a matrix.Matrix) (float64, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return 0, opsErrorf(ctxDet, err)
	}
	lu, err := NewLU(a)
	if err != nil {
		return 0, opsErrorf(ctxDet, err)
	}

	return lu.Det()
}

// Rank returns the numerical rank of A from its singular values.
func Rank(a matrix.Matrix, opts ...Option) (int, error) {
	d, err := NewSVD(a, opts...)
	if err != nil {
		return 0, opsErrorf(ctxRank, err)
	}

	return d.Rank(), nil
}

// Cond returns the two-norm condition number of A.
func Cond(a matrix.Matrix, opts ...Option) (float64, error) {
	d, err := NewSVD(a, opts...)
	if err != nil {
		return 0, opsErrorf(ctxCond, err)
	}

	return d.Cond(), nil
}

// Norm2 returns the largest singular value of A.
func Norm2(a matrix.Matrix, opts ...Option) (float64, error) {
	d, err := NewSVD(a, opts...)
	if err != nil {
		return 0, opsErrorf(ctxNorm2, err)
	}

	return d.Norm2(), nil
}
