// SPDX-License-Identifier: MIT
package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/katalvlaran/linalg/matrix/ops"
)

// TestSolve_Dispatch checks the square (LU) and tall (QR) routes.
func TestSolve_Dispatch(t *testing.T) {
	t.Parallel()

	// Square: the leading block of {{5,8,11},{6,9,12}} against its row sums.
	sq := dense(t, [][]float64{{5, 8}, {6, 9}})
	x, err := ops.Solve(sq, dense(t, [][]float64{{13}, {15}}))
	require.NoError(t, err)
	requireClose(t, dense(t, [][]float64{{1}, {1}}), x, tol)

	// Tall: least squares.
	a := randDense(t, 6, 3, 51)
	b := randDense(t, 6, 2, 52)
	x, err = ops.Solve(hide{a}, b)
	require.NoError(t, err)
	var want mat.Dense
	require.NoError(t, want.Solve(toGonum(t, a), toGonum(t, b)))
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, want.At(i, j), at(t, x, i, j), 1e-9)
		}
	}

	_, err = ops.Solve(dense(t, [][]float64{{1, 2}, {2, 4}}), dense(t, [][]float64{{1}, {1}}))
	require.ErrorIs(t, err, ops.ErrSingular)
	_, err = ops.Solve(dense(t, columnwise), dense(t, [][]float64{{1}, {1}, {1}}))
	require.ErrorIs(t, err, ops.ErrNotTall)
	_, err = ops.Solve(nil, sq)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestSolveTranspose solves X·A = B.
func TestSolveTranspose(t *testing.T) {
	t.Parallel()
	a := dense(t, [][]float64{{2, 1}, {1, 3}})
	b := dense(t, [][]float64{{4, 7}})

	x, err := ops.SolveTranspose(a, b)
	require.NoError(t, err)
	requireClose(t, dense(t, [][]float64{{1, 2}}), x, tol)
	requireClose(t, b, mul(t, x, a), tol)

	_, err = ops.SolveTranspose(a, dense(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestInverse checks A·A⁻¹ = I and the pseudo-inverse of a tall matrix.
func TestInverse(t *testing.T) {
	t.Parallel()
	a := dense(t, pvals)
	inv, err := ops.Inverse(a)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	requireClose(t, id, mul(t, a, inv), tol)
	requireClose(t, id, mul(t, inv, a), tol)

	tall := randDense(t, 5, 3, 53)
	pinv, err := ops.Inverse(tall)
	require.NoError(t, err)
	require.Equal(t, 3, pinv.Rows())
	require.Equal(t, 5, pinv.Cols())
	requireClose(t, id, mul(t, pinv, tall), 1e-9)

	_, err = ops.Inverse(dense(t, [][]float64{{1, 2}, {2, 4}}))
	require.ErrorIs(t, err, ops.ErrSingular)
}

// TestDetRankCondNorm2 covers the scalar facade.
func TestDetRankCondNorm2(t *testing.T) {
	t.Parallel()

	det, err := ops.Det(dense(t, [][]float64{{0, 5, 9}, {2, 6, 10}, {3, 7, 11}}))
	require.NoError(t, err)
	require.InDelta(t, 4.0, det, tol)

	det, err = ops.Det(dense(t, [][]float64{{1, 2}, {2, 4}}))
	require.NoError(t, err)
	require.Zero(t, det)

	_, err = ops.Det(dense(t, columnwise))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	r, err := ops.Rank(dense(t, columnwise))
	require.NoError(t, err)
	require.Equal(t, 2, r)

	c := dense(t, condmat)
	cond, err := ops.Cond(c)
	require.NoError(t, err)
	vals := gonumSingularValues(t, c)
	require.InDelta(t, vals[0]/vals[1], cond, 1e-9)

	n2, err := ops.Norm2(c)
	require.NoError(t, err)
	require.InDelta(t, vals[0], n2, 1e-12)

	_, err = ops.Rank(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
