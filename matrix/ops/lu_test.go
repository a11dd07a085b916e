// SPDX-License-Identifier: MIT
package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/katalvlaran/linalg/matrix/ops"
)

// TestLU_PermutedProduct checks A[piv, :] = L·U for square, tall and wide inputs.
func TestLU_PermutedProduct(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		a      [][]float64
		lr, lc int // shape of L
		ur, uc int // shape of U
	}{
		{"square", [][]float64{{0, 5, 9}, {2, 6, 10}, {3, 7, 11}}, 3, 3, 3, 3},
		{"tall", [][]float64{{1, 5, 9}, {2, 6, 10}, {3, 7, 11}, {4, 8, 12}}, 4, 3, 3, 3},
		{"wide", columnwise, 3, 3, 3, 4},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := dense(t, tc.a)
			lu, err := ops.NewLU(a)
			require.NoError(t, err)

			l, u := lu.L(), lu.U()
			require.Equal(t, tc.lr, l.Rows())
			require.Equal(t, tc.lc, l.Cols())
			require.Equal(t, tc.ur, u.Rows())
			require.Equal(t, tc.uc, u.Cols())

			cols := make([]int, a.Cols())
			for j := range cols {
				cols[j] = j
			}
			pa, err := a.Induced(lu.Pivot(), cols)
			require.NoError(t, err)
			requireClose(t, pa, mul(t, l, u), tol)

			for i := 0; i < l.Rows(); i++ {
				for j := i; j < l.Cols(); j++ {
					v, _ := l.At(i, j)
					if i == j {
						require.Equal(t, 1.0, v)
					} else {
						require.Zero(t, v)
					}
				}
			}
			requireUnchanged(t, tc.a, a)
		})
	}
}

// TestLU_DetSolve covers the square accessors.
func TestLU_DetSolve(t *testing.T) {
	t.Parallel()
	a := dense(t, [][]float64{{0, 5, 9}, {2, 6, 10}, {3, 7, 11}})
	lu, err := ops.NewLU(hide{a})
	require.NoError(t, err)
	require.True(t, lu.IsNonsingular())

	det, err := lu.Det()
	require.NoError(t, err)
	require.InDelta(t, 4.0, det, tol)

	pf := lu.PivotFloat()
	for i, p := range lu.Pivot() {
		require.Equal(t, float64(p), pf[i])
	}

	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	inv, err := lu.Solve(id)
	require.NoError(t, err)
	requireClose(t, id, mul(t, a, inv), tol)

	_, err = lu.Solve(dense(t, [][]float64{{1}, {2}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = lu.Solve(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestLU_Singular checks the exact zero pivot path.
func TestLU_Singular(t *testing.T) {
	t.Parallel()
	lu, err := ops.NewLU(dense(t, [][]float64{{1, 2}, {2, 4}}))
	require.NoError(t, err)
	require.False(t, lu.IsNonsingular())

	det, err := lu.Det()
	require.NoError(t, err)
	require.Zero(t, det)

	_, err = lu.Solve(dense(t, [][]float64{{1}, {1}}))
	require.ErrorIs(t, err, ops.ErrSingular)
}

// TestLU_Rectangular covers the square-only accessors on a wide factor.
func TestLU_Rectangular(t *testing.T) {
	t.Parallel()
	lu, err := ops.NewLU(dense(t, columnwise))
	require.NoError(t, err)

	_, err = lu.Det()
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = lu.Solve(dense(t, [][]float64{{1}, {1}, {1}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = ops.NewLU(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
