// SPDX-License-Identifier: MIT
package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linalg/matrix"
	"github.com/katalvlaran/linalg/matrix/ops"
)

// TestCholesky_SPD checks L·Lᵀ = A, Solve(I) = A⁻¹ and agreement with gonum.
func TestCholesky_SPD(t *testing.T) {
	t.Parallel()
	a := dense(t, pvals)
	ch, err := ops.NewCholesky(a)
	require.NoError(t, err)
	require.True(t, ch.IsSPD())
	require.NoError(t, ch.Err())

	l, err := ch.L()
	require.NoError(t, err)
	requireClose(t, a, mul(t, l, tr(t, l)), tol)

	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	x, err := ch.Solve(id)
	require.NoError(t, err)
	inv, err := ops.Inverse(a)
	require.NoError(t, err)
	requireClose(t, inv, x, tol)
	requireClose(t, id, mul(t, a, x), tol)

	var gc mat.Cholesky
	require.True(t, gc.Factorize(mat.NewSymDense(3, mustFlat(t, a))))
	var gl mat.TriDense
	gc.LTo(&gl)
	for i := 0; i < 3; i++ {
		for j := 0; j <= i; j++ {
			require.InDelta(t, gl.At(i, j), at(t, l, i, j), tol)
		}
	}
}

// TestCholesky_Random solves a random SPD system through the interface path.
func TestCholesky_Random(t *testing.T) {
	t.Parallel()
	a := randSPD(t, 6, 21)
	b := randDense(t, 6, 2, 22)

	ch, err := ops.NewCholesky(hide{a})
	require.NoError(t, err)
	require.True(t, ch.IsSPD())
	x, err := ch.Solve(b)
	require.NoError(t, err)
	requireClose(t, b, mul(t, a, x), 1e-9)
}

// TestCholesky_NotSPD checks the outcome type on invalid inputs.
func TestCholesky_NotSPD(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a    [][]float64
		want error
	}{
		{"asymmetric", [][]float64{{4, 1}, {2, 3}}, ops.ErrNotSymmetric},
		{"indefinite", [][]float64{{1, 2}, {2, 1}}, ops.ErrNotPositiveDefinite},
		{"zero", [][]float64{{0, 0}, {0, 0}}, ops.ErrNotPositiveDefinite},
		{"negative", [][]float64{{-1}}, ops.ErrNotPositiveDefinite},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ch, err := ops.NewCholesky(dense(t, tc.a))
			require.NoError(t, err)
			require.False(t, ch.IsSPD())
			require.ErrorIs(t, ch.Err(), tc.want)

			_, err = ch.L()
			require.ErrorIs(t, err, tc.want)
			_, err = ch.Solve(dense(t, [][]float64{{1}}))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestCholesky_ShapeErrors covers constructor and Solve validation.
func TestCholesky_ShapeErrors(t *testing.T) {
	t.Parallel()
	_, err := ops.NewCholesky(dense(t, columnwise))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = ops.NewCholesky(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	ch, err := ops.NewCholesky(dense(t, pvals))
	require.NoError(t, err)
	_, err = ch.Solve(dense(t, [][]float64{{1}, {1}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
