// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the basic kernels.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linalg/matrix"
)

const kernelTol = 1e-12

// toGonum copies a Matrix into a gonum *mat.Dense for oracle checks.
func toGonum(t testing.TB, m matrix.Matrix) *mat.Dense {
	t.Helper()
	data, err := matrix.Flatten(m)
	require.NoError(t, err)

	return mat.NewDense(m.Rows(), m.Cols(), data)
}

// requireGonumClose compares a Matrix against a gonum result.
func requireGonumClose(t testing.TB, want mat.Matrix, got matrix.Matrix, tol float64) {
	t.Helper()
	r, c := want.Dims()
	require.Equal(t, r, got.Rows())
	require.Equal(t, c, got.Cols())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.InDeltaf(t, want.At(i, j), MustAt(t, got, i, j), tol, "(%d,%d)", i, j)
		}
	}
}

// TestAddSub_FastMatchesFallback checks both code paths against each other.
func TestAddSub_FastMatchesFallback(t *testing.T) {
	t.Parallel()
	a := RandFilledDense(t, 4, 5, 1)
	b := RandFilledDense(t, 4, 5, 2)

	fast, err := matrix.Add(a, b)
	require.NoError(t, err)
	slow, err := matrix.Add(hide{a}, b)
	require.NoError(t, err)
	CompareClose(t, fast, slow, 0, 0)

	diff, err := matrix.Sub(fast, b)
	require.NoError(t, err)
	CompareClose(t, diff, a, 0, kernelTol)

	_, err = matrix.Add(a, MustDense(t, 5, 4))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, b)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMul_MatchesGonum uses gonum mat as an independent oracle for both paths.
func TestMul_MatchesGonum(t *testing.T) {
	t.Parallel()
	shapes := []struct{ r, n, c int }{{1, 1, 1}, {3, 4, 2}, {5, 5, 5}, {2, 7, 3}}
	for _, sh := range shapes {
		a := RandFilledDense(t, sh.r, sh.n, int64(sh.r*31+sh.n))
		b := RandFilledDense(t, sh.n, sh.c, int64(sh.c*17+sh.n))

		var want mat.Dense
		want.Mul(toGonum(t, a), toGonum(t, b))

		fast, err := matrix.Mul(a, b)
		require.NoError(t, err)
		requireGonumClose(t, &want, fast, kernelTol)

		slow, err := matrix.Mul(hide{a}, b)
		require.NoError(t, err)
		requireGonumClose(t, &want, slow, kernelTol)
	}

	_, err := matrix.Mul(MustDense(t, 2, 3), MustDense(t, 2, 3))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestTransposeScaleHadamard checks the remaining element-wise kernels.
func TestTransposeScaleHadamard(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at)
	atSlow, err := matrix.T(hide{a})
	require.NoError(t, err)
	CompareClose(t, at, atSlow, 0, 0)

	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, s)
	sSlow, err := matrix.ScaleBy(hide{a}, -2)
	require.NoError(t, err)
	CompareClose(t, s, sSlow, 0, 0)

	h, err := matrix.Hadamard(a, a)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4, 9}, {16, 25, 36}}, h)
}

// TestMatVec checks y = A·x on both paths and the length contract.
func TestMatVec(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	x := []float64{1, 0, -1}

	y, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	y2, err := matrix.MatVecMul(hide{a}, x)
	require.NoError(t, err)
	require.Equal(t, y, y2)

	_, err = matrix.MatVec(a, []float64{1})
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestIdentityRectangular checks the min(r,c) diagonal.
func TestIdentityRectangular(t *testing.T) {
	t.Parallel()
	I, err := matrix.Identity(2, 3)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0, 0}, {0, 1, 0}}, I)

	sq, err := matrix.IdentityLike(MustDense(t, 3, 3))
	require.NoError(t, err)
	tr, err := matrix.Trace(sq)
	require.NoError(t, err)
	require.Equal(t, 3.0, tr)

	_, err = matrix.IdentityLike(MustDense(t, 2, 3))
	AssertErrorIs(t, err, matrix.ErrNonSquare)
}

// TestSymmetrizeAndScaleCols covers the composition facades.
func TestSymmetrizeAndScaleCols(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 2, []float64{1, 2, 4, 3})
	s, err := matrix.Symmetrize(a)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 3}, {3, 3}}, s)
	require.NoError(t, matrix.ValidateSymmetric(s, 0))

	sc, err := matrix.ScaleCols(a, []float64{2, -1})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{2, -2}, {8, -3}}, sc)
	scSlow, err := matrix.ScaleCols(hide{a}, []float64{2, -1})
	require.NoError(t, err)
	CompareClose(t, sc, scSlow, 0, 0)

	_, err = matrix.ScaleCols(a, []float64{1})
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestAllClose covers tolerances and infinities.
func TestAllClose(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 1, 2, []float64{1, 2})
	b := NewFilledDense(t, 1, 2, []float64{1 + 1e-10, 2})

	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = matrix.AllClose(hide{a}, b, 1e-9, 0)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 2, 1), 0, 0)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestFacades_Aliases checks that the alias facades agree with their kernels.
func TestFacades_Aliases(t *testing.T) {
	t.Parallel()
	a := RandFilledDense(t, 3, 4, 11)
	b := RandFilledDense(t, 3, 4, 12)

	z, err := matrix.NewZeros(2, 3)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, z)
	_, err = matrix.NewZeros(0, 3)
	AssertErrorIs(t, err, matrix.ErrInvalidDimensions)

	zl, err := matrix.ZerosLike(hide{a})
	require.NoError(t, err)
	require.Equal(t, 3, zl.Rows())
	require.Equal(t, 4, zl.Cols())
	nf, err := matrix.NormF(zl)
	require.NoError(t, err)
	require.Zero(t, nf)
	_, err = matrix.ZerosLike(nil)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)

	diff, err := matrix.Diff(a, b)
	require.NoError(t, err)
	sub, err := matrix.Sub(a, b)
	require.NoError(t, err)
	CompareClose(t, sub, diff, 0, 0)

	at, err := matrix.T(a)
	require.NoError(t, err)
	aat, err := matrix.Product(a, at)
	require.NoError(t, err)
	ok, err := matrix.IsSymmetric(aat, matrix.WithEpsilon(1e-12))
	require.NoError(t, err)
	require.True(t, ok)

	c := matrix.CloneMatrix(a)
	CompareClose(t, a, c, 0, 0)
	require.NoError(t, c.Set(0, 0, 42))
	v, err := a.At(0, 0)
	require.NoError(t, err)
	require.NotEqual(t, 42.0, v)
}
