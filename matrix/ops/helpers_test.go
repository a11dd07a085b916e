// SPDX-License-Identifier: MIT
// Package ops_test contains shared fixtures for the factorization tests.
//
// Fixtures are the classic dense test matrices: a column-ordered 1..12 block,
// a small SPD matrix, a near-defective nonsymmetric matrix and a pathological
// permutation-like matrix that used to stall double-shift QR.

package ops_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linalg/matrix"
)

const tol = 1e-10

var (
	// columnwise is 1..12 laid out column by column in 3 rows.
	columnwise = [][]float64{{1, 4, 7, 10}, {2, 5, 8, 11}, {3, 6, 9, 12}}

	// pvals is symmetric positive definite.
	pvals = [][]float64{{4, 1, 1}, {1, 2, 3}, {1, 3, 6}}

	// evals has eigenvalues clustered around ±1 with a tiny coupling.
	evals = [][]float64{
		{0, 1, 0, 0},
		{1, 0, 2e-7, 0},
		{0, -2e-7, 0, 1},
		{0, 0, 1, 0},
	}

	// badeigs drove an older double-shift QR into an endless loop.
	badeigs = [][]float64{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1},
		{0, 0, 0, 1, 0},
		{1, 1, 0, 0, 1},
		{1, 0, 1, 0, 1},
	}

	condmat = [][]float64{{1, 3}, {7, 9}}
)

// hide wraps any Matrix to hide its concrete type from type assertions.
type hide struct{ matrix.Matrix }

// dense builds a *matrix.Dense from a literal or fails the test.
func dense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)

	return m
}

// randDense returns an r×c matrix with deterministic U(-1,1) entries.
func randDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()*2 - 1
	}
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// randSPD returns Bᵀ·B + n·I for a random n×n B.
func randSPD(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	b := randDense(t, n, n, seed)
	bt, err := matrix.Transpose(b)
	require.NoError(t, err)
	ata, err := matrix.Mul(bt, b)
	require.NoError(t, err)
	out, err := matrix.NewDenseFrom(n, n, mustFlat(t, ata))
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		v, _ := out.At(i, i)
		require.NoError(t, out.Set(i, i, v+float64(n)))
	}

	return out
}

func mustFlat(t testing.TB, m matrix.Matrix) []float64 {
	t.Helper()
	data, err := matrix.Flatten(m)
	require.NoError(t, err)

	return data
}

// at reads m[i,j] or fails the test.
func at(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// mul returns a·b or fails the test.
func mul(t testing.TB, a, b matrix.Matrix) matrix.Matrix {
	t.Helper()
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)

	return p
}

// tr returns aᵀ or fails the test.
func tr(t testing.TB, a matrix.Matrix) matrix.Matrix {
	t.Helper()
	p, err := matrix.Transpose(a)
	require.NoError(t, err)

	return p
}

// requireClose asserts |want − got| <= atol element-wise with equal shapes.
func requireClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	ok, err := matrix.AllClose(want, got, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\n%v\nvs\n%v", want, got)
}

// requireOrthonormalCols asserts QᵀQ ≈ I.
func requireOrthonormalCols(t testing.TB, q matrix.Matrix, atol float64) {
	t.Helper()
	id, err := matrix.NewIdentity(q.Cols())
	require.NoError(t, err)
	requireClose(t, id, mul(t, tr(t, q), q), atol)
}

// requireUnchanged asserts a still equals the literal it was built from.
func requireUnchanged(t testing.TB, want [][]float64, a matrix.Matrix) {
	t.Helper()
	requireClose(t, dense(t, want), a, 0)
}

// toGonum copies a Matrix into a gonum *mat.Dense for oracle checks.
func toGonum(t testing.TB, m matrix.Matrix) *mat.Dense {
	t.Helper()

	return mat.NewDense(m.Rows(), m.Cols(), mustFlat(t, m))
}
