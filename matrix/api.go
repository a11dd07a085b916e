// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication — each facade delegates to the canonical implementation.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops, blas64).
//   - Use NewIdentity/Identity/NewZeros to build matrices with explicit shape and neutral elements.

package matrix

import "errors"

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
//
// Note: Returns (*Dense, error) to surface ErrInvalidDimensions.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
//
// AI-Hints: Use as the right-hand side of a solve to obtain an inverse.
func NewIdentity(n int) (*Dense, error) {
	return Identity(n, n)
}

// Identity returns an r×c matrix with ones on the main diagonal and zeros
// elsewhere. For r != c the diagonal stops at min(r, c).
//
// Errors:
//   - ErrInvalidDimensions (non-positive shape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Identity(rows, cols int) (*Dense, error) {
	I, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	k := min(rows, cols)
	for i := 0; i < k; i++ {
		I.data[i*cols+i] = 1.0
	}

	return I, nil
}

// CloneMatrix returns a structural clone of m (same type if m is *Dense).
// Thin wrapper over Matrix.Clone for API discoverability.
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}

// ZerosLike returns a new zero matrix with the same shape as m.
//
// AI-Hints: Useful for staging buffers or accumulating into fresh containers.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return NewDense(m.Rows(), m.Cols())
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
// Complexity: O(n^2). Validates square via central validator.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.Rows())
}

// ---------- Linear Algebra (facades map 1:1 to kernels) ----------

// Sum is an alias for Add: element-wise a + b.
func Sum(a, b Matrix) (Matrix, error) { return Add(a, b) }

// Diff is an alias for Sub: element-wise a − b.
func Diff(a, b Matrix) (Matrix, error) { return Sub(a, b) }

// Product is an alias for Mul: matrix product a × b.
//
// AI-Hints: Prefer Dense to unlock the Dgemm path.
func Product(a, b Matrix) (Matrix, error) { return Mul(a, b) }

// T is an alias for Transpose: returns mᵀ.
//
// AI-Hints: Good for small helpers and chaining, e.g. Product(Q, T(Q)).
func T(m Matrix) (Matrix, error) { return Transpose(m) }

// ScaleBy is an alias for Scale: α*m.
func ScaleBy(m Matrix, alpha float64) (Matrix, error) { return Scale(m, alpha) }

// MatVecMul is an alias for MatVec: y = m·x.
func MatVecMul(m Matrix, x []float64) ([]float64, error) { return MatVec(m, x) }

// ---------- Convenience facades (compositions only; no loop duplication) ----------

// Symmetrize returns (m + mᵀ)/2. Deterministic composition: Transpose → Add → Scale.
// Complexity: O(rc).
//
// AI-Hints: Repairs round-off asymmetry before handing a matrix to the symmetric
// eigen path or to Cholesky, both of which test symmetry exactly by default.
func Symmetrize(m Matrix) (Matrix, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}

	return Scale(sum, 0.5)
}

// ScaleCols returns a copy of m with column j multiplied by scale[j].
// This is m·diag(scale) without forming the diagonal matrix.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(scale) != Cols).
//
// AI-Hints: Rebuild an SVD as Mul(ScaleCols(U, s), T(V)).
func ScaleCols(m Matrix, scale []float64) (Matrix, error) { return ewScaleCols(m, scale) }

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for reconstruction checks such as
//     A ≈ Q·R or A·V ≈ V·D.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// ApproxEqual is AllClose with both tolerances taken from the resolved
// epsilon (DefaultEpsilon unless WithEpsilon overrides it).
//
// AI-Hints: Use ApproxEqual(a, b, WithEpsilon(1e-12)) for a quick reconstruction check.
func ApproxEqual(a, b Matrix, opts ...Option) (bool, error) {
	eps := gatherOptions(opts...).eps

	return ewAllClose(a, b, eps, eps)
}

// IsSymmetric reports whether m is symmetric within the resolved epsilon.
// Non-square input reports (false, nil); nil input fails with ErrNilMatrix.
//
// AI-Hints: Pass WithEpsilon(0) to get the exact test used by Cholesky.
func IsSymmetric(m Matrix, opts ...Option) (bool, error) {
	if err := ValidateNotNil(m); err != nil {
		return false, matrixErrorf("IsSymmetric", err)
	}
	if m.Rows() != m.Cols() {
		return false, nil
	}
	err := ValidateSymmetric(m, gatherOptions(opts...).eps)
	if errors.Is(err, ErrAsymmetry) {
		return false, nil
	}
	if err != nil {
		return false, matrixErrorf("IsSymmetric", err)
	}

	return true, nil
}
