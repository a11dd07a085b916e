// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/linalg/matrix"
)

const ctxEigen = "NewEigen"

// EigenKind tags an eigenvalue as real or as one half of a conjugate pair.
type EigenKind int

const (
	// RealEigenvalue has Imag == 0.
	RealEigenvalue EigenKind = iota
	// ComplexPair is a member of a conjugate pair; its partner has -Imag.
	ComplexPair
)

// String returns "real" or "complex".
func (k EigenKind) String() string {
	if k == ComplexPair {
		return "complex"
	}

	return "real"
}

// Eigenvalue is Real + i·Imag.
type Eigenvalue struct {
	Real float64
	Imag float64
}

// IsReal reports Imag == 0.
func (e Eigenvalue) IsReal() bool { return e.Imag == 0 }

// Kind classifies the value.
func (e Eigenvalue) Kind() EigenKind {
	if e.IsReal() {
		return RealEigenvalue
	}

	return ComplexPair
}

// Complex returns the value as a complex128.
func (e Eigenvalue) Complex() complex128 { return complex(e.Real, e.Imag) }

// Eigen holds the eigenvalues and eigenvectors of a real square matrix.
//
// For a symmetric A, V is orthogonal, D is diagonal and A = V·D·Vᵀ, with the
// eigenvalues ascending. Otherwise D is block diagonal: a real eigenvalue
// λ sits on the diagonal, a pair u ± i·v occupies the 2×2 block
// [u v; -v u], and the matching columns of V are the real and imaginary
// parts of the eigenvector. A·V = V·D holds in both cases; V may be badly
// conditioned or even singular for defective A.
type Eigen struct {
	n         int
	d, e      []float64 // real and imaginary parts
	v         []float64 // row-major n×n
	symmetric bool
}

// NewEigen dispatches on symmetry.
//
// Implementation:
//   - Stage 1: square check and private copy.
//   - Stage 2: if |A[i][j] − A[j][i]| <= SymmetryTolerance for all pairs, the
//     copy (symmetrized when the tolerance is positive) is reduced by Householder tridiagonalization
//     followed by implicit QL (ascending, orthonormal V).
//   - Stage 3: otherwise, Householder Hessenberg reduction followed by the
//     double-shift QR iteration to real Schur form, then back substitution
//     for the eigenvectors.
//
// Options: WithSymmetryTolerance, WithMaxIterations, WithContext, WithOnSweep.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrInvalidDimensions,
//     ErrOptionViolation.
//   - *ConvergenceError, ErrCanceled.
//
// Complexity:
//   - Time O(n³) (roughly 9n³ symmetric, 25n³ general), Space O(n²).
func NewEigen(a matrix.Matrix, opts ...Option) (*Eigen, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, opsErrorf(ctxEigen, err)
	}
	if err = o.Ctx.Err(); err != nil {
		return nil, canceledError(ctxEigen, err)
	}
	if err = matrix.ValidateSquareNonNil(a); err != nil {
		return nil, opsErrorf(ctxEigen, err)
	}
	data, n, _, err := ownedCopy(ctxEigen, a)
	if err != nil {
		return nil, err
	}

	eg := &Eigen{
		n: n,
		d: make([]float64, n),
		e: make([]float64, n),
	}

	err = matrix.ValidateSymmetric(a, o.SymmetryTolerance)
	switch {
	case err == nil:
		eg.symmetric = true
		if o.SymmetryTolerance > 0 {
			if data, err = symmetrized(data, n); err != nil {
				break
			}
		}
		eg.v = data
		tred2(eg.v, eg.d, eg.e, n)
		err = tql2(eg.v, eg.d, eg.e, n, newIterState(o, AlgSymmetricQL))
	case errors.Is(err, matrix.ErrAsymmetry):
		eg.v = make([]float64, n*n)
		ort := make([]float64, n)
		orthes(data, eg.v, ort, n)
		err = hqr2(data, eg.v, eg.d, eg.e, n, newIterState(o, AlgSchurQR))
	}
	if err != nil {
		return nil, opsErrorf(ctxEigen, err)
	}

	return eg, nil
}

// symmetrized returns (A+Aᵀ)/2 of the owned buffer, so a tolerance-accepted
// matrix is exactly symmetric before reduction.
func symmetrized(data []float64, n int) ([]float64, error) {
	s, err := matrix.Symmetrize(toDense(n, n, data))
	if err != nil {
		return nil, err
	}

	return matrix.Flatten(s)
}

// IsSymmetric reports whether the symmetric path was taken.
func (eg *Eigen) IsSymmetric() bool { return eg.symmetric }

// Values returns the eigenvalues. Complex pairs are adjacent, positive
// imaginary part first.
func (eg *Eigen) Values() []Eigenvalue {
	out := make([]Eigenvalue, eg.n)
	for i := range out {
		out[i] = Eigenvalue{Real: eg.d[i], Imag: eg.e[i]}
	}

	return out
}

// RealValues returns a copy of the real parts.
func (eg *Eigen) RealValues() []float64 {
	out := make([]float64, eg.n)
	copy(out, eg.d)

	return out
}

// ImagValues returns a copy of the imaginary parts.
func (eg *Eigen) ImagValues() []float64 {
	out := make([]float64, eg.n)
	copy(out, eg.e)

	return out
}

// V returns the n×n eigenvector matrix.
func (eg *Eigen) V() *matrix.Dense {
	out := make([]float64, len(eg.v))
	copy(out, eg.v)

	return toDense(eg.n, eg.n, out)
}

// D returns the n×n block diagonal eigenvalue matrix.
func (eg *Eigen) D() *matrix.Dense {
	n := eg.n
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		out[i*n+i] = eg.d[i]
		switch {
		case eg.e[i] > 0:
			out[i*n+i+1] = eg.e[i]
		case eg.e[i] < 0:
			out[i*n+i-1] = eg.e[i]
		}
	}

	return toDense(n, n, out)
}

// String lists the eigenvalues, one per line.
func (eg *Eigen) String() string {
	var sb strings.Builder
	for i := 0; i < eg.n; i++ {
		if eg.e[i] == 0 {
			fmt.Fprintf(&sb, "%g\n", eg.d[i])
			continue
		}
		fmt.Fprintf(&sb, "%g%+gi\n", eg.d[i], eg.e[i])
	}

	return sb.String()
}
