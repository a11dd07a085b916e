// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/linalg/matrix"
)

const ctxSVD = "NewSVD"

// SVD is the thin singular value decomposition A = U·S·Vᵀ of an m×n matrix
// with k = min(m,n): U is m×k, S is k×k diagonal, V is n×k, and the singular
// values are non-negative in non-increasing order.
type SVD struct {
	u, v []float64 // row-major m×k and n×k
	s    []float64 // len k
	m, n int
}

// NewSVD computes the SVD of a.
//
// Implementation:
//   - Stage 1: private copy; a wide input (m < n) is transposed so the
//     kernel always sees rows >= cols, and the factors are swapped back.
//   - Stage 2: Golub–Kahan bidiagonalization with Householder reflections
//     from the left (columns) and right (rows), keeping both accumulations.
//   - Stage 3: implicit zero-shift-safe QR on the bidiagonal. Each sweep
//     classifies the trailing block as: negligible s[p-1], a split at a
//     negligible s[k], a QR step with a Wilkinson-style shift, or converged.
//   - Stage 4: converged values are made non-negative and bubbled into
//     descending order, swapping columns of U and V alongside.
//
// Options: WithMaxIterations, WithContext, WithOnSweep.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrOptionViolation.
//   - *ConvergenceError when a singular value needs more sweeps than the cap.
//   - ErrCanceled (wrapping ctx.Err()) on cancellation.
//
// Complexity:
//   - Time O(m·n²) for m >= n, Space O(m·n).
func NewSVD(a matrix.Matrix, opts ...Option) (*SVD, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, opsErrorf(ctxSVD, err)
	}
	if err = o.Ctx.Err(); err != nil {
		return nil, canceledError(ctxSVD, err)
	}
	data, m, n, err := ownedCopy(ctxSVD, a)
	if err != nil {
		return nil, err
	}

	if m < n {
		u, s, v, err := svdTall(transposeFlat(data, m, n), n, m, newIterState(o, AlgSVD))
		if err != nil {
			return nil, opsErrorf(ctxSVD, err)
		}
		// Aᵀ = U'·S·V'ᵀ  ⇒  A = V'·S·U'ᵀ
		return &SVD{u: v, s: s, v: u, m: m, n: n}, nil
	}

	u, s, v, err := svdTall(data, m, n, newIterState(o, AlgSVD))
	if err != nil {
		return nil, opsErrorf(ctxSVD, err)
	}

	return &SVD{u: u, s: s, v: v, m: m, n: n}, nil
}

// svdTall factors the m×n (m >= n) buffer a in place and returns U (m×n),
// the singular values (len n) and V (n×n).
func svdTall(a []float64, m, n int, it *iterState) (u, s, v []float64, err error) {
	var (
		nu   = n // m >= n
		e    = make([]float64, n)
		work = make([]float64, m)
		nct  = min(m-1, n)
		nrt  = max(0, min(n-2, m))
		i, j int
		k    int
		t    float64
	)
	s = make([]float64, n)
	u = make([]float64, m*nu)
	v = make([]float64, n*n)

	// Reduce a to bidiagonal form, storing the diagonal in s and the
	// super-diagonal in e.
	for k = 0; k < max(nct, nrt); k++ {
		if k < nct {
			s[k] = bi.Dnrm2(m-k, a[k*n+k:], n)
			if s[k] != 0 {
				if a[k*n+k] < 0 {
					s[k] = -s[k]
				}
				for i = k; i < m; i++ {
					a[i*n+k] /= s[k]
				}
				a[k*n+k]++
			}
			s[k] = -s[k]
		}
		for j = k + 1; j < n; j++ {
			if k < nct && s[k] != 0 {
				t = bi.Ddot(m-k, a[k*n+k:], n, a[k*n+j:], n)
				t = -t / a[k*n+k]
				bi.Daxpy(m-k, t, a[k*n+k:], n, a[k*n+j:], n)
			}
			// Row k of the transformed matrix feeds the row transformation.
			e[j] = a[k*n+j]
		}
		if k < nct {
			bi.Dcopy(m-k, a[k*n+k:], n, u[k*nu+k:], nu)
		}
		if k < nrt {
			e[k] = bi.Dnrm2(n-k-1, e[k+1:], 1)
			if e[k] != 0 {
				if e[k+1] < 0 {
					e[k] = -e[k]
				}
				for i = k + 1; i < n; i++ {
					e[i] /= e[k]
				}
				e[k+1]++
			}
			e[k] = -e[k]
			if k+1 < m && e[k] != 0 {
				for i = k + 1; i < m; i++ {
					work[i] = 0
				}
				for j = k + 1; j < n; j++ {
					bi.Daxpy(m-k-1, e[j], a[(k+1)*n+j:], n, work[k+1:], 1)
				}
				for j = k + 1; j < n; j++ {
					t = -e[j] / e[k+1]
					bi.Daxpy(m-k-1, t, work[k+1:], 1, a[(k+1)*n+j:], n)
				}
			}
			bi.Dcopy(n-k-1, e[k+1:], 1, v[(k+1)*n+k:], n)
		}
	}

	// Final bidiagonal matrix of order p.
	p := min(n, m+1)
	if nct < n {
		s[nct] = a[nct*n+nct]
	}
	if m < p {
		s[p-1] = 0
	}
	if nrt+1 < p {
		e[nrt] = a[nrt*n+p-1]
	}
	e[p-1] = 0

	// Generate U.
	for j = nct; j < nu; j++ {
		for i = 0; i < m; i++ {
			u[i*nu+j] = 0
		}
		u[j*nu+j] = 1
	}
	for k = nct - 1; k >= 0; k-- {
		if s[k] != 0 {
			for j = k + 1; j < nu; j++ {
				t = bi.Ddot(m-k, u[k*nu+k:], nu, u[k*nu+j:], nu)
				t = -t / u[k*nu+k]
				bi.Daxpy(m-k, t, u[k*nu+k:], nu, u[k*nu+j:], nu)
			}
			for i = k; i < m; i++ {
				u[i*nu+k] = -u[i*nu+k]
			}
			u[k*nu+k]++
			for i = 0; i < k; i++ {
				u[i*nu+k] = 0
			}
		} else {
			for i = 0; i < m; i++ {
				u[i*nu+k] = 0
			}
			u[k*nu+k] = 1
		}
	}

	// Generate V.
	for k = n - 1; k >= 0; k-- {
		if k < nrt && e[k] != 0 {
			for j = k + 1; j < nu; j++ {
				t = bi.Ddot(n-k-1, v[(k+1)*n+k:], n, v[(k+1)*n+j:], n)
				t = -t / v[(k+1)*n+k]
				bi.Daxpy(n-k-1, t, v[(k+1)*n+k:], n, v[(k+1)*n+j:], n)
			}
		}
		for i = 0; i < n; i++ {
			v[i*n+k] = 0
		}
		v[k*n+k] = 1
	}

	it.emit(StageReduced, p-1, 0)
	if err = svdIterate(u, s, v, e, m, n, p, it); err != nil {
		return nil, nil, nil, err
	}

	return u, s, v, nil
}

// svdIterate drives the bidiagonal (s, e) of order p to diagonal form,
// applying every rotation to U (m×n) and V (n×n).
func svdIterate(u, s, v, e []float64, m, n, p int, it *iterState) error {
	const tiny = 0x1p-966
	var (
		pp              = p - 1
		iter            int
		k, ks, kase, j  int
		t, f, g, cs, sn float64
	)
	for p > 0 {
		// k is the largest index with a negligible e[k]; -1 when none.
		for k = p - 2; k >= 0; k-- {
			if math.Abs(e[k]) <= tiny+eps*(math.Abs(s[k])+math.Abs(s[k+1])) {
				e[k] = 0
				break
			}
		}

		if k == p-2 {
			kase = 4
		} else {
			for ks = p - 1; ks > k; ks-- {
				t = 0
				if ks != p {
					t += math.Abs(e[ks])
				}
				if ks != k+1 {
					t += math.Abs(e[ks-1])
				}
				if math.Abs(s[ks]) <= tiny+eps*t {
					s[ks] = 0
					break
				}
			}
			switch {
			case ks == k:
				kase = 3
			case ks == p-1:
				kase = 1
			default:
				kase = 2
				k = ks
			}
		}
		k++

		// Every pass that does not deflate is charged against the cap.
		if kase != 4 {
			if err := it.sweep(p-1, iter); err != nil {
				return err
			}
			iter++
		}

		switch kase {
		case 1: // s[p-1] negligible: chase e[p-2] away
			f = e[p-2]
			if f == 0 {
				return it.stalled(p-1, iter)
			}
			e[p-2] = 0
			for j = p - 2; j >= k; j-- {
				t = math.Hypot(s[j], f)
				cs, sn = s[j]/t, f/t
				s[j] = t
				if j != k {
					f = -sn * e[j-1]
					e[j-1] = cs * e[j-1]
				}
				bi.Drot(n, v[j:], n, v[p-1:], n, cs, sn)
			}

		case 2: // split at negligible s[k-1]
			f = e[k-1]
			if f == 0 {
				return it.stalled(p-1, iter)
			}
			e[k-1] = 0
			for j = k; j < p; j++ {
				t = math.Hypot(s[j], f)
				cs, sn = s[j]/t, f/t
				s[j] = t
				f = -sn * e[j]
				e[j] = cs * e[j]
				bi.Drot(m, u[j:], n, u[k-1:], n, cs, sn)
			}

		case 3: // one QR step on s[k..p-1]
			scale := math.Max(math.Max(math.Max(math.Max(
				math.Abs(s[p-1]), math.Abs(s[p-2])), math.Abs(e[p-2])),
				math.Abs(s[k])), math.Abs(e[k]))
			sp := s[p-1] / scale
			spm1 := s[p-2] / scale
			epm1 := e[p-2] / scale
			sk := s[k] / scale
			ek := e[k] / scale
			b := ((spm1+sp)*(spm1-sp) + epm1*epm1) / 2
			c := (sp * epm1) * (sp * epm1)
			shift := 0.0
			if b != 0 || c != 0 {
				shift = math.Sqrt(b*b + c)
				if b < 0 {
					shift = -shift
				}
				shift = c / (b + shift)
			}
			f = (sk+sp)*(sk-sp) + shift
			g = sk * ek

			for j = k; j < p-1; j++ {
				t = math.Hypot(f, g)
				cs, sn = f/t, g/t
				if j != k {
					e[j-1] = t
				}
				f = cs*s[j] + sn*e[j]
				e[j] = cs*e[j] - sn*s[j]
				g = sn * s[j+1]
				s[j+1] = cs * s[j+1]
				bi.Drot(n, v[j:], n, v[j+1:], n, cs, sn)

				t = math.Hypot(f, g)
				cs, sn = f/t, g/t
				s[j] = t
				f = cs*e[j] + sn*s[j+1]
				s[j+1] = -sn*e[j] + cs*s[j+1]
				g = sn * e[j+1]
				e[j+1] = cs * e[j+1]
				if j < m-1 {
					bi.Drot(m, u[j:], n, u[j+1:], n, cs, sn)
				}
			}
			e[p-2] = f

		case 4: // s[k] converged
			if s[k] <= 0 {
				if s[k] < 0 {
					s[k] = -s[k]
				} else {
					s[k] = 0 // clears -0
				}
				bi.Dscal(pp+1, -1, v[k:], n)
			}
			for k < pp && s[k] < s[k+1] {
				s[k], s[k+1] = s[k+1], s[k]
				if k < n-1 {
					bi.Dswap(n, v[k:], n, v[k+1:], n)
				}
				if k < m-1 {
					bi.Dswap(m, u[k:], n, u[k+1:], n)
				}
				k++
			}
			it.emit(StageConverged, p-1, iter)
			iter = 0
			p--
		}
	}

	return nil
}

// Values returns a copy of the singular values, non-increasing.
func (d *SVD) Values() []float64 {
	out := make([]float64, len(d.s))
	copy(out, d.s)

	return out
}

// U returns the m×k matrix of left singular vectors.
func (d *SVD) U() *matrix.Dense {
	out := make([]float64, len(d.u))
	copy(out, d.u)

	return toDense(d.m, len(d.s), out)
}

// V returns the n×k matrix of right singular vectors (n×n when m >= n).
func (d *SVD) V() *matrix.Dense {
	out := make([]float64, len(d.v))
	copy(out, d.v)

	return toDense(d.n, len(d.s), out)
}

// S returns the k×k diagonal matrix of singular values.
func (d *SVD) S() *matrix.Dense {
	k := len(d.s)
	out := make([]float64, k*k)
	for i, sv := range d.s {
		out[i*k+i] = sv
	}

	return toDense(k, k, out)
}

// Norm2 is the largest singular value.
func (d *SVD) Norm2() float64 { return d.s[0] }

// Cond is the two-norm condition number s[0]/s[k-1]; +Inf for a singular A.
func (d *SVD) Cond() float64 { return d.s[0] / d.s[len(d.s)-1] }

// Rank counts singular values above max(m,n)·s[0]·eps.
func (d *SVD) Rank() int {
	tol := float64(max(d.m, d.n)) * d.s[0] * eps
	r := 0
	for _, sv := range d.s {
		if sv > tol {
			r++
		}
	}

	return r
}
