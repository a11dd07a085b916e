// SPDX-License-Identifier: MIT

package ops

import "math"

// tred2 reduces the symmetric n×n matrix held in v to tridiagonal form by
// Householder similarity transformations. On return d holds the diagonal,
// e[1:] the sub-diagonal (e[0] = 0) and v the accumulated orthogonal
// transformation.
//
// Each step i scales row i by its absolute sum before forming the reflector
// so that tiny or huge entries neither underflow nor overflow.
func tred2(v, d, e []float64, n int) {
	var (
		i, j, k        int
		scale, f, g, h float64
		hh             float64
	)
	copy(d, v[(n-1)*n:n*n])

	for i = n - 1; i > 0; i-- {
		scale = bi.Dasum(i, d, 1)
		h = 0
		if scale == 0 {
			e[i] = d[i-1]
			for j = 0; j < i; j++ {
				d[j] = v[(i-1)*n+j]
				v[i*n+j] = 0
				v[j*n+i] = 0
			}
			d[i] = h
			continue
		}

		// Generate the Householder vector.
		for k = 0; k < i; k++ {
			d[k] /= scale
			h += d[k] * d[k]
		}
		f = d[i-1]
		g = math.Sqrt(h)
		if f > 0 {
			g = -g
		}
		e[i] = scale * g
		h -= f * g
		d[i-1] = f - g
		for j = 0; j < i; j++ {
			e[j] = 0
		}

		// Apply the similarity transformation to the remaining columns.
		for j = 0; j < i; j++ {
			f = d[j]
			v[j*n+i] = f
			g = e[j] + v[j*n+j]*f
			for k = j + 1; k <= i-1; k++ {
				g += v[k*n+j] * d[k]
				e[k] += v[k*n+j] * f
			}
			e[j] = g
		}
		f = 0
		for j = 0; j < i; j++ {
			e[j] /= h
			f += e[j] * d[j]
		}
		hh = f / (h + h)
		bi.Daxpy(i, -hh, d, 1, e, 1)
		for j = 0; j < i; j++ {
			f = d[j]
			g = e[j]
			for k = j; k <= i-1; k++ {
				v[k*n+j] -= f*e[k] + g*d[k]
			}
			d[j] = v[(i-1)*n+j]
			v[i*n+j] = 0
		}
		d[i] = h
	}

	// Accumulate transformations.
	for i = 0; i < n-1; i++ {
		v[(n-1)*n+i] = v[i*n+i]
		v[i*n+i] = 1
		h = d[i+1]
		if h != 0 {
			for k = 0; k <= i; k++ {
				d[k] = v[k*n+i+1] / h
			}
			for j = 0; j <= i; j++ {
				g = bi.Ddot(i+1, v[i+1:], n, v[j:], n)
				bi.Daxpy(i+1, -g, d, 1, v[j:], n)
			}
		}
		for k = 0; k <= i; k++ {
			v[k*n+i+1] = 0
		}
	}
	for j = 0; j < n; j++ {
		d[j] = v[(n-1)*n+j]
		v[(n-1)*n+j] = 0
	}
	v[(n-1)*n+n-1] = 1
	e[0] = 0
}

// tql2 diagonalizes the symmetric tridiagonal matrix (d, e) from tred2 by the
// implicit QL method, rotating v alongside. The eigenvalues end up in d in
// ascending order with v's columns permuted to match.
//
// An off-diagonal e[m] counts as zero once |e[m]| <= eps·tst1, where tst1 is
// the largest |d[l]|+|e[l]| seen so far.
func tql2(v, d, e []float64, n int, it *iterState) error {
	var (
		i, j, k, l, m    int
		iter             int
		f, tst1          float64
		g, p, r, h       float64
		c, c2, c3, s, s2 float64
		dl1, el1         float64
	)
	for i = 1; i < n; i++ {
		e[i-1] = e[i]
	}
	e[n-1] = 0

	it.emit(StageReduced, 0, 0)
	for l = 0; l < n; l++ {
		tst1 = math.Max(tst1, math.Abs(d[l])+math.Abs(e[l]))
		for m = l; m < n-1; m++ {
			if math.Abs(e[m]) <= eps*tst1 {
				break
			}
		}

		// If m == l, d[l] is already an eigenvalue; otherwise iterate.
		if m > l {
			for {
				if err := it.sweep(l, iter); err != nil {
					return err
				}
				iter++

				// Implicit shift.
				g = d[l]
				p = (d[l+1] - g) / (2 * e[l])
				r = math.Hypot(p, 1)
				if p < 0 {
					r = -r
				}
				d[l] = e[l] / (p + r)
				d[l+1] = e[l] * (p + r)
				dl1 = d[l+1]
				h = g - d[l]
				for i = l + 2; i < n; i++ {
					d[i] -= h
				}
				f += h

				// Implicit QL transformation.
				p = d[m]
				c, c2, c3 = 1, 1, 1
				el1 = e[l+1]
				s, s2 = 0, 0
				for i = m - 1; i >= l; i-- {
					c3 = c2
					c2 = c
					s2 = s
					g = c * e[i]
					h = c * p
					r = math.Hypot(p, e[i])
					e[i+1] = s * r
					s = e[i] / r
					c = p / r
					p = c*d[i] - s*g
					d[i+1] = h + s*(c*g+s*d[i])

					// Column i+1 ← s·col i + c·col i+1, column i ← c·col i − s·col i+1.
					bi.Drot(n, v[i+1:], n, v[i:], n, c, s)
				}
				p = -s * s2 * c3 * el1 * e[l] / dl1
				e[l] = s * p
				d[l] = c * p

				if !(math.Abs(e[l]) > eps*tst1) {
					break
				}
			}
		}
		d[l] += f
		e[l] = 0
		it.emit(StageConverged, l, iter)
		iter = 0
	}

	// Selection sort ascending, swapping eigenvector columns.
	for i = 0; i < n-1; i++ {
		k = i
		p = d[i]
		for j = i + 1; j < n; j++ {
			if d[j] < p {
				k = j
				p = d[j]
			}
		}
		if k != i {
			d[k] = d[i]
			d[i] = p
			bi.Dswap(n, v[i:], n, v[k:], n)
		}
	}

	return nil
}
