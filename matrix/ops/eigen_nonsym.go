// SPDX-License-Identifier: MIT

package ops

import "math"

// orthes reduces the general n×n matrix h to upper Hessenberg form by
// Householder similarity transformations and accumulates them into v.
// ort is scratch of length n.
func orthes(h, v, ort []float64, n int) {
	var (
		high        = n - 1
		i, j, m     int
		scale, f, g float64
		hs          float64
	)
	for m = 1; m <= high-1; m++ {
		scale = bi.Dasum(high-m+1, h[m*n+m-1:], n)
		if scale == 0 {
			continue
		}

		// Householder vector for column m-1 below the sub-diagonal.
		hs = 0
		for i = high; i >= m; i-- {
			ort[i] = h[i*n+m-1] / scale
			hs += ort[i] * ort[i]
		}
		g = math.Sqrt(hs)
		if ort[m] > 0 {
			g = -g
		}
		hs -= ort[m] * g
		ort[m] -= g

		// H = (I − u·uᵀ/hs)·H·(I − u·uᵀ/hs)
		for j = m; j < n; j++ {
			f = bi.Ddot(high-m+1, ort[m:], 1, h[m*n+j:], n) / hs
			bi.Daxpy(high-m+1, -f, ort[m:], 1, h[m*n+j:], n)
		}
		for i = 0; i <= high; i++ {
			f = bi.Ddot(high-m+1, ort[m:], 1, h[i*n+m:], 1) / hs
			bi.Daxpy(high-m+1, -f, ort[m:], 1, h[i*n+m:], 1)
		}
		ort[m] *= scale
		h[m*n+m-1] = scale * g
	}

	// Accumulate transformations.
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v[i*n+j] = 0
		}
		v[i*n+i] = 1
	}
	for m = high - 1; m >= 1; m-- {
		if h[m*n+m-1] == 0 {
			continue
		}
		for i = m + 1; i <= high; i++ {
			ort[i] = h[i*n+m-1]
		}
		for j = m; j <= high; j++ {
			g = bi.Ddot(high-m+1, ort[m:], 1, v[m*n+j:], n)
			// Double division avoids possible underflow.
			g = (g / ort[m]) / h[m*n+m-1]
			bi.Daxpy(high-m+1, g, ort[m:], 1, v[m*n+j:], n)
		}
	}
}

// cdiv returns (xr + i·xi) / (yr + i·yi) using Smith's scaling.
func cdiv(xr, xi, yr, yi float64) (float64, float64) {
	var r, d float64
	if math.Abs(yr) > math.Abs(yi) {
		r = yi / yr
		d = yr + r*yi

		return (xr + r*xi) / d, (xi - r*xr) / d
	}
	r = yr / yi
	d = yi + r*yr

	return (r*xr + xi) / d, (r*xi - xr) / d
}

// hqr2 reduces the Hessenberg matrix h (from orthes) to real Schur form by
// the Francis double-shift QR iteration, storing eigenvalues in (d, e), and
// then recovers the eigenvectors by back substitution and back
// transformation into v.
//
// The iteration counter restarts whenever a root (or a 2×2 pair) deflates.
// At iteration 10 Wilkinson's exceptional shift is applied, at 30 the MATLAB
// one; it.max bounds the counter.
func hqr2(h, v, d, e []float64, nn int, it *iterState) error {
	var (
		n             = nn - 1 // active trailing index
		low, high     = 0, nn - 1
		exshift       float64
		p, q, r, s, z float64
		w, x, y       float64
		norm          float64
		i, j, k, l, m int
		iter          int
		notlast       bool
	)

	for i = 0; i < nn; i++ {
		norm += bi.Dasum(nn-max(i-1, 0), h[i*nn+max(i-1, 0):], 1)
	}

	it.emit(StageReduced, n, 0)
	for n >= low {
		// Look for a single small sub-diagonal element.
		for l = n; l > low; l-- {
			s = math.Abs(h[(l-1)*nn+l-1]) + math.Abs(h[l*nn+l])
			if s == 0 {
				s = norm
			}
			if math.Abs(h[l*nn+l-1]) < eps*s {
				break
			}
		}

		switch {
		case l == n: // one root
			h[n*nn+n] += exshift
			d[n] = h[n*nn+n]
			e[n] = 0
			it.emit(StageConverged, n, iter)
			n--
			iter = 0

		case l == n-1: // two roots
			w = h[n*nn+n-1] * h[(n-1)*nn+n]
			p = (h[(n-1)*nn+n-1] - h[n*nn+n]) / 2
			q = p*p + w
			z = math.Sqrt(math.Abs(q))
			h[n*nn+n] += exshift
			h[(n-1)*nn+n-1] += exshift
			x = h[n*nn+n]

			if q >= 0 { // real pair
				if p >= 0 {
					z = p + z
				} else {
					z = p - z
				}
				d[n-1] = x + z
				d[n] = d[n-1]
				if z != 0 {
					d[n] = x - w/z
				}
				e[n-1] = 0
				e[n] = 0
				x = h[n*nn+n-1]
				s = math.Abs(x) + math.Abs(z)
				p = x / s
				q = z / s
				r = math.Sqrt(p*p + q*q)
				p /= r
				q /= r

				// Row modification: rows n-1, n rotated by (q, p).
				bi.Drot(nn-(n-1), h[(n-1)*nn+n-1:], 1, h[n*nn+n-1:], 1, q, p)
				// Column modification.
				bi.Drot(n+1, h[n-1:], nn, h[n:], nn, q, p)
				// Accumulate transformations.
				bi.Drot(high-low+1, v[low*nn+n-1:], nn, v[low*nn+n:], nn, q, p)
			} else { // complex pair
				d[n-1] = x + p
				d[n] = x + p
				e[n-1] = z
				e[n] = -z
			}
			it.emit(StageConverged, n, iter)
			n -= 2
			iter = 0

		default: // no convergence yet
			if err := it.sweep(n, iter); err != nil {
				return err
			}

			// Form shift.
			x = h[n*nn+n]
			y = 0
			w = 0
			if l < n {
				y = h[(n-1)*nn+n-1]
				w = h[n*nn+n-1] * h[(n-1)*nn+n]
			}

			// Wilkinson's original ad hoc shift.
			if iter == 10 {
				exshift += x
				for i = low; i <= n; i++ {
					h[i*nn+i] -= x
				}
				s = math.Abs(h[n*nn+n-1]) + math.Abs(h[(n-1)*nn+n-2])
				x = 0.75 * s
				y = x
				w = -0.4375 * s * s
			}

			// MATLAB's ad hoc shift.
			if iter == 30 {
				s = (y - x) / 2
				s = s*s + w
				if s > 0 {
					s = math.Sqrt(s)
					if y < x {
						s = -s
					}
					s = x - w/((y-x)/2+s)
					for i = low; i <= n; i++ {
						h[i*nn+i] -= s
					}
					exshift += s
					x = 0.964
					y = x
					w = x
				}
			}
			iter++

			// Look for two consecutive small sub-diagonal elements.
			for m = n - 2; m >= l; m-- {
				z = h[m*nn+m]
				r = x - z
				s = y - z
				p = (r*s-w)/h[(m+1)*nn+m] + h[m*nn+m+1]
				q = h[(m+1)*nn+m+1] - z - r - s
				r = h[(m+2)*nn+m+1]
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				if math.Abs(h[m*nn+m-1])*(math.Abs(q)+math.Abs(r)) <
					eps*(math.Abs(p)*(math.Abs(h[(m-1)*nn+m-1])+math.Abs(z)+math.Abs(h[(m+1)*nn+m+1]))) {
					break
				}
			}
			for i = m + 2; i <= n; i++ {
				h[i*nn+i-2] = 0
				if i > m+2 {
					h[i*nn+i-3] = 0
				}
			}

			// Double QR step on rows l..n and columns m..n.
			for k = m; k <= n-1; k++ {
				notlast = k != n-1
				if k != m {
					p = h[k*nn+k-1]
					q = h[(k+1)*nn+k-1]
					r = 0
					if notlast {
						r = h[(k+2)*nn+k-1]
					}
					x = math.Abs(p) + math.Abs(q) + math.Abs(r)
					if x == 0 {
						continue
					}
					p /= x
					q /= x
					r /= x
				}

				s = math.Sqrt(p*p + q*q + r*r)
				if p < 0 {
					s = -s
				}
				if s == 0 {
					continue
				}
				if k != m {
					h[k*nn+k-1] = -s * x
				} else if l != m {
					h[k*nn+k-1] = -h[k*nn+k-1]
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p

				// Row modification.
				for j = k; j < nn; j++ {
					p = h[k*nn+j] + q*h[(k+1)*nn+j]
					if notlast {
						p += r * h[(k+2)*nn+j]
						h[(k+2)*nn+j] -= p * z
					}
					h[k*nn+j] -= p * x
					h[(k+1)*nn+j] -= p * y
				}

				// Column modification.
				for i = 0; i <= min(n, k+3); i++ {
					p = x*h[i*nn+k] + y*h[i*nn+k+1]
					if notlast {
						p += z * h[i*nn+k+2]
						h[i*nn+k+2] -= p * r
					}
					h[i*nn+k] -= p
					h[i*nn+k+1] -= p * q
				}

				// Accumulate transformations.
				for i = low; i <= high; i++ {
					p = x*v[i*nn+k] + y*v[i*nn+k+1]
					if notlast {
						p += z * v[i*nn+k+2]
						v[i*nn+k+2] -= p * r
					}
					v[i*nn+k] -= p
					v[i*nn+k+1] -= p * q
				}
			}
		}
	}

	if norm == 0 {
		return nil
	}
	schurVectors(h, d, e, nn, norm)

	// Back transformation: V·(triangular eigenvectors), column by column
	// from the right so that columns still needed are untouched.
	for j = nn - 1; j >= low; j-- {
		for i = low; i <= high; i++ {
			v[i*nn+j] = bi.Ddot(min(j, high)-low+1, v[i*nn+low:], 1, h[low*nn+j:], nn)
		}
	}

	return nil
}

// schurVectors back-substitutes the eigenvectors of the quasi-triangular
// Schur form in place, one column (or column pair) per eigenvalue.
// A zero pivot is replaced by eps·norm, and a column whose entries would
// overflow when squared is rescaled.
func schurVectors(h, d, e []float64, nn int, norm float64) {
	var (
		n, i, j, l             int
		p, q, r, s, t, w, x, y float64
		z, ra, sa, vr, vi      float64
	)
	for n = nn - 1; n >= 0; n-- {
		p = d[n]
		q = e[n]

		switch {
		case q == 0: // real vector
			l = n
			h[n*nn+n] = 1
			for i = n - 1; i >= 0; i-- {
				w = h[i*nn+i] - p
				r = bi.Ddot(n-l+1, h[i*nn+l:], 1, h[l*nn+n:], nn)
				if e[i] < 0 {
					z = w
					s = r
					continue
				}
				l = i
				if e[i] == 0 {
					if w != 0 {
						h[i*nn+n] = -r / w
					} else {
						h[i*nn+n] = -r / (eps * norm)
					}
				} else { // 2×2 block
					x = h[i*nn+i+1]
					y = h[(i+1)*nn+i]
					q = (d[i]-p)*(d[i]-p) + e[i]*e[i]
					t = (x*s - z*r) / q
					h[i*nn+n] = t
					if math.Abs(x) > math.Abs(z) {
						h[(i+1)*nn+n] = (-r - w*t) / x
					} else {
						h[(i+1)*nn+n] = (-s - y*t) / z
					}
				}

				// Overflow control.
				t = math.Abs(h[i*nn+n])
				if (eps*t)*t > 1 {
					for j = i; j <= n; j++ {
						h[j*nn+n] /= t
					}
				}
			}

		case q < 0: // complex vector, stored as columns n-1 (real) and n (imag)
			l = n - 1
			// The last component is taken imaginary so the system is triangular.
			if math.Abs(h[n*nn+n-1]) > math.Abs(h[(n-1)*nn+n]) {
				h[(n-1)*nn+n-1] = q / h[n*nn+n-1]
				h[(n-1)*nn+n] = -(h[n*nn+n] - p) / h[n*nn+n-1]
			} else {
				h[(n-1)*nn+n-1], h[(n-1)*nn+n] = cdiv(0, -h[(n-1)*nn+n], h[(n-1)*nn+n-1]-p, q)
			}
			h[n*nn+n-1] = 0
			h[n*nn+n] = 1
			for i = n - 2; i >= 0; i-- {
				ra = bi.Ddot(n-l+1, h[i*nn+l:], 1, h[l*nn+n-1:], nn)
				sa = bi.Ddot(n-l+1, h[i*nn+l:], 1, h[l*nn+n:], nn)
				w = h[i*nn+i] - p

				if e[i] < 0 {
					z = w
					r = ra
					s = sa
					continue
				}
				l = i
				if e[i] == 0 {
					h[i*nn+n-1], h[i*nn+n] = cdiv(-ra, -sa, w, q)
				} else { // 2×2 block
					x = h[i*nn+i+1]
					y = h[(i+1)*nn+i]
					vr = (d[i]-p)*(d[i]-p) + e[i]*e[i] - q*q
					vi = (d[i] - p) * 2 * q
					if vr == 0 && vi == 0 {
						vr = eps * norm * (math.Abs(w) + math.Abs(q) + math.Abs(x) + math.Abs(y) + math.Abs(z))
					}
					h[i*nn+n-1], h[i*nn+n] = cdiv(x*r-z*ra+q*sa, x*s-z*sa-q*ra, vr, vi)
					if math.Abs(x) > math.Abs(z)+math.Abs(q) {
						h[(i+1)*nn+n-1] = (-ra - w*h[i*nn+n-1] + q*h[i*nn+n]) / x
						h[(i+1)*nn+n] = (-sa - w*h[i*nn+n] - q*h[i*nn+n-1]) / x
					} else {
						h[(i+1)*nn+n-1], h[(i+1)*nn+n] = cdiv(-r-y*h[i*nn+n-1], -s-y*h[i*nn+n], z, q)
					}
				}

				// Overflow control.
				t = math.Max(math.Abs(h[i*nn+n-1]), math.Abs(h[i*nn+n]))
				if (eps*t)*t > 1 {
					for j = i; j <= n; j++ {
						h[j*nn+n-1] /= t
						h[j*nn+n] /= t
					}
				}
			}
		}
	}
}
