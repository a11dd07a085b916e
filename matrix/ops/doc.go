// SPDX-License-Identifier: MIT

// Package ops implements the classical dense factorizations on top of
// package matrix, together with the quantities derived from them.
//
// What & Why:
//   - LU with partial pivoting: square solves, determinants.
//   - Householder QR: least squares for tall systems, explicit Q.
//   - Cholesky: SPD solves; the outcome type reports why a matrix is not SPD
//     instead of failing the constructor.
//   - SVD (Golub–Kahan + implicit-shift QR): two-norm, condition number,
//     numerical rank, for any shape.
//   - Eigen: symmetric path (tridiagonalization + QL) and general path
//     (Hessenberg + Francis double-shift QR) with real Schur eigenvectors.
//   - Facade: Solve, SolveTranspose, Inverse, Det, Rank, Cond, Norm2.
//
// Ownership:
//   - Every constructor copies its input once (matrix.Flatten); callers'
//     matrices are never written.
//   - Inputs and right-hand sides need at least one row and one column;
//     an empty foreign Matrix fails with matrix.ErrInvalidDimensions.
//   - Accessors return fresh *matrix.Dense copies; a finished decomposition
//     is immutable and safe to share between goroutines.
//
// Iteration control (SVD, Eigen):
//   - WithMaxIterations bounds the sweeps per converging value; exhausting it
//     yields *ConvergenceError, which matches ErrNoConvergence.
//   - WithContext is polled once per sweep; cancellation yields an error
//     matching both ErrCanceled and the context error.
//   - WithOnSweep observes the reduced → iterating → converged lifecycle.
//
// Numerics:
//   - Kernels run on row-major buffers through gonum's blas64
//     (Ddot, Daxpy, Dnrm2, Drot, Dswap, ...), with eps = 2⁻⁵².
//   - NaN and Inf are not screened inside the arithmetic; they propagate
//     into the results, or end an iterative phase with *ConvergenceError
//     when they stop it from making progress.
//
// Quick example:
//
//	a, _ := matrix.NewDenseRows([][]float64{{4, 1}, {1, 3}})
//	b, _ := matrix.NewDenseRows([][]float64{{1}, {2}})
//	x, err := ops.Solve(a, b)
//
// See the Example functions for runnable usage.
package ops
