// SPDX-License-Identifier: MIT
// Package ops: sentinel errors and the structured non-convergence error.
//
// Dimension problems reuse matrix.ErrDimensionMismatch and matrix.ErrNonSquare,
// so a caller can match any shape failure with the same sentinels regardless of
// which decomposition reported it.

package ops

import (
	"errors"
	"fmt"
)

var (
	// ErrSingular is returned by LU-based solves when U has a zero pivot.
	ErrSingular = errors.New("ops: matrix is singular")

	// ErrRankDeficient is returned by the QR least-squares solve when R has a
	// zero on its diagonal.
	ErrRankDeficient = errors.New("ops: matrix is rank deficient")

	// ErrNotTall is returned by the QR solve when the system has fewer rows than columns.
	ErrNotTall = errors.New("ops: least squares needs rows >= cols")

	// ErrNotSymmetric is the Cholesky failure reason for A[i][j] != A[j][i].
	ErrNotSymmetric = errors.New("ops: matrix is not symmetric")

	// ErrNotPositiveDefinite is the Cholesky failure reason for a non-positive radicand.
	ErrNotPositiveDefinite = errors.New("ops: matrix is not positive definite")

	// ErrNoConvergence is matched by every *ConvergenceError.
	ErrNoConvergence = errors.New("ops: iteration did not converge")

	// ErrCanceled wraps the context error when an iterative phase is aborted.
	ErrCanceled = errors.New("ops: canceled")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("ops: invalid option supplied")
)

// ConvergenceError reports an iterative phase that exhausted its iteration cap.
//
//   - Stage is the algorithm that gave up: AlgSVD, AlgSymmetricQL or AlgSchurQR.
//   - Index is the singular value / eigenvalue being isolated at that moment.
//   - Iterations is the number of sweeps spent on it.
//
// errors.Is(err, ErrNoConvergence) holds for every *ConvergenceError.
type ConvergenceError struct {
	Stage      string
	Index      int
	Iterations int
}

// Error implements error.
func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("ops: %s: no convergence at index %d after %d iterations",
		e.Stage, e.Index, e.Iterations)
}

// Unwrap exposes ErrNoConvergence to errors.Is.
func (e *ConvergenceError) Unwrap() error { return ErrNoConvergence }

// opsErrorf prefixes err with an operation tag, keeping errors.Is intact.
func opsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// canceledError joins ErrCanceled with the context cause.
func canceledError(tag string, cause error) error {
	return fmt.Errorf("%s: %w: %w", tag, ErrCanceled, cause)
}
