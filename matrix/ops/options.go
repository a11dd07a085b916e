// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"fmt"
	"math"
)

// Algorithm names carried by Sweep events and ConvergenceError.Stage.
const (
	AlgSVD         = "svd"
	AlgSymmetricQL = "tql2"
	AlgSchurQR     = "hqr2"
)

// DefaultMaxIterations caps the sweeps spent isolating one value.
const DefaultMaxIterations = 75

// SweepStage is the lifecycle position reported to OnSweep.
type SweepStage int

const (
	// StageReduced fires once the direct reduction (bidiagonal, tridiagonal
	// or Hessenberg form) is done and iteration is about to start.
	StageReduced SweepStage = iota
	// StageIterating fires once per QR/QL sweep.
	StageIterating
	// StageConverged fires each time a value deflates.
	StageConverged
)

// String returns the stage name.
func (s SweepStage) String() string {
	switch s {
	case StageReduced:
		return "reduced"
	case StageIterating:
		return "iterating"
	case StageConverged:
		return "converged"
	default:
		return fmt.Sprintf("SweepStage(%d)", int(s))
	}
}

// Sweep is one progress event of an iterative phase.
type Sweep struct {
	Algorithm string     // AlgSVD, AlgSymmetricQL or AlgSchurQR
	Stage     SweepStage // lifecycle position
	Block     int        // index of the value being isolated
	Iteration int        // sweeps spent on Block so far
}

// Option configures the iterative decompositions (SVD, Eigen) and the facade
// helpers built on them. An invalid Option is recorded and surfaced as
// ErrOptionViolation by the constructor.
type Option func(*Options)

// Options holds the knobs of the iterative phases.
type Options struct {
	// Ctx is polled once per sweep; cancellation aborts with ErrCanceled.
	Ctx context.Context

	// MaxIterations bounds the sweeps spent on a single value.
	MaxIterations int

	// SymmetryTolerance selects the symmetric eigen path when
	// |A[i][j]-A[j][i]| <= SymmetryTolerance for all i, j. Zero means exact.
	SymmetryTolerance float64

	// OnSweep observes progress. It must not retain the event.
	OnSweep func(Sweep)

	err error
}

// DefaultOptions returns:
//   - context.Background()
//   - MaxIterations = DefaultMaxIterations
//   - exact symmetry test
//   - no-op OnSweep
func DefaultOptions() Options {
	return Options{
		Ctx:               context.Background(),
		MaxIterations:     DefaultMaxIterations,
		SymmetryTolerance: 0,
		OnSweep:           func(Sweep) {},
	}
}

// WithContext sets a context for cancellation. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxIterations sets the per-value sweep cap.
//
//	n > 0: cap at n
//	n <= 0: invalid option → ErrOptionViolation
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithSymmetryTolerance relaxes the symmetric-path test of NewEigen.
// Negative, NaN or infinite tolerances are rejected.
func WithSymmetryTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: SymmetryTolerance must be finite and >= 0 (%v)", ErrOptionViolation, tol)
			return
		}
		o.SymmetryTolerance = tol
	}
}

// WithOnSweep registers a progress hook.
func WithOnSweep(fn func(Sweep)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSweep = fn
		}
	}
}

// resolveOptions applies opts over the defaults and returns the recorded error, if any.
func resolveOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// iterState bundles what a sweep loop needs from Options.
type iterState struct {
	ctx     context.Context
	max     int
	onSweep func(Sweep)
	alg     string
}

func newIterState(o Options, alg string) *iterState {
	return &iterState{ctx: o.Ctx, max: o.MaxIterations, onSweep: o.OnSweep, alg: alg}
}

// sweep polls the context, checks the cap and emits a StageIterating event.
// iter is the number of sweeps already spent on block.
func (s *iterState) sweep(block, iter int) error {
	if err := s.ctx.Err(); err != nil {
		return canceledError(s.alg, err)
	}
	if iter >= s.max {
		return &ConvergenceError{Stage: s.alg, Index: block, Iterations: iter}
	}
	s.onSweep(Sweep{Algorithm: s.alg, Stage: StageIterating, Block: block, Iteration: iter + 1})

	return nil
}

// stalled reports a pass that could not change the iterate. Only a NaN that
// defeats the negligibility tests leads there.
func (s *iterState) stalled(block, iter int) error {
	return &ConvergenceError{Stage: s.alg, Index: block, Iterations: iter}
}

func (s *iterState) emit(stage SweepStage, block, iter int) {
	s.onSweep(Sweep{Algorithm: s.alg, Stage: stage, Block: block, Iteration: iter})
}
