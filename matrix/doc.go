// SPDX-License-Identifier: MIT

// Package matrix provides the dense real-matrix type and the basic kernels the
// factorization suite in matrix/ops is built on.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with error-returning At/Set, views,
//     index-set submatrices (Induced) and a configurable NaN/Inf policy.
//   - Constructors: NewDense, NewDenseFrom (flat row-major slice),
//     NewDenseRows (2-D literal), NewIdentity, Identity (rectangular).
//   - Kernels: Add, Sub, Mul, Transpose, Scale, Hadamard, MatVec. Dense×Dense
//     products run on the gonum blas64 implementation.
//   - Norms: Norm1, NormInf, NormF and Trace. The 2-norm needs singular values
//     and is provided by matrix/ops.
//   - Validators shared by every package in the module (ValidateSquare,
//     ValidateSymmetric, ...), returning sentinel errors matched with errors.Is.
//
// Flatten hands out a private row-major copy of any Matrix; every
// decomposition in matrix/ops starts from such a copy, so inputs are never
// mutated or aliased.
//
// See the examples in this package and in matrix/ops for usage patterns.
package matrix
