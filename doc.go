// Package linalg is a dense real linear-algebra toolkit: a row-major matrix
// type with the everyday kernels, and the classical factorizations built on it.
//
// What is inside?
//
//	matrix/     — Dense storage, views, validators, Add/Sub/Mul/Transpose/MatVec,
//	              Norm1/NormInf/NormF/Trace, numeric-policy options
//	matrix/ops/ — LU (partial pivoting), Householder QR, Cholesky, SVD,
//	              symmetric and general eigendecomposition, plus
//	              Solve/SolveTranspose/Inverse/Det/Rank/Cond/Norm2
//
// Why this shape?
//
//   - Every decomposition works on its own copy of the input and hands out
//     fresh matrices, so results are immutable and safe to share.
//   - Errors are sentinels matched with errors.Is; iterative phases report
//     non-convergence as *ops.ConvergenceError and honor a context.
//   - Inner loops run on gonum's blas64 over row-major buffers.
//
// Quick example:
//
//	a, _ := matrix.NewDenseRows([][]float64{{4, 1, 1}, {1, 2, 3}, {1, 3, 6}})
//	ch, _ := ops.NewCholesky(a)
//	if ch.IsSPD() {
//		inv, _ := ops.Inverse(a)
//		_ = inv
//	}
//
//	go get github.com/katalvlaran/linalg
package linalg
