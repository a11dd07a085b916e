// SPDX-License-Identifier: MIT
package ops_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/linalg/matrix/ops"
)

var benchSizes = []int{16, 64, 128}

var (
	sinkF   float64
	sinkAny any
)

func BenchmarkNewLU(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randDense(b, n, n, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lu, err := ops.NewLU(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkAny = lu
			}
		})
	}
}

func BenchmarkNewQR(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randDense(b, 2*n, n, 2)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				qr, err := ops.NewQR(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkAny = qr
			}
		})
	}
}

func BenchmarkNewSVD(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randDense(b, n, n, 3)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d, err := ops.NewSVD(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = d.Norm2()
			}
		})
	}
}

func BenchmarkNewEigen(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("symmetric/n=%d", n), func(b *testing.B) {
			a := randSPD(b, n, 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				eg, err := ops.NewEigen(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkAny = eg
			}
		})
		b.Run(fmt.Sprintf("general/n=%d", n), func(b *testing.B) {
			a := randDense(b, n, n, 5)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				eg, err := ops.NewEigen(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkAny = eg
			}
		})
	}
}
