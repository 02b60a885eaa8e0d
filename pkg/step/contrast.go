// pkg/step/contrast.go
package step

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// polyContrast builds the k x (k-1) orthogonal polynomial contrast basis
// for an ordered factor with k levels: one column per polynomial degree
// 1..k-1, each orthogonal to the intercept and scaled to unit length.
// The basis comes from the QR decomposition of the Vandermonde matrix of
// centered level scores.
func polyContrast(k int) (*mat.Dense, error) {
	if k < 2 {
		return nil, fmt.Errorf("polynomial contrasts need at least 2 levels, got %d", k)
	}

	// centered scores 1..k
	mean := float64(k+1) / 2
	vand := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		y := float64(i+1) - mean
		for j := 0; j < k; j++ {
			vand.Set(i, j, math.Pow(y, float64(j)))
		}
	}

	var qr mat.QR
	qr.Factorize(vand)
	var q, r mat.Dense
	qr.QTo(&q)
	qr.RTo(&r)

	// raw_j = Q_j * R[j,j], then normalize each column; the intercept
	// column (degree 0) is dropped
	out := mat.NewDense(k, k-1, nil)
	for j := 1; j < k; j++ {
		rjj := r.At(j, j)
		var norm float64
		col := make([]float64, k)
		for i := 0; i < k; i++ {
			col[i] = q.At(i, j) * rjj
			norm += col[i] * col[i]
		}
		norm = math.Sqrt(norm)
		for i := 0; i < k; i++ {
			out.Set(i, j-1, col[i]/norm)
		}
	}
	return out, nil
}
