package optimize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaximizeParabola(t *testing.T) {
	res, err := Maximize(func(x float64) float64 {
		return -(x - 2) * (x - 2)
	}, -5, 5, 1e-8)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.InDelta(t, 2.0, res.X, 1e-6)
	assert.InDelta(t, 0.0, res.Value, 1e-10)
}

func TestMaximizeNonSymmetric(t *testing.T) {
	// maximum of x*exp(-x) is at x = 1
	res, err := Maximize(func(x float64) float64 {
		return x * math.Exp(-x)
	}, 0, 10, 0)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.X, 1e-4)
	assert.InDelta(t, math.Exp(-1), res.Value, 1e-8)
}

func TestMaximizeMonotoneLandsAtBoundary(t *testing.T) {
	res, err := Maximize(func(x float64) float64 {
		return x
	}, -5, 5, 0)
	require.NoError(t, err)

	assert.True(t, res.AtBoundary(0.001), "monotone objective should push X to the edge, got %g", res.X)
}

func TestMaximizeInteriorNotAtBoundary(t *testing.T) {
	res, err := Maximize(func(x float64) float64 {
		return -(x * x)
	}, -5, 5, 0)
	require.NoError(t, err)

	assert.False(t, res.AtBoundary(0.001))
}

func TestMaximizeRejectsBadInput(t *testing.T) {
	_, err := Maximize(nil, 0, 1, 0)
	assert.Error(t, err)

	_, err = Maximize(func(x float64) float64 { return x }, 1, 1, 0)
	assert.Error(t, err)

	_, err = Maximize(func(x float64) float64 { return x }, 2, 1, 0)
	assert.Error(t, err)
}
