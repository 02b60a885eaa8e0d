package step

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	exprand "golang.org/x/exp/rand"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/selector"
)

func seededLowerImpute(sel selector.Selector, seed uint64) *LowerImpute {
	return NewLowerImputeWithConfig(sel, nil, LowerImputeConfig{
		Source: exprand.NewSource(seed),
	})
}

func TestLowerImputeLearnsThreshold(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.Append("lab", dataset.NewNumeric(
		[]float64{0.5, 2.1, math.NaN(), 0.5, 4.0})))

	s := seededLowerImpute(selector.Columns("lab"), 1)
	require.NoError(t, s.Fit(d, dataset.SchemaOf(d)))

	rows := s.Summary()
	require.Len(t, rows, 1)
	assert.Equal(t, "lab", rows[0].Column)
	assert.Equal(t, "threshold", rows[0].Statistic)
	assert.Equal(t, 0.5, rows[0].Value)
}

func TestLowerImputeTransformBounds(t *testing.T) {
	values := []float64{0.5, 0.5, 2.1, 0.3, 4.0, math.NaN()}
	d := dataset.New()
	require.NoError(t, d.Append("lab", dataset.NewNumeric(values)))

	s := seededLowerImpute(selector.Columns("lab"), 7)
	require.NoError(t, s.Fit(d, dataset.SchemaOf(d)))

	out, err := s.Transform(d)
	require.NoError(t, err)
	got := numericValues(t, out, "lab")

	threshold := 0.3
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			assert.True(t, math.IsNaN(got[i]), "row %d", i)
		case v <= threshold:
			assert.GreaterOrEqual(t, got[i], 0.0, "row %d", i)
			assert.Less(t, got[i], threshold, "row %d", i)
		default:
			assert.Equal(t, v, got[i], "row %d should pass through exactly", i)
		}
	}

	// the input dataset is untouched
	assert.Equal(t, values[3], numericValues(t, d, "lab")[3])
}

func TestLowerImputeIsRandomizedButBounded(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.Append("lab", dataset.NewNumeric(
		[]float64{0.2, 0.2, 0.2, 0.2, 5.0})))

	s := seededLowerImpute(selector.Columns("lab"), 11)
	require.NoError(t, s.Fit(d, dataset.SchemaOf(d)))

	first, err := s.Transform(d)
	require.NoError(t, err)
	second, err := s.Transform(d)
	require.NoError(t, err)

	a := numericValues(t, first, "lab")
	b := numericValues(t, second, "lab")
	assert.NotEqual(t, a[:4], b[:4], "repeated transforms should redraw")

	// values above the threshold never move across transforms
	assert.Equal(t, 5.0, a[4])
	assert.Equal(t, 5.0, b[4])
	for _, drawn := range [][]float64{a[:4], b[:4]} {
		for _, v := range drawn {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 0.2)
		}
	}
}

func TestLowerImputeDeterministicWithSameSeed(t *testing.T) {
	build := func() *dataset.Dataset {
		d := dataset.New()
		require.NoError(t, d.Append("lab", dataset.NewNumeric(
			[]float64{0.1, 0.1, 0.1, 3.0})))
		return d
	}

	run := func() []float64 {
		d := build()
		s := seededLowerImpute(selector.Columns("lab"), 99)
		require.NoError(t, s.Fit(d, dataset.SchemaOf(d)))
		out, err := s.Transform(d)
		require.NoError(t, err)
		return numericValues(t, out, "lab")
	}

	assert.Equal(t, run(), run())
}

func TestLowerImputeZeroThreshold(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.Append("lab", dataset.NewNumeric([]float64{0, 1, 2})))

	s := seededLowerImpute(selector.Columns("lab"), 3)
	require.NoError(t, s.Fit(d, dataset.SchemaOf(d)))

	out, err := s.Transform(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, numericValues(t, out, "lab"))
}

func TestLowerImputeNegativeMinimumFails(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.Append("lab", dataset.NewNumeric([]float64{-0.1, 2, 3})))

	s := seededLowerImpute(selector.Columns("lab"), 3)
	err := s.Fit(d, dataset.SchemaOf(d))
	assert.ErrorIs(t, err, ErrNegativeThreshold)
	assert.False(t, s.Trained())
}

func TestLowerImputeRejectsNonNumeric(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.Append("diet", dataset.NewFactor([]string{"veg"})))

	s := seededLowerImpute(selector.Columns("diet"), 3)
	assert.ErrorIs(t, s.Fit(d, dataset.SchemaOf(d)), ErrTypeMismatch)
}

func TestLowerImputeAllMissingFails(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.Append("lab", dataset.NewNumeric(
		[]float64{math.NaN(), math.NaN()})))

	s := seededLowerImpute(selector.Columns("lab"), 3)
	assert.Error(t, s.Fit(d, dataset.SchemaOf(d)))
}

func TestLowerImputeTransformBeforeFit(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.Append("lab", dataset.NewNumeric([]float64{1})))

	s := seededLowerImpute(selector.Columns("lab"), 3)
	_, err := s.Transform(d)
	assert.ErrorIs(t, err, ErrNotTrained)
}
