package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumeric(t *testing.T) {
	col := ParseNumeric([]string{"1.5", " 2 ", "NA", "oops", ""})

	assert.Equal(t, 1.5, col.Values[0])
	assert.Equal(t, 2.0, col.Values[1])
	assert.True(t, math.IsNaN(col.Values[2]))
	assert.True(t, math.IsNaN(col.Values[3]))
	assert.True(t, math.IsNaN(col.Values[4]))
}

func TestParseDate(t *testing.T) {
	col := ParseDate([]string{"2000-12-25", "2000-12-25 08:30:00", "null", "not a date"})

	assert.Equal(t, time.Date(2000, 12, 25, 0, 0, 0, 0, time.UTC), col.Values[0])
	assert.False(t, col.IsMissing(1))
	assert.True(t, col.IsMissing(2))
	assert.True(t, col.IsMissing(3))
}

func TestInferColumn(t *testing.T) {
	assert.Equal(t, Numeric, InferColumn([]string{"1", "2.5", "NA"}).Type())
	assert.Equal(t, Date, InferColumn([]string{"2001-01-01", "2002-03-04"}).Type())
	assert.Equal(t, Factor, InferColumn([]string{"veg", "omni"}).Type())
	// mixed numeric and text falls back to factor
	assert.Equal(t, Factor, InferColumn([]string{"1", "veg"}).Type())
}

func TestInferColumnFactorNormalizesMissing(t *testing.T) {
	col := InferColumn([]string{" veg ", "NULL", "omni"})
	fc, ok := col.(*FactorColumn)
	require.True(t, ok)

	assert.Equal(t, []string{"omni", "veg"}, fc.Levels())
	assert.True(t, fc.IsMissing(1))
}
