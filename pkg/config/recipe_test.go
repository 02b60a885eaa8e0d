package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/holiday"
)

const sampleRecipe = `
steps:
  - type: holiday
    columns: [admitted]
    holidays: [ChristmasDay, NewYearsDay]
  - type: impute_lower
    columns: [lab]
  - type: boxcox
    columns: [income]
    limits: [-3, 3]
    nunique: 4
  - type: dummy
    columns: [diet]
`

func TestParseRecipe(t *testing.T) {
	r, err := ParseRecipe([]byte(sampleRecipe), nil)
	require.NoError(t, err)

	steps := r.Steps()
	require.Len(t, steps, 4)
	assert.Equal(t, "holiday", steps[0].Name())
	assert.Equal(t, "impute_lower", steps[1].Name())
	assert.Equal(t, "boxcox", steps[2].Name())
	assert.Equal(t, "dummy", steps[3].Name())
}

func TestParseRecipeEndToEnd(t *testing.T) {
	r, err := ParseRecipe([]byte(sampleRecipe), nil)
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Append("diet", dataset.NewFactor(
		[]string{"veg", "omni", "vegan", "omni"})))
	require.NoError(t, d.Append("income", dataset.NewNumeric(
		[]float64{30000, 42000, 39000, 55000})))
	require.NoError(t, d.Append("lab", dataset.NewNumeric(
		[]float64{0.5, 1.5, 0.5, 2.0})))
	require.NoError(t, d.Append("admitted", dataset.NewDate([]time.Time{
		time.Date(2000, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 12, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, 2, 1, 0, 0, 0, 0, time.UTC),
	})))

	prepped, err := r.Prep(d)
	require.NoError(t, err)
	assert.True(t, prepped.Has("admitted_ChristmasDay"))
	assert.False(t, prepped.Has("diet"))
}

func TestParseRecipeUnknownStepType(t *testing.T) {
	_, err := ParseRecipe([]byte("steps:\n  - type: center\n    columns: [x]\n"), nil)
	assert.Error(t, err)
}

func TestParseRecipeUnknownHoliday(t *testing.T) {
	_, err := ParseRecipe([]byte(
		"steps:\n  - type: holiday\n    columns: [d]\n    holidays: [FestivusDay]\n"), nil)
	assert.ErrorIs(t, err, holiday.ErrUnknownHoliday)
}

func TestParseRecipeSelectorRules(t *testing.T) {
	_, err := ParseRecipe([]byte(
		"steps:\n  - type: dummy\n    columns: [a]\n    role: predictor\n"), nil)
	assert.Error(t, err, "columns and role are mutually exclusive")

	_, err = ParseRecipe([]byte("steps:\n  - type: dummy\n"), nil)
	assert.Error(t, err, "a selection is required")
}

func TestParseRecipeBadLimits(t *testing.T) {
	_, err := ParseRecipe([]byte(
		"steps:\n  - type: boxcox\n    columns: [x]\n    limits: [1]\n"), nil)
	assert.Error(t, err)
}

func TestParseRecipeEmpty(t *testing.T) {
	_, err := ParseRecipe([]byte("steps: []\n"), nil)
	assert.Error(t, err)

	_, err = ParseRecipe([]byte("steps: ["), nil)
	assert.Error(t, err)
}

func TestLoadRecipeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRecipe), 0o644))

	r, err := LoadRecipeFile(path, nil)
	require.NoError(t, err)
	assert.Len(t, r.Steps(), 4)

	_, err = LoadRecipeFile(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}
