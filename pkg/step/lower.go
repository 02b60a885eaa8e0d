// pkg/step/lower.go
package step

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/selector"
)

// LowerImputeConfig provides configuration options for lower-bound imputation
type LowerImputeConfig struct {
	// Source drives the imputation draws. Inject a seeded source for
	// deterministic output; nil uses the process-wide source.
	Source exprand.Source
}

// LowerImpute replaces left-censored measurements with random draws. Fit
// learns a per-column threshold, the training minimum; Transform redraws
// every value at or below the threshold from Uniform[0, threshold).
//
// Transform is intentionally non-idempotent: repeated runs over the same
// input produce different imputed values.
type LowerImpute struct {
	base
	cfg        LowerImputeConfig
	columns    []string // fit-time selection, in order
	thresholds map[string]float64
}

// NewLowerImpute creates a lower-bound imputation step using the
// process-wide random source.
func NewLowerImpute(sel selector.Selector, logger *zap.Logger) *LowerImpute {
	return NewLowerImputeWithConfig(sel, logger, LowerImputeConfig{})
}

// NewLowerImputeWithConfig creates a lower-bound imputation step with custom
// configuration.
func NewLowerImputeWithConfig(sel selector.Selector, logger *zap.Logger, cfg LowerImputeConfig) *LowerImpute {
	return &LowerImpute{
		base: newBase("impute_lower", sel, logger),
		cfg:  cfg,
	}
}

// Fit computes each selected column's minimum observed value, ignoring
// missing entries. A negative minimum aborts the fit: the step assumes
// non-negative, left-censored measurement data.
func (s *LowerImpute) Fit(d *dataset.Dataset, sch dataset.Schema) error {
	columns, err := s.sel.Resolve(sch)
	if err != nil {
		return fmt.Errorf("%s: %w", s.id, err)
	}

	thresholds := make(map[string]float64, len(columns))
	for _, name := range columns {
		info, _ := sch.Info(name)
		if info.Type != dataset.Numeric {
			return fmt.Errorf("%s: column %q is %s, not numeric: %w",
				s.id, name, info.Type, ErrTypeMismatch)
		}
		col, ok := d.Column(name)
		if !ok {
			return fmt.Errorf("%s: column %q: %w", s.id, name, ErrMissingColumn)
		}
		nc, isNum := col.(*dataset.NumericColumn)
		if !isNum {
			return fmt.Errorf("%s: column %q is %s, not numeric: %w",
				s.id, name, col.Type(), ErrTypeMismatch)
		}

		min := math.Inf(1)
		for _, v := range nc.Values {
			if !math.IsNaN(v) && v < min {
				min = v
			}
		}
		if math.IsInf(min, 1) {
			return fmt.Errorf("%s: column %q has no non-missing values", s.id, name)
		}
		if min < 0 {
			return fmt.Errorf("%s: column %q minimum is %g: %w",
				s.id, name, min, ErrNegativeThreshold)
		}
		thresholds[name] = min

		s.logger.Debug("learned censoring threshold",
			zap.String("step", s.id),
			zap.String("column", name),
			zap.Float64("threshold", min))
	}

	s.columns = columns
	s.thresholds = thresholds
	s.trained = true
	return nil
}

// Transform redraws values at or below each column's frozen threshold from
// Uniform[0, threshold); all other values pass through exactly.
func (s *LowerImpute) Transform(d *dataset.Dataset) (*dataset.Dataset, error) {
	if !s.trained {
		return nil, fmt.Errorf("%s: %w", s.id, ErrNotTrained)
	}

	out := d.Clone()
	for _, name := range s.columns {
		threshold := s.thresholds[name]
		col, ok := d.Column(name)
		if !ok {
			return nil, fmt.Errorf("%s: column %q: %w", s.id, name, ErrMissingColumn)
		}
		nc, ok := col.(*dataset.NumericColumn)
		if !ok {
			return nil, fmt.Errorf("%s: column %q is %s, not numeric: %w",
				s.id, name, col.Type(), ErrTypeMismatch)
		}

		dist := distuv.Uniform{Min: 0, Max: threshold, Src: s.cfg.Source}
		values := make([]float64, len(nc.Values))
		copy(values, nc.Values)
		for i, v := range values {
			if !math.IsNaN(v) && v <= threshold {
				if threshold == 0 {
					values[i] = 0
					continue
				}
				values[i] = dist.Rand()
			}
		}
		if err := out.Replace(name, &dataset.NumericColumn{Values: values}); err != nil {
			return nil, fmt.Errorf("%s: %w", s.id, err)
		}
	}
	return out, nil
}

// Summary returns one row per trained column with its threshold
func (s *LowerImpute) Summary() []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.columns))
	for _, name := range s.columns {
		rows = append(rows, SummaryRow{
			Column:    name,
			Statistic: "threshold",
			Value:     s.thresholds[name],
		})
	}
	return rows
}
