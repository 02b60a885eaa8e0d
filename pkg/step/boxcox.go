// pkg/step/boxcox.go
package step

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/optimize"
	"github.com/prepline/prepline/pkg/selector"
)

// BoxCoxConfig provides configuration options for Box-Cox estimation
type BoxCoxConfig struct {
	// Limits is the closed search interval for lambda
	Limits [2]float64
	// NUnique is the minimum number of distinct values a column needs to
	// qualify for estimation
	NUnique int
	// Tol is the zero-lambda tolerance; it also defines how close to the
	// interval boundary a solution may land before being rejected
	Tol float64
}

// DefaultBoxCoxConfig returns the default configuration
func DefaultBoxCoxConfig() BoxCoxConfig {
	return BoxCoxConfig{
		Limits:  [2]float64{-5, 5},
		NUnique: 5,
		Tol:     0.001,
	}
}

// BoxCox learns a power-transform exponent per numeric column by maximizing
// the profile log-likelihood over a bounded interval. Columns that do not
// qualify (too few distinct values, non-positive support, or a boundary
// solution) are absent from the learned mapping and pass through Transform
// unchanged.
type BoxCox struct {
	base
	cfg     BoxCoxConfig
	columns []string // fit-time selection, in order
	lambdas map[string]float64
}

// NewBoxCox creates a Box-Cox step with default configuration
func NewBoxCox(sel selector.Selector, logger *zap.Logger) *BoxCox {
	return NewBoxCoxWithConfig(sel, logger, DefaultBoxCoxConfig())
}

// NewBoxCoxWithConfig creates a Box-Cox step with custom configuration
func NewBoxCoxWithConfig(sel selector.Selector, logger *zap.Logger, cfg BoxCoxConfig) *BoxCox {
	def := DefaultBoxCoxConfig()
	if cfg.NUnique <= 0 {
		cfg.NUnique = def.NUnique
	}
	if cfg.Tol <= 0 {
		cfg.Tol = def.Tol
	}
	if cfg.Limits[0] == 0 && cfg.Limits[1] == 0 {
		cfg.Limits = def.Limits
	}
	return &BoxCox{
		base: newBase("boxcox", sel, logger),
		cfg:  cfg,
	}
}

// Fit estimates lambda for every selected column that qualifies
func (s *BoxCox) Fit(d *dataset.Dataset, sch dataset.Schema) error {
	columns, err := s.sel.Resolve(sch)
	if err != nil {
		return fmt.Errorf("%s: %w", s.id, err)
	}

	lambdas := make(map[string]float64)
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

		lambda, reason, err := s.estimate(nc.Values)
		if err != nil {
			return fmt.Errorf("%s: column %q: %w", s.id, name, err)
		}
		if reason != "" {
			s.logger.Warn("column disqualified from Box-Cox estimation",
				zap.String("step", s.id),
				zap.String("column", name),
				zap.String("reason", reason))
			continue
		}
		lambdas[name] = lambda

		s.logger.Debug("estimated lambda",
			zap.String("step", s.id),
			zap.String("column", name),
			zap.Float64("lambda", lambda))
	}

	s.columns = columns
	s.lambdas = lambdas
	s.trained = true
	return nil
}

// estimate returns the maximum-likelihood lambda for one column, or a
// non-empty disqualification reason.
func (s *BoxCox) estimate(values []float64) (float64, string, error) {
	x := make([]float64, 0, len(values))
	distinct := make(map[float64]struct{})
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v <= 0 {
			return 0, "non-positive values", nil
		}
		x = append(x, v)
		distinct[v] = struct{}{}
	}
	if len(distinct) < s.cfg.NUnique {
		return 0, fmt.Sprintf("fewer than %d distinct values", s.cfg.NUnique), nil
	}

	low, high := s.cfg.Limits[0], s.cfg.Limits[1]
	res, err := optimize.Maximize(func(lambda float64) float64 {
		return boxCoxLogLik(x, lambda, s.cfg.Tol)
	}, low, high, 0)
	if err != nil {
		return 0, "", err
	}
	if res.AtBoundary(s.cfg.Tol) {
		return 0, fmt.Sprintf("optimum at search boundary [%g, %g]", low, high), nil
	}
	return res.X, "", nil
}

// boxCoxLogLik is the profile log-likelihood of lambda for strictly
// positive data, up to an additive constant. Near lambda = 0 the transform
// is replaced by its log limit to avoid the removable singularity.
func boxCoxLogLik(x []float64, lambda, tol float64) float64 {
	n := float64(len(x))

	logSum := 0.0
	for _, v := range x {
		logSum += math.Log(v)
	}
	gm := math.Exp(logSum / n)

	z := make([]float64, len(x))
	if math.Abs(lambda) < tol {
		scale := math.Pow(gm, lambda-1)
		for i, v := range x {
			z[i] = math.Log(v) / scale
		}
	} else {
		denom := lambda * math.Pow(gm, lambda-1)
		for i, v := range x {
			z[i] = (math.Pow(v, lambda) - 1) / denom
		}
	}

	// population variance of the rescaled data
	v := stat.Variance(z, nil) * (n - 1) / n
	return -0.5 * n * math.Log(v)
}

// Transform applies each stored lambda element-wise: log(x) when lambda is
// within tolerance of zero, (x^lambda - 1)/lambda otherwise. Columns without
// a stored lambda pass through unmodified; an empty learned mapping returns
// the dataset unchanged.
func (s *BoxCox) Transform(d *dataset.Dataset) (*dataset.Dataset, error) {
	if !s.trained {
		return nil, fmt.Errorf("%s: %w", s.id, ErrNotTrained)
	}
	if len(s.lambdas) == 0 {
		return d, nil
	}

	out := d.Clone()
	for _, name := range s.columns {
		lambda, ok := s.lambdas[name]
		if !ok {
			continue
		}
		col, found := d.Column(name)
		if !found {
			return nil, fmt.Errorf("%s: column %q: %w", s.id, name, ErrMissingColumn)
		}
		nc, isNum := col.(*dataset.NumericColumn)
		if !isNum {
			return nil, fmt.Errorf("%s: column %q is %s, not numeric: %w",
				s.id, name, col.Type(), ErrTypeMismatch)
		}

		values := make([]float64, len(nc.Values))
		for i, v := range nc.Values {
			values[i] = Estimate(v, lambda, s.cfg.Tol)
		}
		if err := out.Replace(name, &dataset.NumericColumn{Values: values}); err != nil {
			return nil, fmt.Errorf("%s: %w", s.id, err)
		}
	}
	return out, nil
}

// Estimate applies the Box-Cox transform with the given lambda to a single
// value. NaN passes through.
func Estimate(x, lambda, tol float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	if math.Abs(lambda) < tol {
		return math.Log(x)
	}
	return (math.Pow(x, lambda) - 1) / lambda
}

// Summary returns one row per column with a learned lambda
func (s *BoxCox) Summary() []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.lambdas))
	for _, name := range s.columns {
		lambda, ok := s.lambdas[name]
		if !ok {
			continue
		}
		rows = append(rows, SummaryRow{
			Column:    name,
			Statistic: "lambda",
			Value:     lambda,
		})
	}
	return rows
}
