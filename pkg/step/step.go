// pkg/step/step.go
package step

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/selector"
)

// Step is one stage of a feature-engineering pipeline. Fit learns
// parameters from a training dataset and its schema; Transform applies the
// frozen parameters to any dataset with compatible columns. Transform on an
// untrained step fails with ErrNotTrained.
type Step interface {
	// ID is a unique instance identifier, e.g. "dummy_4f9b21ac"
	ID() string
	// Name is the step kind, e.g. "dummy"
	Name() string
	Fit(d *dataset.Dataset, s dataset.Schema) error
	Transform(d *dataset.Dataset) (*dataset.Dataset, error)
	Trained() bool
	// Summary returns one row per affected column for inspection
	Summary() []SummaryRow
}

// SummaryRow describes one learned parameter for printing and inspection
type SummaryRow struct {
	Column    string
	Statistic string  // e.g. "levels", "threshold", "lambda"
	Value     float64 // NaN when the statistic is not scalar
	Detail    string  // free-form, e.g. the level vocabulary
}

// base carries the fields every step shares
type base struct {
	id      string
	name    string
	sel     selector.Selector
	logger  *zap.Logger
	trained bool
}

func newBase(name string, sel selector.Selector, logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{
		id:     name + "_" + shortID(),
		name:   name,
		sel:    sel,
		logger: logger,
	}
}

func (b *base) ID() string    { return b.id }
func (b *base) Name() string  { return b.name }
func (b *base) Trained() bool { return b.trained }

// shortID returns an 8-character random identifier
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
