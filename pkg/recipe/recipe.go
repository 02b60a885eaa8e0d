// pkg/recipe/recipe.go
package recipe

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/step"
)

// ErrNotPrepped indicates Bake was called before Prep
var ErrNotPrepped = errors.New("recipe is not prepped")

// Recipe sequences steps over a dataset: Prep fits each step against the
// training data and threads the transformed result into the next step; Bake
// replays the trained transforms over any dataset. Steps run strictly
// sequentially.
type Recipe struct {
	steps   []step.Step
	roles   map[string]string
	logger  *zap.Logger
	prepped bool
}

// New creates an empty recipe. A nil logger disables logging.
func New(logger *zap.Logger) *Recipe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recipe{
		roles:  make(map[string]string),
		logger: logger,
	}
}

// Add appends a step to the sequence and returns the recipe for chaining
func (r *Recipe) Add(s step.Step) *Recipe {
	r.steps = append(r.steps, s)
	return r
}

// SetRole assigns a modeling role to a column so role-based selectors can
// find it. Roles are applied to the schema before every fit.
func (r *Recipe) SetRole(column, role string) *Recipe {
	r.roles[column] = role
	return r
}

// Steps returns the step sequence in order
func (r *Recipe) Steps() []step.Step {
	out := make([]step.Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Prepped reports whether every step has been trained
func (r *Recipe) Prepped() bool { return r.prepped }

// Prep fits each step against the training data in order, feeding every
// step's transformed output into the next. It returns the fully transformed
// training dataset. Any fit or transform failure aborts the whole prep.
func (r *Recipe) Prep(training *dataset.Dataset) (*dataset.Dataset, error) {
	cur := training
	for i, s := range r.steps {
		sch := dataset.SchemaOf(cur)
		for column, role := range r.roles {
			// roles only apply to columns still present at this step
			_ = sch.SetRole(column, role)
		}

		if err := s.Fit(cur, sch); err != nil {
			return nil, fmt.Errorf("prep step %d (%s): %w", i+1, s.ID(), err)
		}
		next, err := s.Transform(cur)
		if err != nil {
			return nil, fmt.Errorf("prep step %d (%s): %w", i+1, s.ID(), err)
		}

		r.logger.Debug("prepped step",
			zap.Int("position", i+1),
			zap.String("step", s.ID()),
			zap.Int("columns", next.Width()),
			zap.Int("rows", next.Rows()))
		cur = next
	}
	r.prepped = true
	return cur, nil
}

// Bake applies the trained transforms in order to a new dataset
func (r *Recipe) Bake(d *dataset.Dataset) (*dataset.Dataset, error) {
	if !r.prepped {
		return nil, ErrNotPrepped
	}
	cur := d
	for i, s := range r.steps {
		next, err := s.Transform(cur)
		if err != nil {
			return nil, fmt.Errorf("bake step %d (%s): %w", i+1, s.ID(), err)
		}
		cur = next
	}
	return cur, nil
}

// StepSummary pairs a step's identity with its learned-parameter rows
type StepSummary struct {
	ID   string
	Name string
	Rows []step.SummaryRow
}

// Summary returns every step's summary in sequence order
func (r *Recipe) Summary() []StepSummary {
	out := make([]StepSummary, 0, len(r.steps))
	for _, s := range r.steps {
		out = append(out, StepSummary{ID: s.ID(), Name: s.Name(), Rows: s.Summary()})
	}
	return out
}
