// pkg/step/dummy.go
package step

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/selector"
)

// MissingPolicy controls how indicator rows are filled when a value is
// missing or was never seen in training. It is an explicit transform
// parameter, never an ambient toggle.
type MissingPolicy int

const (
	// MissingAsNaN propagates missing values: every indicator column of
	// the row becomes NaN. This is the default.
	MissingAsNaN MissingPolicy = iota
	// MissingAsZero treats missing values like the reference level: every
	// indicator column of the row becomes 0.
	MissingAsZero
)

// DummyConfig provides configuration options for dummy-variable expansion
type DummyConfig struct {
	// Naming produces the generated column names; DefaultNaming when nil
	Naming NamingFunc
	// MissingPolicy controls indicator values for missing or unseen levels
	MissingPolicy MissingPolicy
}

// DefaultDummyConfig returns the default configuration
func DefaultDummyConfig() DummyConfig {
	return DummyConfig{
		Naming:        DefaultNaming,
		MissingPolicy: MissingAsNaN,
	}
}

// vocabulary is the frozen per-column encoding state. The training levels
// are persisted verbatim: once the original column is replaced by numeric
// indicators nothing else remembers them.
type vocabulary struct {
	levels   []string
	ordered  bool
	contrast *mat.Dense // polynomial basis, ordered factors only
}

// Dummy converts factor columns into numeric contrast columns: simple 0/1
// indicators with a dropped reference level for unordered factors,
// orthogonal polynomial contrasts for ordered ones.
type Dummy struct {
	base
	cfg     DummyConfig
	columns []string // fit-time selection, in order
	vocab   map[string]vocabulary
}

// NewDummy creates a dummy-encoding step with default configuration
func NewDummy(sel selector.Selector, logger *zap.Logger) *Dummy {
	return NewDummyWithConfig(sel, logger, DefaultDummyConfig())
}

// NewDummyWithConfig creates a dummy-encoding step with custom configuration
func NewDummyWithConfig(sel selector.Selector, logger *zap.Logger, cfg DummyConfig) *Dummy {
	if cfg.Naming == nil {
		cfg.Naming = DefaultNaming
	}
	return &Dummy{
		base: newBase("dummy", sel, logger),
		cfg:  cfg,
	}
}

// Fit resolves the selection and freezes each selected column's level
// vocabulary and ordered flag. Any non-factor column aborts the whole fit.
func (s *Dummy) Fit(d *dataset.Dataset, sch dataset.Schema) error {
	columns, err := s.sel.Resolve(sch)
	if err != nil {
		return fmt.Errorf("%s: %w", s.id, err)
	}

	vocab := make(map[string]vocabulary, len(columns))
	for _, name := range columns {
		info, _ := sch.Info(name)
		if info.Type != dataset.Factor {
			return fmt.Errorf("%s: column %q is %s, not factor: %w",
				s.id, name, info.Type, ErrTypeMismatch)
		}
		col, ok := d.Column(name)
		if !ok {
			return fmt.Errorf("%s: column %q: %w", s.id, name, ErrMissingColumn)
		}
		fc, isFactor := col.(*dataset.FactorColumn)
		if !isFactor {
			return fmt.Errorf("%s: column %q is %s, not factor: %w",
				s.id, name, col.Type(), ErrTypeMismatch)
		}

		v := vocabulary{levels: fc.Levels(), ordered: fc.Ordered()}
		if v.ordered && len(v.levels) >= 2 {
			basis, err := polyContrast(len(v.levels))
			if err != nil {
				return fmt.Errorf("%s: column %q: %w", s.id, name, err)
			}
			v.contrast = basis
		}
		vocab[name] = v

		s.logger.Debug("learned level vocabulary",
			zap.String("step", s.id),
			zap.String("column", name),
			zap.Int("levels", len(v.levels)),
			zap.Bool("ordered", v.ordered))
	}

	s.columns = columns
	s.vocab = vocab
	s.trained = true
	return nil
}

// Transform expands each trained column into its contrast columns. Incoming
// values are re-mapped onto the stored vocabulary, so a level never seen in
// training becomes missing. Generated columns are appended after the
// untouched columns; the original factor columns are dropped.
func (s *Dummy) Transform(d *dataset.Dataset) (*dataset.Dataset, error) {
	if !s.trained {
		return nil, fmt.Errorf("%s: %w", s.id, ErrNotTrained)
	}

	out := d.Clone()
	for _, name := range s.columns {
		v := s.vocab[name]
		if len(v.levels) == 0 {
			return nil, fmt.Errorf("%s: column %q: %w", s.id, name, ErrMissingVocabulary)
		}
		col, ok := d.Column(name)
		if !ok {
			return nil, fmt.Errorf("%s: column %q: %w", s.id, name, ErrMissingColumn)
		}

		codes, err := s.remap(col, v)
		if err != nil {
			return nil, fmt.Errorf("%s: column %q: %w", s.id, name, err)
		}

		names, encoded, err := s.expand(name, codes, v)
		if err != nil {
			return nil, fmt.Errorf("%s: column %q: %w", s.id, name, err)
		}

		if err := out.Drop(name); err != nil {
			return nil, fmt.Errorf("%s: %w", s.id, err)
		}
		for i, newName := range names {
			if err := out.Append(newName, encoded[i]); err != nil {
				return nil, fmt.Errorf("%s: %w", s.id, err)
			}
		}
	}
	return out, nil
}

// remap projects incoming raw values onto the stored training vocabulary
func (s *Dummy) remap(col dataset.Column, v vocabulary) ([]int, error) {
	fc, ok := col.(*dataset.FactorColumn)
	if !ok {
		return nil, fmt.Errorf("got %s, want factor: %w", col.Type(), ErrTypeMismatch)
	}
	index := make(map[string]int, len(v.levels))
	for i, level := range v.levels {
		index[level] = i
	}
	codes := make([]int, fc.Len())
	for i := 0; i < fc.Len(); i++ {
		codes[i] = -1
		if raw, ok := fc.Value(i); ok {
			if code, ok := index[raw]; ok {
				codes[i] = code
			}
		}
	}
	return codes, nil
}

// expand builds the k-1 contrast columns for one trained column
func (s *Dummy) expand(name string, codes []int, v vocabulary) ([]string, []dataset.Column, error) {
	k := len(v.levels)
	names := s.cfg.Naming(name, v.levels[1:], v.ordered)
	if len(names) != k-1 {
		return nil, nil, fmt.Errorf("naming function returned %d names, want %d", len(names), k-1)
	}

	missing := math.NaN()
	if s.cfg.MissingPolicy == MissingAsZero {
		missing = 0
	}

	cols := make([]dataset.Column, k-1)
	for j := 0; j < k-1; j++ {
		values := make([]float64, len(codes))
		for i, code := range codes {
			switch {
			case code < 0:
				values[i] = missing
			case v.ordered:
				values[i] = v.contrast.At(code, j)
			case code == j+1:
				values[i] = 1
			default:
				values[i] = 0
			}
		}
		cols[j] = &dataset.NumericColumn{Values: values}
	}
	return names, cols, nil
}

// Summary returns one row per trained column with its level vocabulary
func (s *Dummy) Summary() []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.columns))
	for _, name := range s.columns {
		v := s.vocab[name]
		stat := "levels"
		if v.ordered {
			stat = "ordered levels"
		}
		rows = append(rows, SummaryRow{
			Column:    name,
			Statistic: stat,
			Value:     float64(len(v.levels)),
			Detail:    strings.Join(v.levels, ","),
		})
	}
	return rows
}
