// pkg/step/holiday.go
package step

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/prepline/prepline/pkg/dataset"
	"github.com/prepline/prepline/pkg/holiday"
	"github.com/prepline/prepline/pkg/selector"
)

// Holiday derives binary holiday indicator columns from date columns. The
// original date columns are retained, unlike encoding steps that consume
// their input.
type Holiday struct {
	base
	holidays []string // configured order is preserved in the output
	columns  []string // fit-time selection, in order
}

// NewHoliday creates a holiday-feature step. The holiday names are validated
// against the supported registry immediately, before any data is touched.
func NewHoliday(sel selector.Selector, holidays []string, logger *zap.Logger) (*Holiday, error) {
	if len(holidays) == 0 {
		return nil, fmt.Errorf("at least one holiday is required")
	}
	for _, name := range holidays {
		if !holiday.IsSupported(name) {
			return nil, fmt.Errorf("%w: %q (supported: %s)",
				holiday.ErrUnknownHoliday, name, strings.Join(holiday.Supported(), ", "))
		}
	}
	names := make([]string, len(holidays))
	copy(names, holidays)
	return &Holiday{
		base:     newBase("holiday", sel, logger),
		holidays: names,
	}, nil
}

// Fit resolves the selection and freezes the column names. There is nothing
// else to learn: the holiday list is a hyperparameter.
func (s *Holiday) Fit(d *dataset.Dataset, sch dataset.Schema) error {
	columns, err := s.sel.Resolve(sch)
	if err != nil {
		return fmt.Errorf("%s: %w", s.id, err)
	}
	for _, name := range columns {
		info, _ := sch.Info(name)
		if info.Type != dataset.Date {
			return fmt.Errorf("%s: column %q is %s, not date: %w",
				s.id, name, info.Type, ErrTypeMismatch)
		}
	}
	s.columns = columns
	s.trained = true

	s.logger.Debug("resolved holiday columns",
		zap.String("step", s.id),
		zap.Strings("columns", columns),
		zap.Strings("holidays", s.holidays))
	return nil
}

// Transform appends one 0/1 column per (date column, holiday) pair, named
// "<column>_<holiday>". For each input column, in selection order, its
// holiday columns appear contiguously in configured-holiday order, followed
// by all original columns.
func (s *Holiday) Transform(d *dataset.Dataset) (*dataset.Dataset, error) {
	if !s.trained {
		return nil, fmt.Errorf("%s: %w", s.id, ErrNotTrained)
	}

	out := dataset.New()
	for _, name := range s.columns {
		col, ok := d.Column(name)
		if !ok {
			return nil, fmt.Errorf("%s: column %q: %w", s.id, name, ErrMissingColumn)
		}
		dc, ok := col.(*dataset.DateColumn)
		if !ok {
			return nil, fmt.Errorf("%s: column %q is %s, not date: %w",
				s.id, name, col.Type(), ErrTypeMismatch)
		}

		years := distinctYears(dc)
		for _, h := range s.holidays {
			observed, err := holiday.ObservancesForYears(h, years)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.id, err)
			}
			values := make([]float64, dc.Len())
			for i := range dc.Values {
				if dc.IsMissing(i) {
					values[i] = math.NaN()
					continue
				}
				if _, hit := observed[holiday.Normalize(dc.Values[i])]; hit {
					values[i] = 1
				}
			}
			if err := out.Append(name+"_"+h, &dataset.NumericColumn{Values: values}); err != nil {
				return nil, fmt.Errorf("%s: %w", s.id, err)
			}
		}
	}

	// originals come through unchanged, date columns included
	for _, name := range d.Names() {
		col, _ := d.Column(name)
		if err := out.Append(name, col); err != nil {
			return nil, fmt.Errorf("%s: %w", s.id, err)
		}
	}
	return out, nil
}

// Summary returns one row per trained column listing the configured holidays
func (s *Holiday) Summary() []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.columns))
	for _, name := range s.columns {
		rows = append(rows, SummaryRow{
			Column:    name,
			Statistic: "holidays",
			Value:     float64(len(s.holidays)),
			Detail:    strings.Join(s.holidays, ","),
		})
	}
	return rows
}

// distinctYears collects the sorted distinct years among non-missing dates
func distinctYears(dc *dataset.DateColumn) []int {
	seen := make(map[int]struct{})
	for i := range dc.Values {
		if !dc.IsMissing(i) {
			seen[dc.Values[i].UTC().Year()] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
