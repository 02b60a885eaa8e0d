// pkg/dataset/column.go
package dataset

import (
	"math"
	"sort"
	"time"
)

// Type identifies the kind of values a column holds
type Type int

const (
	Unknown Type = iota
	Numeric
	Factor
	Date
)

// String returns a string representation of the column type
func (t Type) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Factor:
		return "factor"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// Column is a homogeneously typed sequence of values.
// Columns are treated as immutable once attached to a Dataset; transforms
// that change values build a fresh column and swap it in.
type Column interface {
	Len() int
	Type() Type
	Clone() Column
	IsMissing(i int) bool
}

// NumericColumn holds float64 values. NaN marks a missing entry.
type NumericColumn struct {
	Values []float64
}

// NewNumeric creates a numeric column from a copy of values
func NewNumeric(values []float64) *NumericColumn {
	v := make([]float64, len(values))
	copy(v, values)
	return &NumericColumn{Values: v}
}

func (c *NumericColumn) Len() int  { return len(c.Values) }
func (c *NumericColumn) Type() Type { return Numeric }

func (c *NumericColumn) Clone() Column {
	return NewNumeric(c.Values)
}

func (c *NumericColumn) IsMissing(i int) bool {
	return math.IsNaN(c.Values[i])
}

// FactorColumn holds categorical values as integer codes into a level
// vocabulary, mirroring the usual factor representation. Code -1 marks a
// missing entry or a value absent from the vocabulary.
type FactorColumn struct {
	codes   []int
	levels  []string
	ordered bool
}

// NewFactor creates a factor column whose vocabulary is the sorted set of
// distinct non-empty values observed. The empty string is treated as missing.
func NewFactor(values []string) *FactorColumn {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)
	return NewFactorWithLevels(values, levels, false)
}

// NewFactorWithLevels creates a factor column with an explicit vocabulary.
// Values outside the vocabulary (including the empty string) become missing.
func NewFactorWithLevels(values []string, levels []string, ordered bool) *FactorColumn {
	lv := make([]string, len(levels))
	copy(lv, levels)

	index := make(map[string]int, len(lv))
	for i, l := range lv {
		index[l] = i
	}

	codes := make([]int, len(values))
	for i, v := range values {
		if code, ok := index[v]; ok {
			codes[i] = code
		} else {
			codes[i] = -1
		}
	}
	return &FactorColumn{codes: codes, levels: lv, ordered: ordered}
}

func (c *FactorColumn) Len() int  { return len(c.codes) }
func (c *FactorColumn) Type() Type { return Factor }

func (c *FactorColumn) Clone() Column {
	codes := make([]int, len(c.codes))
	copy(codes, c.codes)
	levels := make([]string, len(c.levels))
	copy(levels, c.levels)
	return &FactorColumn{codes: codes, levels: levels, ordered: c.ordered}
}

func (c *FactorColumn) IsMissing(i int) bool {
	return c.codes[i] < 0
}

// Levels returns a copy of the level vocabulary
func (c *FactorColumn) Levels() []string {
	levels := make([]string, len(c.levels))
	copy(levels, c.levels)
	return levels
}

// Ordered reports whether the factor carries ordinal semantics
func (c *FactorColumn) Ordered() bool { return c.ordered }

// Code returns the vocabulary index of row i, or -1 if missing
func (c *FactorColumn) Code(i int) int { return c.codes[i] }

// Value returns the level label of row i; ok is false for missing entries
func (c *FactorColumn) Value(i int) (string, bool) {
	code := c.codes[i]
	if code < 0 {
		return "", false
	}
	return c.levels[code], true
}

// DateColumn holds timestamps. The zero time marks a missing entry.
type DateColumn struct {
	Values []time.Time
}

// NewDate creates a date column from a copy of values
func NewDate(values []time.Time) *DateColumn {
	v := make([]time.Time, len(values))
	copy(v, values)
	return &DateColumn{Values: v}
}

func (c *DateColumn) Len() int  { return len(c.Values) }
func (c *DateColumn) Type() Type { return Date }

func (c *DateColumn) Clone() Column {
	return NewDate(c.Values)
}

func (c *DateColumn) IsMissing(i int) bool {
	return c.Values[i].IsZero()
}
