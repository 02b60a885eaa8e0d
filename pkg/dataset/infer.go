// pkg/dataset/infer.go
package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when sniffing date-typed text
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// isNullText determines if a raw text value should be treated as missing
func isNullText(v string) bool {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "", "null", "nil", "na", "nan":
		return true
	}
	return false
}

// ParseNumeric builds a numeric column from raw text, mapping missing
// markers and unparseable entries to NaN.
func ParseNumeric(values []string) *NumericColumn {
	out := make([]float64, len(values))
	for i, v := range values {
		if isNullText(v) {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = f
	}
	return &NumericColumn{Values: out}
}

// ParseDate builds a date column from raw text, mapping missing markers and
// unparseable entries to the zero time.
func ParseDate(values []string) *DateColumn {
	out := make([]time.Time, len(values))
	for i, v := range values {
		if isNullText(v) {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				out[i] = t
				break
			}
		}
	}
	return &DateColumn{Values: out}
}

// InferColumn sniffs raw text and returns the best-fitting column type:
// numeric if every non-missing entry parses as a float, date if every
// non-missing entry parses as a timestamp, factor otherwise.
func InferColumn(values []string) Column {
	numeric := false
	date := false
	for _, v := range values {
		if isNullText(v) {
			continue
		}
		v = strings.TrimSpace(v)
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			if date {
				return newFactorFromRaw(values)
			}
			numeric = true
			continue
		}
		parsed := false
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, v); err == nil {
				parsed = true
				break
			}
		}
		if !parsed || numeric {
			return newFactorFromRaw(values)
		}
		date = true
	}
	switch {
	case numeric:
		return ParseNumeric(values)
	case date:
		return ParseDate(values)
	default:
		return newFactorFromRaw(values)
	}
}

// newFactorFromRaw normalizes missing markers to the empty string before
// building the factor vocabulary.
func newFactorFromRaw(values []string) *FactorColumn {
	clean := make([]string, len(values))
	for i, v := range values {
		if isNullText(v) {
			continue
		}
		clean[i] = strings.TrimSpace(v)
	}
	return NewFactor(clean)
}
