// pkg/step/naming.go
package step

import (
	"fmt"
	"strings"
)

// NamingFunc produces the names of the columns a categorical expansion
// generates. It receives the original column name, the level labels being
// encoded (one output column per label) and the ordered flag, and must
// return exactly len(levels) names.
type NamingFunc func(column string, levels []string, ordered bool) []string

// DefaultNaming names unordered indicators "<column>_<level>" with the level
// text sanitized into a valid identifier, and ordered polynomial columns
// "<column>_1", "<column>_2", ...
func DefaultNaming(column string, levels []string, ordered bool) []string {
	out := make([]string, len(levels))
	for i, level := range levels {
		if ordered {
			out[i] = fmt.Sprintf("%s_%d", column, i+1)
		} else {
			out[i] = column + "_" + sanitizeLabel(level)
		}
	}
	return out
}

// sanitizeLabel rewrites level text into identifier-safe form
func sanitizeLabel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "x"
	}
	return b.String()
}
