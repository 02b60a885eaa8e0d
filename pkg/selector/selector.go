// pkg/selector/selector.go
package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prepline/prepline/pkg/dataset"
)

// ErrNoMatch indicates a selection resolved to zero columns. Steps treat
// this as a fit failure rather than silently fitting nothing.
var ErrNoMatch = errors.New("selection matched no columns")

// Selector resolves to a concrete, ordered list of column names against a
// schema. Resolution happens once, at fit time.
type Selector interface {
	Resolve(s dataset.Schema) ([]string, error)
	String() string
}

type byName struct {
	names []string
}

// Columns selects columns by explicit name, in the given order.
// A name absent from the schema is an error.
func Columns(names ...string) Selector {
	return byName{names: names}
}

func (s byName) Resolve(sch dataset.Schema) ([]string, error) {
	if len(s.names) == 0 {
		return nil, ErrNoMatch
	}
	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		if _, ok := sch.Info(name); !ok {
			return nil, fmt.Errorf("column %q not found in schema", name)
		}
		out = append(out, name)
	}
	return out, nil
}

func (s byName) String() string {
	return "columns(" + strings.Join(s.names, ", ") + ")"
}

type byType struct {
	t dataset.Type
}

// ByType selects every column of the given type, in schema order
func ByType(t dataset.Type) Selector {
	return byType{t: t}
}

func (s byType) Resolve(sch dataset.Schema) ([]string, error) {
	var out []string
	for _, name := range sch.Names() {
		if info, _ := sch.Info(name); info.Type == s.t {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no %s columns: %w", s.t, ErrNoMatch)
	}
	return out, nil
}

func (s byType) String() string {
	return fmt.Sprintf("all_%s()", s.t)
}

type byRole struct {
	role string
}

// ByRole selects every column carrying the given role, in schema order
func ByRole(role string) Selector {
	return byRole{role: role}
}

func (s byRole) Resolve(sch dataset.Schema) ([]string, error) {
	var out []string
	for _, name := range sch.Names() {
		if info, _ := sch.Info(name); info.Role == s.role {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no columns with role %q: %w", s.role, ErrNoMatch)
	}
	return out, nil
}

func (s byRole) String() string {
	return fmt.Sprintf("has_role(%q)", s.role)
}

type all struct{}

// All selects every column in schema order
func All() Selector {
	return all{}
}

func (all) Resolve(sch dataset.Schema) ([]string, error) {
	names := sch.Names()
	if len(names) == 0 {
		return nil, ErrNoMatch
	}
	return names, nil
}

func (all) String() string {
	return "everything()"
}
