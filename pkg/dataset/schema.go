// pkg/dataset/schema.go
package dataset

import "fmt"

// ColumnInfo describes a single column to fit-time validation
type ColumnInfo struct {
	Type    Type
	Ordered bool   // meaningful for factor columns only
	Role    string // modeling role, e.g. "predictor" or "outcome"
}

// Schema maps column names to their type and role. It is derived from a
// dataset and consumed during step fitting; transforms never see it.
type Schema struct {
	names []string
	info  map[string]ColumnInfo
}

// SchemaOf derives a schema from a dataset. Roles default to empty and can
// be assigned with SetRole.
func SchemaOf(d *Dataset) Schema {
	s := Schema{
		names: d.Names(),
		info:  make(map[string]ColumnInfo, d.Width()),
	}
	for _, name := range s.names {
		col, _ := d.Column(name)
		info := ColumnInfo{Type: col.Type()}
		if fc, ok := col.(*FactorColumn); ok {
			info.Ordered = fc.Ordered()
		}
		s.info[name] = info
	}
	return s
}

// Names returns the column names in dataset order
func (s Schema) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Info returns the descriptor for a column, or false if absent
func (s Schema) Info(name string) (ColumnInfo, bool) {
	info, ok := s.info[name]
	return info, ok
}

// SetRole assigns a modeling role to a column
func (s Schema) SetRole(name, role string) error {
	info, ok := s.info[name]
	if !ok {
		return fmt.Errorf("column %q does not exist", name)
	}
	info.Role = role
	s.info[name] = info
	return nil
}
