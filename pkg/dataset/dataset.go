// pkg/dataset/dataset.go
package dataset

import (
	"errors"
	"fmt"
)

// Dataset is an ordered mapping from column name to column. Row order is
// significant and preserved by every operation; all columns share the same
// row count.
type Dataset struct {
	names []string
	cols  map[string]Column
}

// New creates an empty dataset
func New() *Dataset {
	return &Dataset{cols: make(map[string]Column)}
}

// Rows returns the row count (0 for an empty dataset)
func (d *Dataset) Rows() int {
	if len(d.names) == 0 {
		return 0
	}
	return d.cols[d.names[0]].Len()
}

// Width returns the number of columns
func (d *Dataset) Width() int { return len(d.names) }

// Names returns the column names in order
func (d *Dataset) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Has reports whether a column with the given name exists
func (d *Dataset) Has(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Column returns the named column, or false if absent
func (d *Dataset) Column(name string) (Column, bool) {
	col, ok := d.cols[name]
	return col, ok
}

// Append adds a new column at the end. It fails on a duplicate name or a
// row-count mismatch with the existing columns.
func (d *Dataset) Append(name string, col Column) error {
	if name == "" {
		return errors.New("column name cannot be empty")
	}
	if col == nil {
		return fmt.Errorf("column %q cannot be nil", name)
	}
	if _, exists := d.cols[name]; exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(d.names) > 0 && col.Len() != d.Rows() {
		return fmt.Errorf("column %q has %d rows, dataset has %d", name, col.Len(), d.Rows())
	}
	d.names = append(d.names, name)
	d.cols[name] = col
	return nil
}

// Replace swaps the named column for a new one of the same length,
// keeping its position.
func (d *Dataset) Replace(name string, col Column) error {
	if _, exists := d.cols[name]; !exists {
		return fmt.Errorf("column %q does not exist", name)
	}
	if col.Len() != d.Rows() {
		return fmt.Errorf("column %q has %d rows, dataset has %d", name, col.Len(), d.Rows())
	}
	d.cols[name] = col
	return nil
}

// Drop removes the named column
func (d *Dataset) Drop(name string) error {
	if _, exists := d.cols[name]; !exists {
		return fmt.Errorf("column %q does not exist", name)
	}
	delete(d.cols, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return nil
}

// Clone returns a dataset with the same column order sharing the underlying
// columns. Columns are immutable by convention, so sharing is safe; callers
// that modify values must Replace with a fresh column.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		names: make([]string, len(d.names)),
		cols:  make(map[string]Column, len(d.cols)),
	}
	copy(out.names, d.names)
	for name, col := range d.cols {
		out.cols[name] = col
	}
	return out
}
