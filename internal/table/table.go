// Package table provides a small column-oriented view over a season snapshot.
//
// Provider snapshots are loose: a column may be missing entirely for a given
// season, and individual values may be blank or non-numeric. Both conditions
// are represented explicitly as invalid cells so that downstream computation
// never confuses "no data" with zero.
package table

import (
	"fmt"
	"math"
)

// Cell is one optional numeric value.
type Cell struct {
	Float64 float64
	Valid   bool
}

// Num returns a valid cell, or an invalid one for non-finite input.
func Num(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{}
	}
	return Cell{Float64: v, Valid: true}
}

// Invalid is the "no data" cell.
func Invalid() Cell {
	return Cell{}
}

// Table holds a fixed number of rows with named numeric and text columns.
// All columns share the same length and row order. Column order is the
// order of installation.
type Table struct {
	rows    int
	order   []string
	numeric map[string][]Cell
	text    map[string][]string
}

// New creates an empty table with the given row count.
func New(rows int) *Table {
	return &Table{
		rows:    rows,
		numeric: make(map[string][]Cell),
		text:    make(map[string][]string),
	}
}

// Columns returns the column names in installation order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) track(name string) {
	if _, ok := t.numeric[name]; ok {
		return
	}
	if _, ok := t.text[name]; ok {
		return
	}
	t.order = append(t.order, name)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// HasNumeric reports whether a numeric column is present.
func (t *Table) HasNumeric(name string) bool {
	_, ok := t.numeric[name]
	return ok
}

// SetNumeric installs a numeric column. Length must match the table.
func (t *Table) SetNumeric(name string, cells []Cell) error {
	if len(cells) != t.rows {
		return fmt.Errorf("column %s has %d cells, table has %d rows", name, len(cells), t.rows)
	}
	t.track(name)
	t.numeric[name] = cells
	return nil
}

// SetText installs a text column. Length must match the table.
func (t *Table) SetText(name string, values []string) error {
	if len(values) != t.rows {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.track(name)
	t.text[name] = values
	return nil
}

// Numeric returns a numeric column as stored, or nil if absent.
func (t *Table) Numeric(name string) []Cell {
	return t.numeric[name]
}

// NumericOrMissing returns a numeric column, substituting a column of
// invalid cells when absent. Callers always get a slice of length Len().
func (t *Table) NumericOrMissing(name string) []Cell {
	if col, ok := t.numeric[name]; ok {
		return col
	}
	return make([]Cell, t.rows)
}

// Text returns a text column, substituting empty strings when absent.
func (t *Table) Text(name string) []string {
	if col, ok := t.text[name]; ok {
		return col
	}
	return make([]string, t.rows)
}

// Filter returns a new table containing the rows where keep[i] is true,
// preserving row order. keep must have length Len().
func (t *Table) Filter(keep []bool) *Table {
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}

	out := New(n)
	for _, name := range t.order {
		if col, ok := t.numeric[name]; ok {
			sub := make([]Cell, 0, n)
			for i, k := range keep {
				if k {
					sub = append(sub, col[i])
				}
			}
			out.track(name)
			out.numeric[name] = sub
			continue
		}
		col := t.text[name]
		sub := make([]string, 0, n)
		for i, k := range keep {
			if k {
				sub = append(sub, col[i])
			}
		}
		out.track(name)
		out.text[name] = sub
	}
	return out
}
