package provider

import (
	"nbakit/backend/internal/table"
)

// Records renders a table as one JSON-friendly map per row, in row order.
// Invalid numeric cells become nulls rather than zeros.
func Records(t *table.Table) []map[string]any {
	columns := t.Columns()
	out := make([]map[string]any, t.Len())

	for i := range out {
		rec := make(map[string]any, len(columns))
		for _, name := range columns {
			if col := t.Numeric(name); col != nil {
				if col[i].Valid {
					rec[name] = col[i].Float64
				} else {
					rec[name] = nil
				}
				continue
			}
			rec[name] = t.Text(name)[i]
		}
		out[i] = rec
	}
	return out
}

// WhereNumeric returns the rows whose numeric column equals val. An absent
// column matches nothing.
func WhereNumeric(t *table.Table, name string, val float64) *table.Table {
	col := t.NumericOrMissing(name)
	keep := make([]bool, t.Len())
	for i, c := range col {
		keep[i] = c.Valid && c.Float64 == val
	}
	return t.Filter(keep)
}

// WhereText returns the rows whose text column equals val.
func WhereText(t *table.Table, name string, val string) *table.Table {
	col := t.Text(name)
	keep := make([]bool, t.Len())
	for i, v := range col {
		keep[i] = v == val
	}
	return t.Filter(keep)
}
