// Package table holds the in-memory representation of one worksheet: an
// ordered header and ordered rows of scalar cells where nil marks a missing
// value.
package table

import "fmt"

// Table is a named rectangular dataset
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any

	index map[string]int
}

// ColumnNulls is the missing-value count for one column
type ColumnNulls struct {
	Column string
	Nulls  int
}

// New creates a table. Rows shorter than the header are padded with nils so
// every row has exactly len(columns) cells.
func New(name string, columns []string, rows [][]any) *Table {
	t := &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Rows:    make([][]any, len(rows)),
	}
	for i, row := range rows {
		r := make([]any, len(columns))
		copy(r, row)
		t.Rows[i] = r
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1
func (t *Table) ColumnIndex(column string) int {
	if t.index == nil {
		t.reindex()
	}
	if i, ok := t.index[column]; ok {
		return i
	}
	return -1
}

// HasColumn reports whether the table has the named column
func (t *Table) HasColumn(column string) bool {
	return t.ColumnIndex(column) >= 0
}

// Value returns the cell at row, column. Absent columns read as nil.
func (t *Table) Value(row int, column string) any {
	i := t.ColumnIndex(column)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row][i]
}

// Clone returns a deep copy whose rows can be modified without touching t
func (t *Table) Clone() *Table {
	return New(t.Name, t.Columns, t.Rows)
}

// NullCount counts missing values in a column. An absent column has none.
func (t *Table) NullCount(column string) int {
	i := t.ColumnIndex(column)
	if i < 0 {
		return 0
	}
	n := 0
	for _, row := range t.Rows {
		if IsNull(row[i]) {
			n++
		}
	}
	return n
}

// NullCounts returns the missing-value count of every column in header order
func (t *Table) NullCounts() []ColumnNulls {
	counts := make([]ColumnNulls, len(t.Columns))
	for i, c := range t.Columns {
		counts[i].Column = c
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if IsNull(v) {
				counts[i].Nulls++
			}
		}
	}
	return counts
}

// FillNulls replaces every missing value in column with value and returns the
// number of cells changed.
func (t *Table) FillNulls(column string, value any) int {
	i := t.ColumnIndex(column)
	if i < 0 {
		return 0
	}
	filled := 0
	for _, row := range t.Rows {
		if IsNull(row[i]) {
			row[i] = value
			filled++
		}
	}
	return filled
}

// AddColumn appends a column. values must hold one entry per row.
func (t *Table) AddColumn(name string, values []any) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %s has %d values for %d rows", name, len(values), len(t.Rows))
	}
	if t.HasColumn(name) {
		return fmt.Errorf("column %s already exists", name)
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	t.reindex()
	return nil
}

// IsNull reports whether a cell holds a missing value
func IsNull(v any) bool {
	return v == nil
}

// Percent returns part as a percentage of whole, 0 when whole is 0
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
