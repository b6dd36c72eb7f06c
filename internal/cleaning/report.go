package cleaning

// ColumnReport records what happened to one column
type ColumnReport struct {
	Column      string
	Kind        Kind
	NullsBefore int
	NullsAfter  int
	Filled      int
	Skipped     bool
	Note        string
}

// Report summarises one cleaning pass
type Report struct {
	Table         string
	Rows          int
	Columns       []ColumnReport
	DerivedCounts map[string]int
	Diagnostics   []Finding
}

// Column returns the report for a column
func (r *Report) Column(name string) (ColumnReport, bool) {
	for _, c := range r.Columns {
		if c.Column == name {
			return c, true
		}
	}
	return ColumnReport{}, false
}

// TotalFilled is the number of cells changed across all columns
func (r *Report) TotalFilled() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Filled
	}
	return n
}

// SkippedColumns lists policy columns the table did not have
func (r *Report) SkippedColumns() []string {
	var cols []string
	for _, c := range r.Columns {
		if c.Skipped {
			cols = append(cols, c.Column)
		}
	}
	return cols
}
