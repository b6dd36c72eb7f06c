package cleaning

import (
	"fmt"
	"sort"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
)

// Finding is one line of diagnostic output
type Finding struct {
	Check   string
	Column  string
	Message string
}

// Diagnostic inspects a table without changing it
type Diagnostic interface {
	Name() string
	Inspect(t *table.Table) []Finding
}

// NullSummary reports every column that has missing values
type NullSummary struct{}

// NullBreakdown counts the nulls in Column grouped by the value of By
type NullBreakdown struct {
	Column string
	By     string
}

// NullRowProbe shows the Show value of the first row where Column is null
type NullRowProbe struct {
	Column string
	Show   string
}

func (NullSummary) Name() string   { return "null_summary" }
func (NullBreakdown) Name() string { return "null_breakdown" }
func (NullRowProbe) Name() string  { return "null_row_probe" }

func (d NullSummary) Inspect(t *table.Table) []Finding {
	var out []Finding
	for _, cn := range t.NullCounts() {
		if cn.Nulls == 0 {
			continue
		}
		out = append(out, Finding{
			Check:   d.Name(),
			Column:  cn.Column,
			Message: fmt.Sprintf("%s: %d of %d missing (%.2f%%)", cn.Column, cn.Nulls, t.Len(), table.Percent(cn.Nulls, t.Len())),
		})
	}
	if len(out) == 0 {
		out = append(out, Finding{Check: d.Name(), Message: "no missing values"})
	}
	return out
}

func (d NullBreakdown) Inspect(t *table.Table) []Finding {
	if missing := missingColumn(t, d.Column, d.By); missing != "" {
		return []Finding{{Check: d.Name(), Column: d.Column, Message: fmt.Sprintf("column %s not present", missing)}}
	}

	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		if table.IsNull(t.Value(i, d.Column)) {
			counts[displayValue(t.Value(i, d.By))]++
		}
	}
	if len(counts) == 0 {
		return []Finding{{Check: d.Name(), Column: d.Column, Message: fmt.Sprintf("no missing %s", d.Column)}}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Finding, 0, len(keys))
	for _, k := range keys {
		out = append(out, Finding{
			Check:   d.Name(),
			Column:  d.Column,
			Message: fmt.Sprintf("%s=%s: %d missing %s", d.By, k, counts[k], d.Column),
		})
	}
	return out
}

func (d NullRowProbe) Inspect(t *table.Table) []Finding {
	if missing := missingColumn(t, d.Column, d.Show); missing != "" {
		return []Finding{{Check: d.Name(), Column: d.Column, Message: fmt.Sprintf("column %s not present", missing)}}
	}

	for i := 0; i < t.Len(); i++ {
		if table.IsNull(t.Value(i, d.Column)) {
			return []Finding{{
				Check:   d.Name(),
				Column:  d.Column,
				Message: fmt.Sprintf("first row with missing %s has %s=%s", d.Column, d.Show, displayValue(t.Value(i, d.Show))),
			}}
		}
	}
	return []Finding{{Check: d.Name(), Column: d.Column, Message: fmt.Sprintf("no missing %s", d.Column)}}
}

func missingColumn(t *table.Table, cols ...string) string {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return c
		}
	}
	return ""
}

func displayValue(v any) string {
	if table.IsNull(v) {
		return "<null>"
	}
	return fmt.Sprint(v)
}
