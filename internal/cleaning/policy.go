package cleaning

import (
	"fmt"
)

// ColumnPolicy applies one disposition to a group of columns. For Derive the
// target column comes from the disposition and Columns is informational.
type ColumnPolicy struct {
	Columns     []string
	Disposition Disposition
}

// TablePolicy is the complete set of rules for one table
type TablePolicy struct {
	Table       string
	Columns     []ColumnPolicy
	Diagnostics []Diagnostic
}

// Validate checks that the policy is internally consistent
func (p TablePolicy) Validate() error {
	if p.Table == "" {
		return fmt.Errorf("policy has no table name")
	}

	seen := make(map[string]Kind)
	for i, cp := range p.Columns {
		if cp.Disposition == nil {
			return fmt.Errorf("%s: column policy %d has no disposition", p.Table, i)
		}

		switch d := cp.Disposition.(type) {
		case Sentinel:
			if d.Value == nil {
				return fmt.Errorf("%s: sentinel for %v has no value", p.Table, cp.Columns)
			}
		case Derive:
			if d.Target == "" || d.Fallback == "" || len(d.Rules) == 0 {
				return fmt.Errorf("%s: derive rule needs a target, rules and a fallback", p.Table)
			}
			if prev, dup := seen[d.Target]; dup {
				return fmt.Errorf("%s: column %s already has a %s policy", p.Table, d.Target, prev)
			}
			seen[d.Target] = KindDerive
			continue
		}

		if len(cp.Columns) == 0 {
			return fmt.Errorf("%s: %s policy lists no columns", p.Table, cp.Disposition.Kind())
		}
		for _, c := range cp.Columns {
			if prev, dup := seen[c]; dup {
				return fmt.Errorf("%s: column %s already has a %s policy", p.Table, c, prev)
			}
			seen[c] = cp.Disposition.Kind()
		}
	}
	return nil
}

// ColumnsOf returns every column handled with the given kind, in policy order.
// Derive contributes its target column.
func (p TablePolicy) ColumnsOf(kind Kind) []string {
	var cols []string
	for _, cp := range p.Columns {
		if cp.Disposition.Kind() != kind {
			continue
		}
		if d, ok := cp.Disposition.(Derive); ok {
			cols = append(cols, d.Target)
			continue
		}
		cols = append(cols, cp.Columns...)
	}
	return cols
}

// DispositionFor returns the disposition covering column, if any
func (p TablePolicy) DispositionFor(column string) (Disposition, bool) {
	for _, cp := range p.Columns {
		if d, ok := cp.Disposition.(Derive); ok {
			if d.Target == column {
				return d, true
			}
			continue
		}
		for _, c := range cp.Columns {
			if c == column {
				return cp.Disposition, true
			}
		}
	}
	return nil, false
}
