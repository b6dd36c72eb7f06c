package cleaning

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
)

// Cleaner applies table policies
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner that logs to logger, or slog.Default when nil
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger.With(slog.String("component", "cleaner"))}
}

// Clean applies policy to a copy of src and returns the copy with a report.
// src is never modified.
func (c *Cleaner) Clean(ctx context.Context, policy TablePolicy, src *table.Table) (*table.Table, *Report, error) {
	if src == nil {
		return nil, nil, fmt.Errorf("clean %s: nil table", policy.Table)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, nil, err
	}

	log := c.logger.With(slog.String("table", policy.Table))
	out := src.Clone()
	report := &Report{
		Table:         policy.Table,
		Rows:          out.Len(),
		DerivedCounts: make(map[string]int),
	}

	log.InfoContext(ctx, "Cleaning table",
		slog.Int("rows", out.Len()),
		slog.Int("columns", len(out.Columns)))

	for _, d := range policy.Diagnostics {
		findings := d.Inspect(src)
		for _, f := range findings {
			log.InfoContext(ctx, "Diagnostic",
				slog.String("check", f.Check),
				slog.String("column", f.Column),
				slog.String("detail", f.Message))
		}
		report.Diagnostics = append(report.Diagnostics, findings...)
	}

	for _, cp := range policy.Columns {
		if d, ok := cp.Disposition.(Derive); ok {
			cr, err := c.derive(ctx, log, out, d, report.DerivedCounts)
			if err != nil {
				return nil, nil, err
			}
			report.Columns = append(report.Columns, cr)
			continue
		}
		for _, col := range cp.Columns {
			report.Columns = append(report.Columns, c.apply(ctx, log, out, col, cp.Disposition))
		}
	}

	log.InfoContext(ctx, "Table cleaned",
		slog.Int("filled", report.TotalFilled()),
		slog.Int("skipped_columns", len(report.SkippedColumns())))

	return out, report, nil
}

func (c *Cleaner) apply(ctx context.Context, log *slog.Logger, t *table.Table, column string, d Disposition) ColumnReport {
	cr := ColumnReport{Column: column, Kind: d.Kind()}

	if !t.HasColumn(column) {
		cr.Skipped = true
		cr.Note = "column not present"
		log.WarnContext(ctx, "Column not present, policy skipped",
			slog.String("column", column),
			slog.String("disposition", d.Kind().String()))
		return cr
	}

	cr.NullsBefore = t.NullCount(column)
	switch d := d.(type) {
	case Retain:
	case Sentinel:
		cr.Filled = t.FillNulls(column, d.Value)
	case ZeroFill:
		cr.Filled = t.FillNulls(column, int64(0))
	}
	cr.NullsAfter = t.NullCount(column)
	cr.Note = d.Describe()

	log.InfoContext(ctx, "Handled nulls",
		slog.String("column", column),
		slog.String("disposition", d.Kind().String()),
		slog.Int("nulls", cr.NullsBefore),
		slog.String("percent", fmt.Sprintf("%.2f", table.Percent(cr.NullsBefore, t.Len()))),
		slog.Int("filled", cr.Filled),
		slog.String("action", cr.Note))

	return cr
}

func (c *Cleaner) derive(ctx context.Context, log *slog.Logger, t *table.Table, d Derive, counts map[string]int) (ColumnReport, error) {
	for _, src := range d.Sources() {
		if !t.HasColumn(src) {
			return ColumnReport{}, apperrors.NewSchemaError(t.Name, src)
		}
	}

	values := make([]any, t.Len())
	for i := range values {
		label := d.Classify(func(column string) bool {
			return !table.IsNull(t.Value(i, column))
		})
		values[i] = label
		counts[label]++
	}

	if err := t.AddColumn(d.Target, values); err != nil {
		return ColumnReport{}, apperrors.NewSchemaError(t.Name, d.Target).WithContext("reason", err.Error())
	}

	attrs := []any{slog.String("column", d.Target), slog.String("rule", d.Describe())}
	for _, r := range d.Rules {
		attrs = append(attrs, slog.Int(r.Label, counts[r.Label]))
	}
	attrs = append(attrs, slog.Int(d.Fallback, counts[d.Fallback]))
	log.InfoContext(ctx, "Derived column", attrs...)

	return ColumnReport{
		Column: d.Target,
		Kind:   KindDerive,
		Note:   d.Describe(),
	}, nil
}
