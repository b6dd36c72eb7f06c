package operations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/infrastructure"
)

// traceRun creates a span for a whole run
func (m *Manager) traceRun(ctx context.Context, runID string, mode Mode, tables int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, fmt.Sprintf("nullhandler.run.%s", mode),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.mode", string(mode)),
			attribute.Int("run.tables", tables),
		),
	)
}

// traceTable creates a span for one table
func (m *Manager) traceTable(ctx context.Context, table string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "nullhandler.table",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("table.name", table)),
	)
}

// finishTableSpan records the table outcome on the current span
func finishTableSpan(ctx context.Context, tr TableResult) {
	if tr.Err != nil {
		infrastructure.RecordError(ctx, tr.Err)
		return
	}
	attrs := map[string]interface{}{
		"table.output": tr.OutputPath,
	}
	if tr.Report != nil {
		attrs["table.rows"] = tr.Report.Rows
		attrs["table.cells_filled"] = tr.Report.TotalFilled()
	}
	infrastructure.SetSpanAttributes(ctx, attrs)
	trace.SpanFromContext(ctx).SetStatus(codes.Ok, "")
}
