package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunMetrics holds the instruments recorded while cleaning tables
type RunMetrics struct {
	RunsTotal       metric.Int64Counter
	TablesProcessed metric.Int64Counter
	TableDuration   metric.Float64Histogram
	RowsProcessed   metric.Int64Counter
	CellsFilled     metric.Int64Counter
	HeapAlloc       metric.Int64Gauge
}

// NewRunMetrics creates the cleaning instruments on meter
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	runs, err := meter.Int64Counter(
		"nullhandler_runs_total",
		metric.WithDescription("Total number of cleaning runs"),
	)
	if err != nil {
		return nil, err
	}

	tables, err := meter.Int64Counter(
		"nullhandler_tables_processed_total",
		metric.WithDescription("Tables attempted, by status"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"nullhandler_table_duration_seconds",
		metric.WithDescription("Time to read, clean and write one table"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"nullhandler_rows_processed_total",
		metric.WithDescription("Rows read from the source workbook"),
	)
	if err != nil {
		return nil, err
	}

	filled, err := meter.Int64Counter(
		"nullhandler_cells_filled_total",
		metric.WithDescription("Missing cells replaced, by disposition"),
	)
	if err != nil {
		return nil, err
	}

	heap, err := meter.Int64Gauge(
		"nullhandler_heap_alloc_bytes",
		metric.WithDescription("Heap bytes in use at the end of a run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		RunsTotal:       runs,
		TablesProcessed: tables,
		TableDuration:   duration,
		RowsProcessed:   rows,
		CellsFilled:     filled,
		HeapAlloc:       heap,
	}, nil
}

// RecordTable records the outcome of one table
func (m *RunMetrics) RecordTable(ctx context.Context, table, mode string, rows int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("mode", mode),
		attribute.String("status", status),
	)

	m.TablesProcessed.Add(ctx, 1, attrs)
	m.TableDuration.Record(ctx, duration.Seconds(), attrs)
	if rows > 0 {
		m.RowsProcessed.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("table", table)))
	}
}

// RecordFill records cells changed in one column
func (m *RunMetrics) RecordFill(ctx context.Context, table, column, disposition string, cells int) {
	if m == nil || cells == 0 {
		return
	}
	m.CellsFilled.Add(ctx, int64(cells), metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("column", column),
		attribute.String("disposition", disposition),
	))
}

// RecordRun records a finished run and a runtime memory sample
func (m *RunMetrics) RecordRun(ctx context.Context, mode string, succeeded, failed int) {
	if m == nil {
		return
	}
	m.RunsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Int("succeeded", succeeded),
		attribute.Int("failed", failed),
	))

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.HeapAlloc.Record(ctx, int64(ms.HeapAlloc))
}

// WriteMetricsFile dumps the registry in Prometheus text format to path.
// It is a no-op when metrics are disabled or path is empty.
func (p *OTelProviders) WriteMetricsFile(path string) error {
	if p == nil || p.Registry == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
