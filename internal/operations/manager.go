package operations

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/catalog"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/cleaning"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/exporter"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/infrastructure"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
)

// Source supplies tables by sheet name
type Source interface {
	ReadTable(name string) (*table.Table, error)
}

// Manager runs the cleaning pipeline over registry entries
type Manager struct {
	registry *catalog.Registry
	source   Source
	writer   exporter.Writer
	paths    *config.Paths
	cleaner  *cleaning.Cleaner
	tracer   trace.Tracer
	metrics  *infrastructure.RunMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTracer sets the tracer used for run and table spans
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Manager) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// WithMetrics sets the instruments updated per table
func WithMetrics(metrics *infrastructure.RunMetrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// WithClock overrides time.Now, used for output directory timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a manager. source is opened by the caller and only read.
func NewManager(registry *catalog.Registry, source Source, writer exporter.Writer, paths *config.Paths, opts ...Option) *Manager {
	m := &Manager{
		registry: registry,
		source:   source,
		writer:   writer,
		paths:    paths,
		tracer:   tracenoop.NewTracerProvider().Tracer(""),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = infrastructure.WithComponent(m.logger, "operations")
	m.cleaner = cleaning.NewCleaner(m.logger)
	return m
}

// Registry returns the table registry
func (m *Manager) Registry() *catalog.Registry {
	return m.registry
}

// RunAll cleans every registered table
func (m *Manager) RunAll(ctx context.Context) *RunResult {
	return m.run(ctx, ModeAll, m.registry.List())
}

// RunSelected cleans the tables at the selected positions. Positions outside
// the registry are dropped and repeated positions run once.
func (m *Manager) RunSelected(ctx context.Context, sel Selection) *RunResult {
	seen := make(map[int]bool, len(sel.Positions))
	entries := make([]catalog.Entry, 0, len(sel.Positions))
	for _, pos := range sel.Positions {
		e, ok := m.registry.At(pos)
		if !ok {
			m.logger.DebugContext(ctx, "selection_out_of_range",
				slog.Int("position", pos),
				slog.Int("tables", m.registry.Count()))
			continue
		}
		if seen[pos] {
			continue
		}
		seen[pos] = true
		entries = append(entries, e)
	}
	return m.run(ctx, ModeSelected, entries)
}

// RunSingle cleans one table by name. An unknown name is reported in the
// result without touching the source or the file system.
func (m *Manager) RunSingle(ctx context.Context, name string) *RunResult {
	e, err := m.registry.Lookup(name)
	if err != nil {
		ctx, runID := infrastructure.NewRunContext(ctx)
		now := m.now()
		m.logger.WarnContext(ctx, "unsupported_table",
			slog.String("table", name),
			slog.String("error", err.Error()))
		return &RunResult{
			RunID:      runID,
			Mode:       ModeSingle,
			Tables:     []TableResult{{Table: name, Err: err}},
			StartedAt:  now,
			FinishedAt: now,
		}
	}
	return m.run(ctx, ModeSingle, []catalog.Entry{e})
}

func (m *Manager) run(ctx context.Context, mode Mode, entries []catalog.Entry) *RunResult {
	ctx, runID := infrastructure.NewRunContext(ctx)
	result := &RunResult{
		RunID:     runID,
		Mode:      mode,
		StartedAt: m.now(),
	}

	ctx, span := m.traceRun(ctx, runID, mode, len(entries))
	defer span.End()

	defer func() {
		result.FinishedAt = m.now()
		succeeded, failed := len(result.Succeeded()), len(result.Failed())
		m.metrics.RecordRun(ctx, string(mode), succeeded, failed)
		m.logger.InfoContext(ctx, "run_completed",
			slog.String("mode", string(mode)),
			slog.String("output_dir", result.OutputDir),
			slog.Int("succeeded", succeeded),
			slog.Int("failed", failed),
			slog.Duration("duration", result.Duration()))
	}()

	if len(entries) == 0 {
		m.logger.InfoContext(ctx, "nothing_selected", slog.String("mode", string(mode)))
		return result
	}

	dir := m.paths.RunDir(mode.DirLabel(), result.StartedAt)
	created, err := config.EnsureDir(dir)
	if err != nil {
		storageErr := apperrors.NewStorageError("failed to create output directory", err).WithContext("dir", dir)
		m.logger.ErrorContext(ctx, "output_dir_failed",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		infrastructure.RecordError(ctx, storageErr)
		for _, e := range entries {
			result.Tables = append(result.Tables, TableResult{Table: e.Name(), Err: storageErr})
		}
		return result
	}
	result.OutputDir = dir

	m.logger.InfoContext(ctx, "run_started",
		slog.String("mode", string(mode)),
		slog.String("output_dir", dir),
		slog.Bool("dir_created", created),
		slog.Int("table_count", len(entries)))

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			m.logger.WarnContext(ctx, "run_cancelled",
				slog.String("table", e.Name()),
				slog.Int("remaining", len(entries)-i))
			for _, rest := range entries[i:] {
				result.Tables = append(result.Tables, TableResult{Table: rest.Name(), Err: err})
			}
			break
		}

		m.logger.InfoContext(ctx, "processing_table",
			slog.String("table", e.Name()),
			slog.Int("table_number", i+1),
			slog.Int("total_tables", len(entries)))
		result.Tables = append(result.Tables, m.processTable(ctx, mode, dir, e))
	}

	return result
}

// processTable reads, cleans and writes one table. Failures are returned in
// the result, never as a panic or error.
func (m *Manager) processTable(ctx context.Context, mode Mode, dir string, e catalog.Entry) (tr TableResult) {
	ctx, span := m.traceTable(ctx, e.Name())
	defer span.End()

	start := m.now()
	tr.Table = e.Name()
	rows := 0

	defer func() {
		tr.Duration = m.now().Sub(start)
		finishTableSpan(ctx, tr)
		m.metrics.RecordTable(ctx, tr.Table, string(mode), rows, tr.Duration, tr.Err)
		if tr.Err != nil {
			infrastructure.WithError(m.logger, tr.Err).ErrorContext(ctx, "table_failed",
				slog.String("table", tr.Table),
				slog.String("error_type", string(apperrors.TypeOf(tr.Err))))
			return
		}
		m.logger.InfoContext(ctx, "table_written",
			slog.String("table", tr.Table),
			slog.String("path", tr.OutputPath),
			slog.Int("rows", rows),
			slog.Duration("duration", tr.Duration))
	}()

	src, err := m.source.ReadTable(e.Name())
	if err != nil {
		tr.Err = err
		return tr
	}
	rows = src.Len()

	cleaned, report, err := m.cleaner.Clean(ctx, e.Policy, src)
	if err != nil {
		tr.Err = err
		return tr
	}
	tr.Report = report
	for _, c := range report.Columns {
		m.metrics.RecordFill(ctx, tr.Table, c.Column, c.Kind.String(), c.Filled)
	}

	path := m.paths.OutputFile(dir, e.Name())
	if err := m.writer.WriteTable(path, cleaned); err != nil {
		tr.Err = apperrors.NewStorageError("failed to write "+path, err).WithContext("table", tr.Table)
		return tr
	}
	tr.OutputPath = path
	return tr
}
