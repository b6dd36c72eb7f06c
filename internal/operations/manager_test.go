package operations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/catalog"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/exporter"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/infrastructure"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/shared/testutil"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/workbook"
)

var fixedNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	dir     string
	source  string
	manager *Manager
	handler *testutil.BufferedSlogHandler
}

func newFixture(t *testing.T, sheets []testutil.Sheet) *fixture {
	t.Helper()

	dir := t.TempDir()
	source := testutil.WriteWorkbook(t, dir, "AdventureWorks.xlsx", sheets)

	wb, err := workbook.Open(source, workbook.Options{NullTokens: config.DefaultNullTokens})
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })

	paths, err := config.NewPaths(source, config.Default().Cleaning)
	require.NoError(t, err)

	logger, handler := testutil.NewTestLogger(t)
	m := NewManager(catalog.Default(), wb, exporter.NewXLSXWriter(logger), paths,
		WithLogger(logger),
		WithClock(func() time.Time { return fixedNow }))

	return &fixture{dir: dir, source: source, manager: m, handler: handler}
}

func listOutputs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunAll_WritesOneFilePerTable(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())

	result := f.manager.RunAll(context.Background())

	assert.Equal(t, ModeAll, result.Mode)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, filepath.Join(f.dir, "AdventureWorks_Clean_20240115093000"), result.OutputDir)
	require.Len(t, result.Tables, 15)
	assert.Empty(t, result.Failed())

	files := listOutputs(t, result.OutputDir)
	assert.Len(t, files, 15)
	assert.Contains(t, files, "Sales_Customer_clean.xlsx")
	assert.Contains(t, files, "HumanResources_Employee_clean.xlsx")

	rows := testutil.ReadSheetRows(t, filepath.Join(result.OutputDir, "Sales_Customer_clean.xlsx"), "Sales Customer")
	require.Len(t, rows, 5)
	assert.Equal(t, "CustomerType", rows[0][len(rows[0])-1])
	assert.Equal(t, "Store", rows[1][len(rows[1])-1])
	assert.Equal(t, "Individual", rows[2][len(rows[2])-1])
	assert.Equal(t, "Store", rows[3][len(rows[3])-1])
	assert.Equal(t, "Unknown", rows[4][len(rows[4])-1])

	testutil.AssertNoErrors(t, f.handler)
}

func TestRunAll_MissingSheetDoesNotStopBatch(t *testing.T) {
	sheets := testutil.WithoutSheet(testutil.AdventureWorksSheets(), "Person Address")
	f := newFixture(t, sheets)

	result := f.manager.RunAll(context.Background())

	require.Len(t, result.Tables, 15)
	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "Person Address", failed[0].Table)
	assert.True(t, apperrors.IsType(failed[0].Err, apperrors.ErrTypeSourceUnavailable))
	assert.Len(t, result.Succeeded(), 14)

	files := listOutputs(t, result.OutputDir)
	assert.Len(t, files, 14)
	assert.NotContains(t, files, "Person_Address_clean.xlsx")
	assert.Contains(t, files, "Person_Person_clean.xlsx", "tables after the failure are still written")

	assert.True(t, f.handler.ContainsMessage("table_failed"))
	assert.True(t, f.handler.ContainsAttr("table", "Person Address"))
	assert.True(t, f.handler.ContainsAttr("error", failed[0].Err.Error()))
	assert.True(t, f.handler.ContainsAttr("component", "operations"))
}

func TestRun_EachRunGetsItsOwnRunID(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())
	ctx := infrastructure.WithSessionID(context.Background(), "session-1")

	first := f.manager.RunSelected(ctx, Selection{Positions: []int{1}})
	second := f.manager.RunSelected(ctx, Selection{Positions: []int{2}})
	unsupported := f.manager.RunSingle(ctx, "Sales Store")

	require.NotEmpty(t, first.RunID)
	require.NotEmpty(t, second.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.NotEqual(t, second.RunID, unsupported.RunID)
	assert.NotEqual(t, "session-1", first.RunID)
}

func TestRunSelected(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())

	result := f.manager.RunSelected(context.Background(), Selection{Positions: []int{2, 5}})

	require.Len(t, result.Tables, 2)
	assert.Equal(t, "Production ProductInventory", result.Tables[0].Table)
	assert.Equal(t, "Sales SalesOrderDetail", result.Tables[1].Table)
	assert.Equal(t, filepath.Join(f.dir, "AdventureWorks_Selected_20240115093000"), result.OutputDir)
	assert.ElementsMatch(t,
		[]string{"Production_ProductInventory_clean.xlsx", "Sales_SalesOrderDetail_clean.xlsx"},
		listOutputs(t, result.OutputDir))
}

func TestRunSelected_KeepsEnteredOrderAndDropsInvalid(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())

	result := f.manager.RunSelected(context.Background(), Selection{Positions: []int{5, 99, 2, 5, 0}})

	require.Len(t, result.Tables, 2)
	assert.Equal(t, "Sales SalesOrderDetail", result.Tables[0].Table)
	assert.Equal(t, "Production ProductInventory", result.Tables[1].Table)
}

func TestRunSelected_OutOfRangeOnly(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())

	var result *RunResult
	require.NotPanics(t, func() {
		result = f.manager.RunSelected(context.Background(), Selection{Positions: []int{99}})
	})

	assert.Empty(t, result.Tables)
	assert.Empty(t, result.OutputDir)
	assert.Equal(t, []string{"AdventureWorks.xlsx"}, listOutputs(t, f.dir), "no output directory created")
}

func TestRunSelected_All(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())

	result := f.manager.RunSelected(context.Background(), SelectAll(f.manager.Registry().Count()))
	assert.Len(t, result.Succeeded(), 15)
}

type countingSource struct {
	Source
	reads int
}

func (s *countingSource) ReadTable(name string) (*table.Table, error) {
	s.reads++
	return s.Source.ReadTable(name)
}

type countingWriter struct {
	exporter.Writer
	writes int
}

func (w *countingWriter) WriteTable(path string, t *table.Table) error {
	w.writes++
	return w.Writer.WriteTable(path, t)
}

func TestRunSingle_Unsupported(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())
	src := &countingSource{Source: f.manager.source}
	w := &countingWriter{Writer: f.manager.writer}
	f.manager.source = src
	f.manager.writer = w

	result := f.manager.RunSingle(context.Background(), "Sales Store")

	require.Len(t, result.Tables, 1)
	assert.Equal(t, "Sales Store", result.Tables[0].Table)
	assert.True(t, apperrors.IsType(result.Tables[0].Err, apperrors.ErrTypeUnsupportedTable))
	assert.Zero(t, src.reads)
	assert.Zero(t, w.writes)
	assert.Empty(t, result.OutputDir)
	assert.Equal(t, []string{"AdventureWorks.xlsx"}, listOutputs(t, f.dir))
}

func TestRunSingle(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())

	result := f.manager.RunSingle(context.Background(), "Sales SalesPerson")

	require.Len(t, result.Tables, 1)
	tr := result.Tables[0]
	require.NoError(t, tr.Err)
	assert.Equal(t, filepath.Join(f.dir, "AdventureWorks_Single_20240115093000", "Sales_SalesPerson_clean.xlsx"), tr.OutputPath)

	territory, ok := tr.Report.Column("TerritoryID")
	require.True(t, ok)
	assert.Equal(t, 2, territory.Filled)

	rows := testutil.ReadSheetRows(t, tr.OutputPath, "Sales SalesPerson")
	require.Len(t, rows, 4)
	assert.Equal(t, "-1", rows[1][1])
	assert.Equal(t, "0", rows[1][2])
}

type failingWriter struct{ exporter.Writer }

func (failingWriter) WriteTable(string, *table.Table) error { return errors.New("disk full") }

func TestRun_WriteFailureIsStorageError(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())
	f.manager.writer = failingWriter{Writer: f.manager.writer}

	result := f.manager.RunSelected(context.Background(), Selection{Positions: []int{1, 2}})

	require.Len(t, result.Failed(), 2)
	for _, tr := range result.Failed() {
		assert.True(t, apperrors.IsType(tr.Err, apperrors.ErrTypeStorage))
		assert.Empty(t, tr.OutputPath)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := f.manager.RunAll(ctx)

	require.Len(t, result.Tables, 15)
	for _, tr := range result.Tables {
		assert.ErrorIs(t, tr.Err, context.Canceled)
	}
}

func TestRun_UsesConfiguredOutputDir(t *testing.T) {
	f := newFixture(t, testutil.AdventureWorksSheets())
	out := filepath.Join(t.TempDir(), "cleaned")
	f.manager.paths.OutputDir = out

	result := f.manager.RunSingle(context.Background(), "Person Person")

	assert.Equal(t, out, result.OutputDir)
	assert.Equal(t, []string{"Person_Person_clean.xlsx"}, listOutputs(t, out))
}

func TestMode_DirLabel(t *testing.T) {
	assert.Equal(t, "Clean", ModeAll.DirLabel())
	assert.Equal(t, "Selected", ModeSelected.DirLabel())
	assert.Equal(t, "Single", ModeSingle.DirLabel())
}

func TestSelectAll(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, SelectAll(3).Positions)
	assert.Empty(t, SelectAll(0).Positions)
}
