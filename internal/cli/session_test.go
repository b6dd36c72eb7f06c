package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/catalog"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/cleaning"
	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/operations"
)

type fakeRunner struct {
	registry  *catalog.Registry
	all       int
	selected  []operations.Selection
	single    []string
	singleErr error
}

func (f *fakeRunner) Registry() *catalog.Registry { return f.registry }

func (f *fakeRunner) RunAll(context.Context) *operations.RunResult {
	f.all++
	return okResult(operations.ModeAll, "Production WorkOrder")
}

func (f *fakeRunner) RunSelected(_ context.Context, sel operations.Selection) *operations.RunResult {
	f.selected = append(f.selected, sel)
	r := &operations.RunResult{Mode: operations.ModeSelected}
	for _, p := range sel.Positions {
		e, _ := f.registry.At(p)
		r.Tables = append(r.Tables, operations.TableResult{Table: e.Name(), OutputPath: "/out/" + e.Name()})
	}
	return r
}

func (f *fakeRunner) RunSingle(_ context.Context, name string) *operations.RunResult {
	f.single = append(f.single, name)
	if f.singleErr != nil {
		return &operations.RunResult{Mode: operations.ModeSingle, Tables: []operations.TableResult{{Table: name, Err: f.singleErr}}}
	}
	return okResult(operations.ModeSingle, name)
}

func okResult(mode operations.Mode, table string) *operations.RunResult {
	start := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	return &operations.RunResult{
		Mode:       mode,
		OutputDir:  "/out",
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
		Tables: []operations.TableResult{{
			Table:      table,
			OutputPath: "/out/" + table,
			Report:     &cleaning.Report{Columns: []cleaning.ColumnReport{{Column: "x", Filled: 3}}},
		}},
	}
}

func runSession(t *testing.T, runner *fakeRunner, input string) string {
	t.Helper()
	var out bytes.Buffer
	s := &Session{In: strings.NewReader(input), Out: &out, Manager: runner}
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestSession_Exit(t *testing.T) {
	runner := &fakeRunner{registry: catalog.Default()}
	out := runSession(t, runner, "4\n")

	assert.Contains(t, out, "1. Process all tables")
	assert.Contains(t, out, "4. Exit")
	assert.Contains(t, out, "Goodbye.")
	assert.Zero(t, runner.all)
}

func TestSession_RunAllThenExit(t *testing.T) {
	runner := &fakeRunner{registry: catalog.Default()}
	out := runSession(t, runner, "1\n4\n")

	assert.Equal(t, 1, runner.all)
	assert.Contains(t, out, "Output directory: /out")
	assert.Contains(t, out, "OK      Production WorkOrder -> /out/Production WorkOrder (3 cells filled)")
	assert.Contains(t, out, "Processed 1 tables: 1 succeeded, 0 failed in 1.5s")
}

func TestSession_InvalidInputRePrompts(t *testing.T) {
	runner := &fakeRunner{registry: catalog.Default()}
	out := runSession(t, runner, "abc\n9\n\n4\n")

	assert.Equal(t, 3, strings.Count(out, "Error: invalid choice"))
	assert.Equal(t, 4, strings.Count(out, "Enter your choice (1-4): "))
	assert.Contains(t, out, "Goodbye.")
}

func TestSession_Selected(t *testing.T) {
	runner := &fakeRunner{registry: catalog.Default()}
	out := runSession(t, runner, "2\n2,5\n2\n99\n2\n1,x\n4\n")

	require.Len(t, runner.selected, 2, "malformed selection does not run")
	assert.Equal(t, []int{2, 5}, runner.selected[0].Positions)
	assert.Empty(t, runner.selected[1].Positions)

	assert.Contains(t, out, " 2. Production ProductInventory")
	assert.Contains(t, out, "15. Sales vIndividualCustomer")
	assert.Contains(t, out, "OK      Sales SalesOrderDetail")
	assert.Contains(t, out, "No tables selected.")
	assert.Contains(t, out, `Error: invalid selection "1,x": "x" is not a number`)
}

func TestSession_Single(t *testing.T) {
	runner := &fakeRunner{registry: catalog.Default()}
	out := runSession(t, runner, "3\n9\n3\n42\n4\n")

	assert.Equal(t, []string{"Sales Customer"}, runner.single)
	assert.Contains(t, out, "OK      Sales Customer")
	assert.Contains(t, out, `Error: invalid table number "42", enter a number between 1 and 15`)
}

func TestSession_SingleFailureReported(t *testing.T) {
	runner := &fakeRunner{
		registry:  catalog.Default(),
		singleErr: apperrors.NewUnsupportedTableError("Sales Store"),
	}
	out := runSession(t, runner, "3\n1\n4\n")

	assert.Contains(t, out, `FAILED  Production WorkOrder: table "Sales Store" is not supported`)
	assert.Contains(t, out, "0 succeeded, 1 failed")
}

func TestSession_EndOfInput(t *testing.T) {
	runner := &fakeRunner{registry: catalog.Default()}

	runSession(t, runner, "")
	runSession(t, runner, "2\n")
	runSession(t, runner, "3\n")

	assert.Empty(t, runner.selected)
	assert.Empty(t, runner.single)
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Session{In: strings.NewReader("1\n"), Out: &bytes.Buffer{}, Manager: &fakeRunner{registry: catalog.Default()}}
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}
