package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/cleaning"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/shared/testutil"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/workbook"
)

type cleanedTable struct {
	entry  Entry
	src    *table.Table
	out    *table.Table
	report *cleaning.Report
}

func cleanFixture(t *testing.T) []cleanedTable {
	t.Helper()

	path := testutil.WriteWorkbook(t, t.TempDir(), "AdventureWorks.xlsx", testutil.AdventureWorksSheets())
	wb, err := workbook.Open(path, workbook.Options{NullTokens: config.DefaultNullTokens})
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })

	c := cleaning.NewCleaner(nil)
	var results []cleanedTable
	for _, e := range Default().List() {
		src, err := wb.ReadTable(e.Name())
		require.NoError(t, err, e.Name())

		out, report, err := c.Clean(context.Background(), e.Policy, src)
		require.NoError(t, err, e.Name())
		results = append(results, cleanedTable{entry: e, src: src, out: out, report: report})
	}
	return results
}

func TestPolicies_RetainKeepsNullCounts(t *testing.T) {
	for _, ct := range cleanFixture(t) {
		for _, col := range ct.entry.Policy.ColumnsOf(cleaning.KindRetain) {
			require.True(t, ct.src.HasColumn(col), "%s.%s missing from fixture", ct.entry.Name(), col)
			assert.Equal(t, ct.src.NullCount(col), ct.out.NullCount(col), "%s.%s", ct.entry.Name(), col)
		}
	}
}

func TestPolicies_SentinelFillsEveryGap(t *testing.T) {
	checked := 0
	for _, ct := range cleanFixture(t) {
		for _, col := range ct.entry.Policy.ColumnsOf(cleaning.KindSentinel) {
			require.True(t, ct.src.HasColumn(col), "%s.%s missing from fixture", ct.entry.Name(), col)
			d, _ := ct.entry.Policy.DispositionFor(col)
			sentinel := d.(cleaning.Sentinel).Value

			assert.Zero(t, ct.out.NullCount(col), "%s.%s", ct.entry.Name(), col)
			for i := 0; i < ct.src.Len(); i++ {
				if table.IsNull(ct.src.Value(i, col)) {
					assert.Equal(t, sentinel, ct.out.Value(i, col), "%s.%s row %d", ct.entry.Name(), col, i)
					checked++
				} else {
					assert.Equal(t, ct.src.Value(i, col), ct.out.Value(i, col))
				}
			}
		}
	}
	assert.Positive(t, checked)
}

func TestPolicies_ZeroFill(t *testing.T) {
	for _, ct := range cleanFixture(t) {
		for _, col := range ct.entry.Policy.ColumnsOf(cleaning.KindZeroFill) {
			assert.Zero(t, ct.out.NullCount(col), "%s.%s", ct.entry.Name(), col)
		}
	}
}

func TestPolicies_CustomerType(t *testing.T) {
	var customer cleanedTable
	for _, ct := range cleanFixture(t) {
		if ct.entry.ID == Customer {
			customer = ct
		}
	}
	require.NotNil(t, customer.out)

	out := customer.out
	for i := 0; i < out.Len(); i++ {
		store := !table.IsNull(out.Value(i, "StoreID"))
		person := !table.IsNull(out.Value(i, "PersonID"))
		want := "Unknown"
		if store {
			want = "Store"
		} else if person {
			want = "Individual"
		}
		assert.Equal(t, want, out.Value(i, "CustomerType"), "row %d", i)
	}
	assert.Equal(t, []any{"Store", "Individual", "Store", "Unknown"}, columnValues(out, "CustomerType"))
}

func TestPolicies_Diagnostics(t *testing.T) {
	byID := make(map[TableID]cleanedTable)
	for _, ct := range cleanFixture(t) {
		byID[ct.entry.ID] = ct
	}

	messages := func(id TableID) []string {
		var m []string
		for _, f := range byID[id].report.Diagnostics {
			m = append(m, f.Message)
		}
		return m
	}

	assert.Contains(t, messages(ProductInventory), "LocationID=6: 2 missing Shelf")
	assert.Contains(t, messages(Employee), "first row with missing OrganizationNode has JobTitle=Chief Executive Officer")
	assert.Contains(t, messages(SalesOrderHeader), "SalesPersonID: 2 of 3 missing (66.67%)")
	assert.Empty(t, messages(Address))
}

func columnValues(t *table.Table, col string) []any {
	vals := make([]any, t.Len())
	for i := range vals {
		vals[i] = t.Value(i, col)
	}
	return vals
}
