package cleaning

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/shared/testutil"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
)

func salesPerson() *table.Table {
	return table.New("Sales SalesPerson",
		[]string{"BusinessEntityID", "TerritoryID", "SalesQuota", "Note"},
		[][]any{
			{int64(274), nil, nil, nil},
			{int64(275), int64(2), int64(300000), "x"},
			{int64(285), nil, nil, nil},
		})
}

func salesPersonPolicy() TablePolicy {
	return TablePolicy{
		Table: "Sales SalesPerson",
		Columns: []ColumnPolicy{
			{Columns: []string{"TerritoryID"}, Disposition: Sentinel{Value: int64(-1)}},
			{Columns: []string{"SalesQuota"}, Disposition: ZeroFill{}},
			{Columns: []string{"Note"}, Disposition: Retain{}},
		},
	}
}

func customers() *table.Table {
	return table.New("Sales Customer",
		[]string{"CustomerID", "PersonID", "StoreID"},
		[][]any{
			{int64(1), nil, int64(934)},
			{int64(11000), int64(13531), nil},
			{int64(29484), int64(291), int64(292)},
			{int64(30119), nil, nil},
		})
}

func customerPolicy() TablePolicy {
	return TablePolicy{
		Table: "Sales Customer",
		Columns: []ColumnPolicy{
			{Columns: []string{"PersonID", "StoreID"}, Disposition: Retain{}},
			{Columns: []string{"PersonID", "StoreID"}, Disposition: Derive{
				Target: "CustomerType",
				Rules: []PresenceRule{
					{Column: "StoreID", Label: "Store"},
					{Column: "PersonID", Label: "Individual"},
				},
				Fallback: "Unknown",
			}},
		},
	}
}

func TestCleaner_SentinelZeroFillRetain(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	c := NewCleaner(logger)
	src := salesPerson()

	out, report, err := c.Clean(context.Background(), salesPersonPolicy(), src)
	require.NoError(t, err)

	assert.Equal(t, 0, out.NullCount("TerritoryID"))
	assert.Equal(t, int64(-1), out.Value(0, "TerritoryID"))
	assert.Equal(t, int64(2), out.Value(1, "TerritoryID"))
	assert.Equal(t, int64(-1), out.Value(2, "TerritoryID"))

	assert.Equal(t, 0, out.NullCount("SalesQuota"))
	assert.Equal(t, int64(0), out.Value(0, "SalesQuota"))
	assert.Equal(t, int64(300000), out.Value(1, "SalesQuota"))

	assert.Equal(t, src.NullCount("Note"), out.NullCount("Note"))

	territory, ok := report.Column("TerritoryID")
	require.True(t, ok)
	assert.Equal(t, KindSentinel, territory.Kind)
	assert.Equal(t, 2, territory.NullsBefore)
	assert.Equal(t, 0, territory.NullsAfter)
	assert.Equal(t, 2, territory.Filled)

	note, ok := report.Column("Note")
	require.True(t, ok)
	assert.Equal(t, note.NullsBefore, note.NullsAfter)
	assert.Zero(t, note.Filled)

	assert.Equal(t, 4, report.TotalFilled())
	assert.True(t, handler.ContainsMessage("Handled nulls"))
	testutil.AssertNoErrors(t, handler)
}

func TestCleaner_DoesNotMutateInput(t *testing.T) {
	c := NewCleaner(nil)
	src := customers()
	before := src.Clone()

	_, _, err := c.Clean(context.Background(), customerPolicy(), src)
	require.NoError(t, err)
	assert.Equal(t, before.Columns, src.Columns)
	assert.Equal(t, before.Rows, src.Rows)

	src = salesPerson()
	before = src.Clone()
	_, _, err = c.Clean(context.Background(), salesPersonPolicy(), src)
	require.NoError(t, err)
	assert.Equal(t, before.Rows, src.Rows)
}

func TestCleaner_DeriveCustomerType(t *testing.T) {
	c := NewCleaner(nil)

	out, report, err := c.Clean(context.Background(), customerPolicy(), customers())
	require.NoError(t, err)

	require.Equal(t, "CustomerType", out.Columns[len(out.Columns)-1])
	for i := 0; i < out.Len(); i++ {
		storePresent := !table.IsNull(out.Value(i, "StoreID"))
		personPresent := !table.IsNull(out.Value(i, "PersonID"))
		got := out.Value(i, "CustomerType")

		switch {
		case storePresent:
			assert.Equal(t, "Store", got, "row %d", i)
		case personPresent:
			assert.Equal(t, "Individual", got, "row %d", i)
		default:
			assert.Equal(t, "Unknown", got, "row %d", i)
		}
	}

	assert.Equal(t, "Store", out.Value(2, "CustomerType"), "both present resolves to Store")
	assert.Equal(t, map[string]int{"Store": 2, "Individual": 1, "Unknown": 1}, report.DerivedCounts)

	assert.Equal(t, 2, out.NullCount("PersonID"))
	assert.Equal(t, 2, out.NullCount("StoreID"))

	derived, ok := report.Column("CustomerType")
	require.True(t, ok)
	assert.Equal(t, KindDerive, derived.Kind)
	assert.Zero(t, derived.Filled, "derived labels are not filled nulls")
	assert.Zero(t, report.TotalFilled())
}

func TestCleaner_AbsentColumnIsSkipped(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	c := NewCleaner(logger)

	policy := salesPersonPolicy()
	policy.Columns = append(policy.Columns, ColumnPolicy{Columns: []string{"Bonus"}, Disposition: ZeroFill{}})

	out, report, err := c.Clean(context.Background(), policy, salesPerson())
	require.NoError(t, err)

	bonus, ok := report.Column("Bonus")
	require.True(t, ok)
	assert.True(t, bonus.Skipped)
	assert.Equal(t, []string{"Bonus"}, report.SkippedColumns())
	assert.False(t, out.HasColumn("Bonus"))
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Column not present, policy skipped")
}

func TestCleaner_DeriveWithoutSourceColumnFails(t *testing.T) {
	c := NewCleaner(nil)
	src := table.New("Sales Customer", []string{"CustomerID", "PersonID"}, [][]any{{int64(1), nil}})

	_, _, err := c.Clean(context.Background(), customerPolicy(), src)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestCleaner_DeriveTargetAlreadyPresentFails(t *testing.T) {
	c := NewCleaner(nil)
	src := table.New("Sales Customer",
		[]string{"CustomerID", "PersonID", "StoreID", "CustomerType"},
		[][]any{{int64(1), nil, int64(2), "x"}})

	_, _, err := c.Clean(context.Background(), customerPolicy(), src)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestCleaner_StringSentinel(t *testing.T) {
	c := NewCleaner(nil)
	src := table.New("Sales SalesOrderDetail",
		[]string{"SalesOrderDetailID", "CarrierTrackingNumber"},
		[][]any{{int64(1), "4911-403C-98"}, {int64(2), nil}})
	policy := TablePolicy{
		Table:   "Sales SalesOrderDetail",
		Columns: []ColumnPolicy{{Columns: []string{"CarrierTrackingNumber"}, Disposition: Sentinel{Value: "PENDING"}}},
	}

	out, _, err := c.Clean(context.Background(), policy, src)
	require.NoError(t, err)
	assert.Equal(t, "4911-403C-98", out.Value(0, "CarrierTrackingNumber"))
	assert.Equal(t, "PENDING", out.Value(1, "CarrierTrackingNumber"))
}

func TestCleaner_Diagnostics(t *testing.T) {
	c := NewCleaner(nil)
	src := table.New("Production ProductInventory",
		[]string{"ProductID", "LocationID", "Shelf"},
		[][]any{
			{int64(1), int64(1), "A"},
			{int64(1), int64(6), nil},
			{int64(2), int64(6), nil},
			{int64(3), int64(50), nil},
		})
	policy := TablePolicy{
		Table:       "Production ProductInventory",
		Columns:     []ColumnPolicy{{Columns: []string{"Shelf"}, Disposition: Sentinel{Value: "NONE"}}},
		Diagnostics: []Diagnostic{NullBreakdown{Column: "Shelf", By: "LocationID"}, NullSummary{}},
	}

	_, report, err := c.Clean(context.Background(), policy, src)
	require.NoError(t, err)

	var messages []string
	for _, f := range report.Diagnostics {
		messages = append(messages, f.Message)
	}
	assert.Contains(t, messages, "LocationID=50: 1 missing Shelf")
	assert.Contains(t, messages, "LocationID=6: 2 missing Shelf")
	assert.Contains(t, messages, "Shelf: 3 of 4 missing (75.00%)")
}

func TestCleaner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewCleaner(nil).Clean(ctx, salesPersonPolicy(), salesPerson())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleaner_NilTable(t *testing.T) {
	_, _, err := NewCleaner(nil).Clean(context.Background(), salesPersonPolicy(), nil)
	assert.Error(t, err)
}
