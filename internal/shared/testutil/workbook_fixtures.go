package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet describes one worksheet of a fixture workbook. nil cells are left empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// WriteWorkbook saves sheets into dir/name and returns the full path
func WriteWorkbook(t *testing.T, dir, name string, sheets []Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(defaultSheet, s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}

		for c, h := range s.Header {
			cell, err := excelize.CoordinatesToCellName(c+1, 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(s.Name, cell, h))
		}
		for r, row := range s.Rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+2)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(s.Name, cell, v))
			}
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// ReadSheetRows returns the raw rows of a sheet in a written workbook
func ReadSheetRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

// FindSheet returns the fixture sheet with the given name
func FindSheet(t *testing.T, sheets []Sheet, name string) Sheet {
	t.Helper()
	for _, s := range sheets {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("fixture sheet %q not found", name)
	return Sheet{}
}

// WithoutSheet returns sheets minus the named one
func WithoutSheet(sheets []Sheet, name string) []Sheet {
	out := make([]Sheet, 0, len(sheets))
	for _, s := range sheets {
		if s.Name != name {
			out = append(out, s)
		}
	}
	return out
}

// AdventureWorksSheets returns a small export with one sheet per cleaned
// table. Every nullable column the policies touch has at least one gap.
func AdventureWorksSheets() []Sheet {
	return []Sheet{
		{
			Name:   "Production WorkOrder",
			Header: []string{"WorkOrderID", "ProductID", "OrderQty", "ScrapReasonID"},
			Rows: [][]any{
				{1, 722, 8, nil},
				{2, 725, 15, 7},
				{3, 726, 9, nil},
			},
		},
		{
			Name:   "Production ProductInventory",
			Header: []string{"ProductID", "LocationID", "Shelf", "Bin", "Quantity"},
			Rows: [][]any{
				{1, 1, "A", 1, 408},
				{1, 6, nil, 5, 324},
				{2, 6, nil, 5, 353},
				{3, 50, "B", 10, 23},
			},
		},
		{
			Name: "Production Product",
			Header: []string{"ProductID", "Name", "ProductNumber", "Color", "Size", "SizeUnitMeasureCode",
				"WeightUnitMeasureCode", "Weight", "ProductLine", "Class", "Style",
				"ProductSubcategoryID", "ProductModelID", "SellEndDate"},
			Rows: [][]any{
				{1, "Adjustable Race", "AR-5381", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
				{680, "HL Road Frame - Black, 58", "FR-R92B-58", "Black", "58", "CM", "LB", 2.24, "R", "H", "U", 14, 6, nil},
				{707, "Sport-100 Helmet, Red", "HL-U509-R", "Red", nil, nil, nil, nil, "S", nil, nil, 31, 33, "2013-05-29"},
			},
		},
		{
			Name: "Sales SalesOrderHeader",
			Header: []string{"SalesOrderID", "PurchaseOrderNumber", "SalesPersonID", "CreditCardID",
				"CreditCardApprovalCode", "CurrencyRateID", "TotalDue"},
			Rows: [][]any{
				{43659, "PO522145787", 279, 16281, "105041Vi84182", nil, 23153.2339},
				{43697, nil, nil, 19353, "230370Vi51970", 4, 3953.9884},
				{51000, nil, nil, nil, nil, nil, 100.5},
			},
		},
		{
			Name:   "Sales SalesOrderDetail",
			Header: []string{"SalesOrderID", "SalesOrderDetailID", "CarrierTrackingNumber", "OrderQty", "ProductID"},
			Rows: [][]any{
				{43659, 1, "4911-403C-98", 1, 776},
				{43697, 110, nil, 1, 749},
				{51000, 200, nil, 2, 707},
			},
		},
		{
			Name:   "Person Address",
			Header: []string{"AddressID", "AddressLine1", "AddressLine2", "City", "PostalCode"},
			Rows: [][]any{
				{1, "1970 Napa Ct.", nil, "Bothell", "98011"},
				{2, "9833 Mt. Dias Blv.", "Suite 200", "Bothell", "98011"},
				{3, "1 Main St", nil, "Boston", "02108"},
			},
		},
		{
			Name:   "Person Person",
			Header: []string{"BusinessEntityID", "PersonType", "Title", "FirstName", "MiddleName", "LastName"},
			Rows: [][]any{
				{1, "EM", nil, "Ken", "J", "Sánchez"},
				{2, "EM", "Mr.", "Terri", "Lee", "Duffy"},
				{3, "EM", nil, "Roberto", nil, "Tamburello"},
			},
		},
		{
			Name:   "Production BillOfMaterials",
			Header: []string{"BillOfMaterialsID", "ProductAssemblyID", "ComponentID", "StartDate", "EndDate", "PerAssemblyQty"},
			Rows: [][]any{
				{893, nil, 749, "2010-05-26", nil, 1},
				{271, 3, 461, "2010-05-26", "2010-07-25", 1},
				{34, 3, 504, "2010-05-26", nil, 1},
			},
		},
		{
			Name:   "Sales Customer",
			Header: []string{"CustomerID", "PersonID", "StoreID", "TerritoryID", "AccountNumber"},
			Rows: [][]any{
				{1, nil, 934, 1, "AW00000001"},
				{11000, 13531, nil, 9, "AW00011000"},
				{29484, 291, 292, 1, "AW00029484"},
				{30119, nil, nil, 1, "AW00030119"},
			},
		},
		{
			Name:   "Sales SalesPerson",
			Header: []string{"BusinessEntityID", "TerritoryID", "SalesQuota", "Bonus", "CommissionPct"},
			Rows: [][]any{
				{274, nil, nil, 0, 0},
				{275, 2, 300000, 4100, 0.012},
				{285, nil, nil, 0, 0},
			},
		},
		{
			Name:   "Purchasing Vendor",
			Header: []string{"BusinessEntityID", "AccountNumber", "Name", "PurchasingWebServiceURL"},
			Rows: [][]any{
				{1492, "AUSTRALI0001", "Australia Bike Retailer", nil},
				{1494, "LITWARE0001", "Litware, Inc.", "www.litwareinc.com/"},
			},
		},
		{
			Name:   "HumanResources Employee",
			Header: []string{"BusinessEntityID", "JobTitle", "OrganizationNode", "OrganizationLevel"},
			Rows: [][]any{
				{1, "Chief Executive Officer", nil, nil},
				{2, "Vice President of Engineering", "/1/", 1},
			},
		},
		{
			Name:   "Sales vStoreWithAddresses",
			Header: []string{"BusinessEntityID", "Name", "AddressLine1", "AddressLine2", "City"},
			Rows: [][]any{
				{292, "Next-Door Bike Store", "2251 Elliot Avenue", nil, "Seattle"},
				{294, "Professional Sales and Service", "7943 Walnut Ave", "Suite 100", "Renton"},
			},
		},
		{
			Name: "Sales vSalesPerson",
			Header: []string{"BusinessEntityID", "Title", "FirstName", "MiddleName", "LastName", "Suffix", "JobTitle",
				"AddressLine1", "AddressLine2", "TerritoryName", "TerritoryGroup", "SalesQuota", "SalesYTD"},
			Rows: [][]any{
				{274, nil, "Stephen", "Y", "Jiang", nil, "North American Sales Manager", "2427 Notre Dame Ave.", nil, nil, nil, nil, 559697.5639},
				{275, nil, "Michael", "G", "Blythe", nil, "Sales Representative", "8154 Via Mexico", nil, "Northeast", "North America", 300000, 3763178.1787},
			},
		},
		{
			Name: "Sales vIndividualCustomer",
			Header: []string{"BusinessEntityID", "Title", "FirstName", "MiddleName", "LastName", "Suffix",
				"AddressLine1", "AddressLine2"},
			Rows: [][]any{
				{1699, nil, "David", "R.", "Robinett", nil, "Pappelallee 6667", nil},
				{1700, "Ms.", "Rebecca", "A.", "Robinson", "Jr.", "1861 Chinquapin Ct", nil},
			},
		},
	}
}
