package catalog

import "github.com/Laila-Said/AdventureWorks2019-Insights/internal/cleaning"

// TableID identifies a supported table
type TableID int

const (
	WorkOrder TableID = iota + 1
	ProductInventory
	Product
	SalesOrderHeader
	SalesOrderDetail
	Address
	Person
	BillOfMaterials
	Customer
	SalesPerson
	Vendor
	Employee
	VStoreWithAddresses
	VSalesPerson
	VIndividualCustomer
)

var tableNames = map[TableID]string{
	WorkOrder:           "Production WorkOrder",
	ProductInventory:    "Production ProductInventory",
	Product:             "Production Product",
	SalesOrderHeader:    "Sales SalesOrderHeader",
	SalesOrderDetail:    "Sales SalesOrderDetail",
	Address:             "Person Address",
	Person:              "Person Person",
	BillOfMaterials:     "Production BillOfMaterials",
	Customer:            "Sales Customer",
	SalesPerson:         "Sales SalesPerson",
	Vendor:              "Purchasing Vendor",
	Employee:            "HumanResources Employee",
	VStoreWithAddresses: "Sales vStoreWithAddresses",
	VSalesPerson:        "Sales vSalesPerson",
	VIndividualCustomer: "Sales vIndividualCustomer",
}

// String returns the sheet name of the table
func (id TableID) String() string {
	if name, ok := tableNames[id]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether id names a supported table
func (id TableID) Valid() bool {
	_, ok := tableNames[id]
	return ok
}

var (
	missingSentinel = cleaning.Sentinel{Value: int64(-1), Reason: "missing reference"}
	optional        = cleaning.Retain{Reason: "optional attribute"}
)

// Policies returns the cleaning policy of every supported table in menu order
func Policies() []Entry {
	return []Entry{
		{ID: WorkOrder, Policy: cleaning.TablePolicy{
			Table: WorkOrder.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"ScrapReasonID"}, Disposition: cleaning.Retain{Reason: "work order was not scrapped"}},
			},
		}},
		{ID: ProductInventory, Policy: cleaning.TablePolicy{
			Table: ProductInventory.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"Shelf"}, Disposition: cleaning.Sentinel{Value: "NONE", Reason: "no shelf assigned"}},
			},
			Diagnostics: []cleaning.Diagnostic{
				cleaning.NullBreakdown{Column: "Shelf", By: "LocationID"},
			},
		}},
		{ID: Product, Policy: cleaning.TablePolicy{
			Table: Product.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"Weight"}, Disposition: cleaning.ZeroFill{Reason: "weight not recorded"}},
				{Columns: []string{"ProductSubcategoryID", "ProductModelID"}, Disposition: missingSentinel},
				{Columns: []string{"Color", "Size", "SizeUnitMeasureCode", "WeightUnitMeasureCode",
					"ProductLine", "Class", "Style", "SellEndDate"}, Disposition: optional},
			},
			Diagnostics: []cleaning.Diagnostic{cleaning.NullSummary{}},
		}},
		{ID: SalesOrderHeader, Policy: cleaning.TablePolicy{
			Table: SalesOrderHeader.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"SalesPersonID", "CreditCardID", "CurrencyRateID"}, Disposition: missingSentinel},
				{Columns: []string{"PurchaseOrderNumber", "CreditCardApprovalCode"}, Disposition: optional},
			},
			Diagnostics: []cleaning.Diagnostic{cleaning.NullSummary{}},
		}},
		{ID: SalesOrderDetail, Policy: cleaning.TablePolicy{
			Table: SalesOrderDetail.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"CarrierTrackingNumber"}, Disposition: cleaning.Sentinel{Value: "PENDING", Reason: "not shipped yet"}},
			},
		}},
		{ID: Address, Policy: cleaning.TablePolicy{
			Table: Address.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"AddressLine2"}, Disposition: optional},
			},
		}},
		{ID: Person, Policy: cleaning.TablePolicy{
			Table: Person.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"Title", "MiddleName"}, Disposition: optional},
			},
		}},
		{ID: BillOfMaterials, Policy: cleaning.TablePolicy{
			Table: BillOfMaterials.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"ProductAssemblyID"}, Disposition: cleaning.Sentinel{Value: int64(-1), Reason: "top level component"}},
				{Columns: []string{"EndDate"}, Disposition: cleaning.Retain{Reason: "still in use"}},
			},
		}},
		{ID: Customer, Policy: cleaning.TablePolicy{
			Table: Customer.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"PersonID", "StoreID"}, Disposition: cleaning.Retain{Reason: "customer is a person or a store"}},
				{Columns: []string{"StoreID", "PersonID"}, Disposition: cleaning.Derive{
					Target: "CustomerType",
					Rules: []cleaning.PresenceRule{
						{Column: "StoreID", Label: "Store"},
						{Column: "PersonID", Label: "Individual"},
					},
					Fallback: "Unknown",
				}},
			},
		}},
		{ID: SalesPerson, Policy: cleaning.TablePolicy{
			Table: SalesPerson.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"TerritoryID"}, Disposition: cleaning.Sentinel{Value: int64(-1), Reason: "no territory"}},
				{Columns: []string{"SalesQuota"}, Disposition: cleaning.ZeroFill{Reason: "no quota"}},
			},
		}},
		{ID: Vendor, Policy: cleaning.TablePolicy{
			Table: Vendor.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"PurchasingWebServiceURL"}, Disposition: optional},
			},
		}},
		{ID: Employee, Policy: cleaning.TablePolicy{
			Table: Employee.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"OrganizationNode", "OrganizationLevel"}, Disposition: cleaning.Retain{Reason: "root of the hierarchy"}},
			},
			Diagnostics: []cleaning.Diagnostic{
				cleaning.NullRowProbe{Column: "OrganizationNode", Show: "JobTitle"},
			},
		}},
		{ID: VStoreWithAddresses, Policy: cleaning.TablePolicy{
			Table: VStoreWithAddresses.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"AddressLine2"}, Disposition: optional},
			},
		}},
		{ID: VSalesPerson, Policy: cleaning.TablePolicy{
			Table: VSalesPerson.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"Title", "MiddleName", "Suffix", "AddressLine2", "TerritoryName", "TerritoryGroup"}, Disposition: optional},
				{Columns: []string{"SalesQuota"}, Disposition: cleaning.ZeroFill{Reason: "no quota"}},
			},
			Diagnostics: []cleaning.Diagnostic{cleaning.NullSummary{}},
		}},
		{ID: VIndividualCustomer, Policy: cleaning.TablePolicy{
			Table: VIndividualCustomer.String(),
			Columns: []cleaning.ColumnPolicy{
				{Columns: []string{"Title", "MiddleName", "Suffix", "AddressLine2"}, Disposition: optional},
			},
			Diagnostics: []cleaning.Diagnostic{cleaning.NullSummary{}},
		}},
	}
}
