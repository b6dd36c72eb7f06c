// Package shared holds helpers used across packages that belong to no single
// domain layer.
//
// The testutil subpackage provides a capturing slog handler and builders for
// AdventureWorks-shaped fixture workbooks:
//
//	path := testutil.WriteWorkbook(t, dir, "aw.xlsx", testutil.AdventureWorksSheets())
//	logger, logs := testutil.NewTestLogger(t)
package shared
