// Package workbook reads the AdventureWorks export, a single .xlsx workbook
// holding one sheet per table, into table.Table values.
//
// A workbook is opened once per run and shared read-only across tables:
//
//	wb, err := workbook.Open(path, workbook.Options{NullTokens: cfg.Cleaning.NullTokens})
//	if err != nil {
//	    return err
//	}
//	defer wb.Close()
//
//	customers, err := wb.ReadTable("Sales Customer")
//
// Sheets are matched by exact name. A missing sheet yields a
// SOURCE_UNAVAILABLE application error.
package workbook
