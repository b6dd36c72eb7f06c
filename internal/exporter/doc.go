// Package exporter writes cleaned tables to disk.
//
// Two writers implement Writer:
//
// XLSXWriter: one workbook per table, streamed with excelize, with a single
// sheet named after the table. Missing values are written as empty cells.
//
// CSVWriter: plain CSV with an optional UTF-8 BOM for Excel compatibility.
//
// Example usage:
//
//	w, err := exporter.ForFormat(cfg.Cleaning.Format, cfg.Cleaning, logger)
//	if err != nil {
//	    return err
//	}
//	err = w.WriteTable(filepath.Join(dir, "Sales_Customer_clean."+w.Extension()), cleaned)
package exporter
