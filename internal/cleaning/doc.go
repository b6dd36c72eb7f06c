// Package cleaning applies per-table null handling policies.
//
// A TablePolicy lists ColumnPolicy entries, each binding one or more columns
// to a Disposition:
//
//	Retain    missing values are kept as they are
//	Sentinel  missing values become a fixed marker (-1, "NONE", "PENDING")
//	ZeroFill  missing values become 0
//	Derive    a new column classifies each row by which source columns are present
//
// Policies may also carry Diagnostics (NullSummary, NullBreakdown,
// NullRowProbe) that report on the source table without changing it.
//
// Cleaner.Clean works on a copy of its input and returns a Report with per
// column null counts before and after.
package cleaning
