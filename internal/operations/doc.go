// Package operations runs the cleaning pipeline in one of three modes.
//
// RunAll cleans every registered table, RunSelected cleans the tables at
// chosen 1-based menu positions and RunSingle cleans one table by name. Each
// run creates its own timestamped output directory next to the source
// workbook, for example AdventureWorks_Selected_20240115093000, unless an
// output directory is configured.
//
// Tables are processed one after another. A table that cannot be read,
// cleaned or written is recorded in the RunResult and the run moves on;
// files already written are left in place.
package operations
