// Package config loads the null handler configuration and resolves the paths
// a run reads from and writes to.
//
// # Configuration Sources
//
// Values are layered in the following order, later sources winning:
//
//  1. Default()
//  2. A YAML file (nullhandler.yaml or configs/nullhandler.yaml, or -config)
//  3. Environment variables prefixed with AWNULL_
//
// Examples:
//
//	AWNULL_LOGGING_LEVEL=debug
//	AWNULL_CLEANING_FORMAT=csv
//	AWNULL_CLEANING_OUTPUT_DIR=/srv/cleaned
//	AWNULL_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/nullhandler.prom
//
// The merged configuration is validated with go-playground/validator tags.
//
// # Paths
//
// Paths derives the per-run output directory from the source workbook:
//
//	<source dir>/AdventureWorks_<Mode>_<YYYYMMDDhhmmss>/<Table_Name>_clean.xlsx
package config
