package config

// Application constants
const (
	AppName    = "AdventureWorks Null Handler"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment override (AWNULL_LOGGING_LEVEL, ...)
	EnvPrefix = "AWNULL"

	// Output naming
	DefaultDirPrefix       = "AdventureWorks"
	DefaultTimestampLayout = "20060102150405"
	CleanSuffix            = "_clean"

	// Output formats
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"

	// Run mode labels used in output directory names
	ModeLabelAll      = "Clean"
	ModeLabelSelected = "Selected"
	ModeLabelSingle   = "Single"

	// Logging
	DefaultLogFile = "logs/nullhandler.log"

	// Excel limits sheet names to 31 characters
	MaxSheetNameLength = 31
)

// DefaultNullTokens are the cell texts treated as missing values when a
// workbook is read. They mirror the markers pandas recognises by default.
var DefaultNullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}
