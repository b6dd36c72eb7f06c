package exporter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
)

// Writer persists a cleaned table
type Writer interface {
	WriteTable(path string, t *table.Table) error
	// Extension is the file extension without the dot
	Extension() string
}

// ForFormat returns the writer for an output format name
func ForFormat(format string, cfg config.CleaningConfig, logger *slog.Logger) (Writer, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case config.FormatXLSX, "":
		return NewXLSXWriter(logger), nil
	case config.FormatCSV:
		return NewCSVWriter(logger, cfg.BOMPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
