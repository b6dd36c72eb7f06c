package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
)

// XLSXWriter writes each cleaned table as a single-sheet workbook
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger}
}

// Extension implements Writer
func (w *XLSXWriter) Extension() string {
	return "xlsx"
}

// WriteTable streams t into a new workbook at filePath. Missing values are
// left as empty cells.
func (w *XLSXWriter) WriteTable(filePath string, t *table.Table) error {
	w.logger.Info("Writing workbook",
		slog.String("file_path", filePath),
		slog.String("table", t.Name),
		slog.Int("row_count", t.Len()))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(t.Name)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		copy(values, row)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}
	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// SheetName truncates a table name to Excel's sheet name limit
func SheetName(name string) string {
	r := []rune(name)
	if len(r) > config.MaxSheetNameLength {
		return string(r[:config.MaxSheetNameLength])
	}
	return name
}
