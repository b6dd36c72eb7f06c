package workbook

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/table"
)

var (
	intRe   = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)
	floatRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// Options configures how sheets are decoded
type Options struct {
	// NullTokens are cell texts read as missing values
	NullTokens []string
	Logger     *slog.Logger
}

// Workbook is a source workbook opened once and read sheet by sheet
type Workbook struct {
	path   string
	file   *excelize.File
	nulls  map[string]struct{}
	logger *slog.Logger
}

// Open opens an .xlsx workbook for reading
func Open(path string, opts Options) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	nulls := make(map[string]struct{}, len(opts.NullTokens))
	for _, tok := range opts.NullTokens {
		nulls[tok] = struct{}{}
	}
	// An empty cell is always missing
	nulls[""] = struct{}{}

	logger.Info("Opened source workbook",
		slog.String("path", path),
		slog.Int("sheet_count", len(f.GetSheetList())))

	return &Workbook{path: path, file: f, nulls: nulls, logger: logger}, nil
}

// Path returns the workbook location
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames lists the sheets in workbook order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether a sheet with exactly this name exists.
// excelize matches sheet names case-insensitively, so the list is compared here.
func (w *Workbook) HasSheet(name string) bool {
	for _, sheet := range w.file.GetSheetList() {
		if sheet == name {
			return true
		}
	}
	return false
}

// ReadTable decodes the sheet with the given name. The first row is the
// header; blank rows are dropped.
func (w *Workbook) ReadTable(name string) (*table.Table, error) {
	if !w.HasSheet(name) {
		return nil, apperrors.NewSourceUnavailableError(name, excelize.ErrSheetNotExist{SheetName: name})
	}

	rows, err := w.file.Rows(name)
	if err != nil {
		return nil, apperrors.NewSourceUnavailableError(name, err)
	}
	defer rows.Close()

	var (
		header []string
		data   [][]any
		line   int
	)
	for rows.Next() {
		line++
		cells, err := rows.Columns()
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read row %d of %s", line, name), err)
		}

		if header == nil {
			if isBlank(cells) {
				continue
			}
			header = normalizeHeader(cells)
			continue
		}

		if isBlank(cells) {
			continue
		}
		if len(cells) > len(header) {
			w.logger.Debug("Row wider than header, extra cells dropped",
				slog.String("sheet", name),
				slog.Int("row", line),
				slog.Int("cells", len(cells)),
				slog.Int("columns", len(header)))
			cells = cells[:len(header)]
		}

		row := make([]any, len(header))
		for i, c := range cells {
			row[i] = w.parseCell(c)
		}
		data = append(data, row)
	}
	if err := rows.Error(); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to iterate rows of %s", name), err)
	}

	t := table.New(name, header, data)
	w.logger.Debug("Sheet decoded",
		slog.String("sheet", name),
		slog.Int("columns", len(t.Columns)),
		slog.Int("rows", t.Len()))
	return t, nil
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// parseCell maps a cell's text to nil, int64, float64 or string
func (w *Workbook) parseCell(s string) any {
	if _, isNull := w.nulls[s]; isNull {
		return nil
	}
	return ParseValue(s)
}

// ParseValue converts numeric text to int64 or float64. Text with a leading
// zero such as a postal code stays a string.
func ParseValue(s string) any {
	switch {
	case intRe.MatchString(s):
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	case floatRe.MatchString(s):
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return s
}

func normalizeHeader(cells []string) []string {
	header := make([]string, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			c = fmt.Sprintf("Unnamed: %d", i)
		}
		header[i] = c
	}
	return header
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
