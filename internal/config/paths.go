package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Paths resolves every location a run reads from or writes to.
// All paths are derived from the source workbook unless overridden.
type Paths struct {
	SourceFile string
	SourceDir  string

	// OutputDir, when set, replaces the timestamped per-run directory.
	OutputDir string

	DirPrefix       string
	TimestampLayout string
	Extension       string
}

// NewPaths resolves the source workbook to an absolute path and applies the
// cleaning configuration.
func NewPaths(sourceFile string, cfg CleaningConfig) (*Paths, error) {
	abs, err := filepath.Abs(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path %s: %w", sourceFile, err)
	}

	p := &Paths{
		SourceFile:      abs,
		SourceDir:       filepath.Dir(abs),
		OutputDir:       cfg.OutputDir,
		DirPrefix:       cfg.DirPrefix,
		TimestampLayout: cfg.TimestampLayout,
		Extension:       cfg.Format,
	}
	if p.DirPrefix == "" {
		p.DirPrefix = DefaultDirPrefix
	}
	if p.TimestampLayout == "" {
		p.TimestampLayout = DefaultTimestampLayout
	}
	if p.Extension == "" {
		p.Extension = FormatXLSX
	}
	return p, nil
}

// RunDir returns the output directory for a run started at ts, for example
// <source dir>/AdventureWorks_Selected_20240115093000.
func (p *Paths) RunDir(modeLabel string, ts time.Time) string {
	if p.OutputDir != "" {
		return p.OutputDir
	}
	name := fmt.Sprintf("%s_%s_%s", p.DirPrefix, modeLabel, ts.Format(p.TimestampLayout))
	return filepath.Join(p.SourceDir, name)
}

// OutputFile returns the artifact path for a table inside dir
func (p *Paths) OutputFile(dir, table string) string {
	return filepath.Join(dir, OutputFileName(table, p.Extension))
}

// OutputFileName maps "Sales Customer" to "Sales_Customer_clean.xlsx"
func OutputFileName(table, ext string) string {
	return strings.ReplaceAll(table, " ", "_") + CleanSuffix + "." + strings.TrimPrefix(ext, ".")
}

// EnsureDir creates dir if it does not exist yet
func EnsureDir(dir string) (created bool, err error) {
	if _, statErr := os.Stat(dir); statErr == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	slog.Debug("Ensured directory exists", slog.String("directory", dir))
	return true, nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution summary",
		slog.String("source_file", p.SourceFile),
		slog.String("source_dir", p.SourceDir),
		slog.String("output_dir_override", p.OutputDir),
		slog.String("dir_prefix", p.DirPrefix),
		slog.String("extension", p.Extension))
}
