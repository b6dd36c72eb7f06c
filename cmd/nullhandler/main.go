package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/catalog"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/cli"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/exporter"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/infrastructure"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/operations"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/validation"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/workbook"
)

const (
	exitOK          = 0
	exitFatal       = 1
	exitTableFailed = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nullhandler", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inFile := fs.String("in", "", "source AdventureWorks workbook (.xlsx), prompted for when empty in menu mode")
	outDir := fs.String("out", "", "output directory (defaults to AdventureWorks_<Mode>_<timestamp> next to the source)")
	mode := fs.String("mode", "menu", "run mode: menu, all, selected or single")
	tables := fs.String("tables", "", "table numbers for -mode selected, e.g. \"2,5\" or \"all\"")
	tableName := fs.String("table", "", "table name or number for -mode single")
	format := fs.String("format", "", "output format: xlsx or csv")
	configFile := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return exitFatal
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFatal
	}
	if *outDir != "" {
		cfg.Cleaning.OutputDir = *outDir
	}
	if *format != "" {
		cfg.Cleaning.Format = strings.ToLower(strings.TrimPrefix(*format, "."))
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = infrastructure.GetLogger()
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.WithSessionID(ctx, infrastructure.GenerateRunID())
	logger.InfoContext(ctx, "Starting AdventureWorks null handler",
		slog.String("version", config.AppVersion),
		slog.String("mode", *mode))

	in := bufio.NewReader(stdin)
	source := strings.TrimSpace(*inFile)
	if source == "" && *mode == "menu" {
		fmt.Fprint(stdout, "Enter the path to the AdventureWorks workbook: ")
		line, _ := in.ReadString('\n')
		source = strings.Trim(strings.TrimSpace(line), `"'`)
	}
	if source == "" {
		fmt.Fprintln(stdout, "Error: no source workbook given")
		logger.ErrorContext(ctx, "No source workbook given")
		return exitFatal
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateWorkbook(source); err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		logger.ErrorContext(ctx, "Source workbook unavailable",
			slog.String("path", source),
			slog.String("error", err.Error()))
		return exitFatal
	}

	wb, err := workbook.Open(source, workbook.Options{NullTokens: cfg.Cleaning.NullTokens, Logger: logger})
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		logger.ErrorContext(ctx, "Failed to open source workbook", slog.String("error", err.Error()))
		return exitFatal
	}
	defer wb.Close()

	registry := catalog.Default()
	if missing := validator.MissingSheets(wb.SheetNames(), registry.Names()); len(missing) > 0 {
		fmt.Fprintf(stdout, "Warning: %d table(s) not found in the workbook: %s\n", len(missing), strings.Join(missing, ", "))
	}

	paths, err := config.NewPaths(source, cfg.Cleaning)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitFatal
	}
	paths.LogPathResolution(logger)
	if paths.OutputDir != "" {
		if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
			return exitFatal
		}
	}

	writer, err := exporter.ForFormat(cfg.Cleaning.Format, cfg.Cleaning, logger)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitFatal
	}

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: telemetry disabled: %v\n", err)
		otelProviders, _ = infrastructure.InitializeOTel(config.TelemetryConfig{}, logger)
	}
	defer func() {
		if err := otelProviders.WriteMetricsFile(cfg.Telemetry.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics file", slog.String("error", err.Error()))
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelProviders.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	runMetrics, err := infrastructure.NewRunMetrics(otelProviders.Meter)
	if err != nil {
		logger.Warn("Failed to create run metrics", slog.String("error", err.Error()))
	}

	manager := operations.NewManager(registry, wb, writer, paths,
		operations.WithLogger(logger),
		operations.WithTracer(otelProviders.Tracer),
		operations.WithMetrics(runMetrics))

	var result *operations.RunResult
	switch *mode {
	case "menu":
		session := &cli.Session{In: in, Out: stdout, Manager: manager, Logger: logger}
		if err := session.Run(ctx); err != nil {
			logger.WarnContext(ctx, "Session ended", slog.String("error", err.Error()))
		}
		return exitOK
	case "all":
		result = manager.RunAll(ctx)
	case "selected":
		sel, err := cli.ParseSelection(*tables, registry.Count())
		if err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
			return exitFatal
		}
		result = manager.RunSelected(ctx, sel)
	case "single":
		result = manager.RunSingle(ctx, resolveTable(registry, *tableName))
	default:
		fmt.Fprintf(stderr, "Error: unknown mode %q (use menu, all, selected or single)\n", *mode)
		return exitFatal
	}

	cli.PrintResult(stdout, result)
	if len(result.Failed()) > 0 {
		return exitTableFailed
	}
	return exitOK
}

// resolveTable accepts a sheet name or a 1-based table number
func resolveTable(registry *catalog.Registry, value string) string {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if e, ok := registry.At(n); ok {
			return e.Name()
		}
	}
	return value
}
