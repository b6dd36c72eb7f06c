package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/catalog"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/operations"
)

// Runner is the part of operations.Manager the menu drives
type Runner interface {
	RunAll(ctx context.Context) *operations.RunResult
	RunSelected(ctx context.Context, sel operations.Selection) *operations.RunResult
	RunSingle(ctx context.Context, name string) *operations.RunResult
	Registry() *catalog.Registry
}

// Session is an interactive menu loop
type Session struct {
	In      io.Reader
	Out     io.Writer
	Manager Runner
	Logger  *slog.Logger

	scanner *bufio.Scanner
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Bad input is reported and the menu is shown again.
func (s *Session) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	s.scanner = bufio.NewScanner(s.In)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		line, ok := s.prompt("Enter your choice (1-4): ")
		if !ok {
			fmt.Fprintln(s.Out)
			return nil
		}

		cmd, err := ParseChoice(line)
		if err != nil {
			s.Logger.DebugContext(ctx, "invalid_menu_input", slog.String("input", line))
			fmt.Fprintf(s.Out, "Error: %s\n\n", userMessage(err))
			continue
		}

		switch cmd {
		case CommandRunAll:
			PrintResult(s.Out, s.Manager.RunAll(ctx))
		case CommandRunSelected:
			if !s.runSelected(ctx) {
				return nil
			}
		case CommandRunSingle:
			if !s.runSingle(ctx) {
				return nil
			}
		case CommandExit:
			fmt.Fprintln(s.Out, "Goodbye.")
			return nil
		}
	}
}

// runSelected returns false when input ended
func (s *Session) runSelected(ctx context.Context) bool {
	reg := s.Manager.Registry()
	s.printTables(reg)

	line, ok := s.prompt("Enter table numbers separated by commas, or 'all': ")
	if !ok {
		return false
	}
	sel, err := ParseSelection(line, reg.Count())
	if err != nil {
		s.Logger.DebugContext(ctx, "invalid_selection_input", slog.String("input", line))
		fmt.Fprintf(s.Out, "Error: %s\n\n", userMessage(err))
		return true
	}
	PrintResult(s.Out, s.Manager.RunSelected(ctx, sel))
	return true
}

// runSingle returns false when input ended
func (s *Session) runSingle(ctx context.Context) bool {
	reg := s.Manager.Registry()
	s.printTables(reg)

	line, ok := s.prompt(fmt.Sprintf("Enter table number (1-%d): ", reg.Count()))
	if !ok {
		return false
	}
	pos, err := ParseTableIndex(line, reg.Count())
	if err != nil {
		s.Logger.DebugContext(ctx, "invalid_table_input", slog.String("input", line))
		fmt.Fprintf(s.Out, "Error: %s\n\n", userMessage(err))
		return true
	}
	entry, _ := reg.At(pos)
	PrintResult(s.Out, s.Manager.RunSingle(ctx, entry.Name()))
	return true
}

func (s *Session) prompt(text string) (string, bool) {
	fmt.Fprint(s.Out, text)
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *Session) printMenu() {
	fmt.Fprintf(s.Out, "%s %s\n", config.AppName, config.AppVersion)
	for c := CommandRunAll; c <= CommandExit; c++ {
		fmt.Fprintf(s.Out, "  %d. %s\n", int(c), c)
	}
}

func (s *Session) printTables(reg *catalog.Registry) {
	fmt.Fprintln(s.Out, "Available tables:")
	for i, name := range reg.Names() {
		fmt.Fprintf(s.Out, "  %2d. %s\n", i+1, name)
	}
}
