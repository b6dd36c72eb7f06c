package cli

import (
	"fmt"
	"io"
	"time"

	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/operations"
)

// PrintResult writes a per table summary of a run
func PrintResult(w io.Writer, r *operations.RunResult) {
	if len(r.Tables) == 0 {
		fmt.Fprintln(w, "No tables selected.")
		fmt.Fprintln(w)
		return
	}

	if r.OutputDir != "" {
		fmt.Fprintf(w, "Output directory: %s\n", r.OutputDir)
	}
	for _, t := range r.Tables {
		if t.OK() {
			filled := 0
			if t.Report != nil {
				filled = t.Report.TotalFilled()
			}
			fmt.Fprintf(w, "  OK      %s -> %s (%d cells filled)\n", t.Table, t.OutputPath, filled)
			continue
		}
		fmt.Fprintf(w, "  FAILED  %s: %s\n", t.Table, userMessage(t.Err))
	}
	fmt.Fprintf(w, "Processed %d tables: %d succeeded, %d failed in %s\n\n",
		len(r.Tables), len(r.Succeeded()), len(r.Failed()), r.Duration().Round(time.Millisecond))
}

// userMessage strips the error type tag from application errors
func userMessage(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	}
	return err.Error()
}
