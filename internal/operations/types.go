package operations

import (
	"time"

	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/cleaning"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/config"
)

// Mode identifies how the set of tables for a run was chosen
type Mode string

const (
	ModeAll      Mode = "all"
	ModeSelected Mode = "selected"
	ModeSingle   Mode = "single"
)

// DirLabel returns the mode's part of the output directory name
func (m Mode) DirLabel() string {
	switch m {
	case ModeSelected:
		return config.ModeLabelSelected
	case ModeSingle:
		return config.ModeLabelSingle
	default:
		return config.ModeLabelAll
	}
}

// Selection holds 1-based registry positions in the order they were entered
type Selection struct {
	Positions []int
}

// SelectAll returns a selection of positions 1..n
func SelectAll(n int) Selection {
	s := Selection{Positions: make([]int, n)}
	for i := range s.Positions {
		s.Positions[i] = i + 1
	}
	return s
}

// TableResult is the outcome of one table within a run
type TableResult struct {
	Table      string
	OutputPath string
	Report     *cleaning.Report
	Err        error
	Duration   time.Duration
}

// OK reports whether the table was cleaned and written
func (r TableResult) OK() bool {
	return r.Err == nil
}

// RunResult is the outcome of a run
type RunResult struct {
	RunID      string
	Mode       Mode
	OutputDir  string
	Tables     []TableResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded returns the tables that were written
func (r *RunResult) Succeeded() []TableResult {
	var out []TableResult
	for _, t := range r.Tables {
		if t.OK() {
			out = append(out, t)
		}
	}
	return out
}

// Failed returns the tables that were not written
func (r *RunResult) Failed() []TableResult {
	var out []TableResult
	for _, t := range r.Tables {
		if !t.OK() {
			out = append(out, t)
		}
	}
	return out
}

// Duration is the wall time of the run
func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
