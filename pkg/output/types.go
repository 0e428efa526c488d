// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/msgsift/pkg/analyzer"
	"github.com/ccollicutt/msgsift/pkg/parser"
)

// Report is the complete output of one run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Result is the output of the action.
	Result *analyzer.Result

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// Action is the analysis that ran.
	Action analyzer.Action

	// Query is the search needle, if any.
	Query string

	// Results is the number of entries the action produced.
	Results int

	// RowsParsed is the number of well-formed rows in the input.
	RowsParsed int

	// RowsSkipped is the number of malformed rows dropped by the parser.
	RowsSkipped int
}

// Metadata provides context about the run.
type Metadata struct {
	// RunID identifies this run, e.g. in webhook deliveries.
	RunID string

	// Source is the input path ("-" for stdin).
	Source string

	// Header lists the input columns in file order.
	Header []string

	// Skipped lists the malformed rows.
	Skipped []parser.SkippedRow

	// AnalyzedAt is when the action completed.
	AnalyzedAt time.Time

	// Duration is how long the action took.
	Duration time.Duration
}

// NewReport creates a Report from an action result and the dataset it ran on.
func NewReport(result *analyzer.Result, ds *parser.Dataset, source string) *Report {
	return &Report{
		Result: result,
		Summary: Summary{
			Action:      result.Action,
			Query:       result.Query,
			Results:     result.Count(),
			RowsParsed:  ds.Len(),
			RowsSkipped: len(ds.Skipped),
		},
		Metadata: Metadata{
			RunID:      uuid.NewString(),
			Source:     source,
			Header:     ds.Header,
			Skipped:    ds.Skipped,
			AnalyzedAt: result.Stats.EndTime,
			Duration:   result.Stats.EndTime.Sub(result.Stats.StartTime),
		},
	}
}

// HasResults returns true if the action produced at least one entry.
func (r *Report) HasResults() bool {
	return r.Summary.Results > 0
}
