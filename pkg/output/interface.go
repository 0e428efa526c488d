package output

import (
	"context"
	"io"
)

// Formatter renders reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, csv).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds message bodies, skipped rows and timing details.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool

	// Delimiter is the field separator for csv output (default ';').
	Delimiter rune
}
