package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/msgsift/pkg/analyzer"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "msgsift: %s, %d result(s), %d rows parsed, %d skipped\n",
		report.Summary.Action,
		report.Summary.Results,
		report.Summary.RowsParsed,
		report.Summary.RowsSkipped)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	result := report.Result

	fmt.Fprintf(w, "=== msgsift: %s ===\n", title(report.Summary))
	fmt.Fprintln(w)

	switch result.Action {
	case analyzer.ActionSearch:
		f.formatMatches(result, w)
	case analyzer.ActionCoordinates:
		f.formatCoordinates(result, w)
	case analyzer.ActionWords:
		f.formatWords(result, w)
	default:
		return fmt.Errorf("unknown action %q", result.Action)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d result(s) from %d rows\n",
		report.Summary.Results,
		report.Summary.RowsParsed)

	if report.Summary.RowsSkipped > 0 {
		fmt.Fprintf(w, "Skipped: %d malformed row(s)\n", report.Summary.RowsSkipped)
		if f.opts.Verbose {
			for _, s := range report.Metadata.Skipped {
				fmt.Fprintf(w, "  - line %d: %s\n", s.Line, s.Reason)
			}
		}
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
		fmt.Fprintf(w, "Run ID: %s\n", report.Metadata.RunID)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e3))
	}

	return nil
}

func title(s Summary) string {
	if s.Action == analyzer.ActionSearch {
		return fmt.Sprintf("search %q", s.Query)
	}
	return string(s.Action)
}

func (f *TextFormatter) formatMatches(result *analyzer.Result, w io.Writer) {
	if len(result.Matches) == 0 {
		if strings.TrimSpace(result.Query) == "" {
			fmt.Fprintln(w, "  No search text given")
		} else {
			fmt.Fprintln(w, "  No matching messages")
		}
		fmt.Fprintln(w)
		return
	}

	for _, row := range result.Matches {
		fmt.Fprintf(w, "[%s] line %d\n", row.Phone, row.Line)
		fmt.Fprintf(w, "  %s\n", indent(row.Message))
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatCoordinates(result *analyzer.Result, w io.Writer) {
	if len(result.Coordinates) == 0 {
		fmt.Fprintln(w, "  No coordinates found")
		fmt.Fprintln(w)
		return
	}

	for _, pc := range result.Coordinates {
		pairs := make([]string, 0, len(pc.Coordinates))
		for _, c := range pc.Coordinates {
			pairs = append(pairs, c.String())
		}
		fmt.Fprintf(w, "[%s] %s\n", pc.Phone, strings.Join(pairs, ", "))

		if f.opts.Verbose {
			for _, c := range pc.Coordinates {
				fmt.Fprintf(w, "  - lat %s, lon %s\n", c.Latitude(), c.Longitude())
			}
			fmt.Fprintf(w, "  line %d: %s\n", pc.Line, indent(pc.Message))
		}
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatWords(result *analyzer.Result, w io.Writer) {
	if result.PhoneWords != nil {
		if len(result.PhoneWords) == 0 {
			fmt.Fprintln(w, "  No words to rank")
			fmt.Fprintln(w)
			return
		}
		for _, pw := range result.PhoneWords {
			fmt.Fprintf(w, "[%s]\n", pw.Phone)
			writeRanking(w, pw.Words)
			fmt.Fprintln(w)
		}
		return
	}

	if len(result.Words) == 0 {
		fmt.Fprintln(w, "  No words to rank")
		fmt.Fprintln(w)
		return
	}
	writeRanking(w, result.Words)
	fmt.Fprintln(w)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Tokens counted: %d (%d distinct)\n",
			result.Stats.TokensCounted, result.Stats.DistinctWords)
	}
}

func writeRanking(w io.Writer, words []analyzer.WordCount) {
	width := 0
	for _, wc := range words {
		if n := len([]rune(wc.Word)); n > width {
			width = n
		}
	}
	for i, wc := range words {
		pad := strings.Repeat(" ", width-len([]rune(wc.Word)))
		fmt.Fprintf(w, "  %2d. %s%s  %d\n", i+1, wc.Word, pad, wc.Count)
	}
}

// indent keeps multi-line messages aligned under their header line.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}
