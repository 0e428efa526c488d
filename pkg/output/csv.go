package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ccollicutt/msgsift/pkg/analyzer"
	"github.com/ccollicutt/msgsift/pkg/parser"
)

// CSVFormatter writes results as delimited text. Search results keep the
// input columns, so the output can be fed back into msgsift.
type CSVFormatter struct {
	opts FormatOptions
}

// NewCSVFormatter creates a new CSV formatter with the given options.
func NewCSVFormatter(opts FormatOptions) *CSVFormatter {
	if opts.Delimiter == 0 {
		opts.Delimiter = parser.DefaultDelimiter
	}
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format renders the report as delimited text.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.opts.Quiet {
		return f.formatSummary(report, w)
	}

	result := report.Result

	if result.Action == analyzer.ActionSearch {
		ds := &parser.Dataset{Header: report.Metadata.Header}
		return parser.WriteRows(w, ds, result.Matches, f.opts.Delimiter)
	}

	cw := csv.NewWriter(w)
	cw.Comma = f.opts.Delimiter

	var records [][]string
	switch result.Action {
	case analyzer.ActionCoordinates:
		records = append(records, []string{"phone", "line", "latitude", "longitude", "coordinates"})
		for _, pc := range result.Coordinates {
			for _, c := range pc.Coordinates {
				records = append(records, []string{
					pc.Phone, strconv.Itoa(pc.Line), c.Latitude(), c.Longitude(), c.String(),
				})
			}
		}
	case analyzer.ActionWords:
		if result.PhoneWords != nil {
			records = append(records, []string{"phone", "rank", "word", "count"})
			for _, pw := range result.PhoneWords {
				for i, wc := range pw.Words {
					records = append(records, []string{
						pw.Phone, strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count),
					})
				}
			}
			break
		}
		records = append(records, []string{"rank", "word", "count"})
		for i, wc := range result.Words {
			records = append(records, []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)})
		}
	default:
		return fmt.Errorf("unknown action %q", result.Action)
	}

	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

// formatSummary writes a header and a single summary record.
func (f *CSVFormatter) formatSummary(report *Report, w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = f.opts.Delimiter

	sum := report.Summary
	records := [][]string{
		{"action", "query", "results", "rows_parsed", "rows_skipped"},
		{
			string(sum.Action), sum.Query,
			strconv.Itoa(sum.Results), strconv.Itoa(sum.RowsParsed), strconv.Itoa(sum.RowsSkipped),
		},
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}
