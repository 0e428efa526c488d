package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON for scripts and webhooks.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as indented JSON. Quiet mode writes only the
// summary object.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	// Message bodies keep characters such as < and & as written.
	encoder.SetEscapeHTML(false)

	if f.opts.Quiet {
		return encoder.Encode(report.Summary)
	}
	return encoder.Encode(report)
}
