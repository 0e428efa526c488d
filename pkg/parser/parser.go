package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	msgerrors "github.com/ccollicutt/msgsift/internal/errors"
	"github.com/ccollicutt/msgsift/internal/logger"
)

// Option configures parsing.
type Option func(*options)

type options struct {
	delimiter rune
	columns   Columns
}

// WithDelimiter sets the field delimiter (default ';').
func WithDelimiter(d rune) Option {
	return func(o *options) {
		if d != 0 {
			o.delimiter = d
		}
	}
}

// WithColumns overrides the names of the required columns.
// Empty names keep their defaults.
func WithColumns(c Columns) Option {
	return func(o *options) {
		if c.Phone != "" {
			o.columns.Phone = c.Phone
		}
		if c.Message != "" {
			o.columns.Message = c.Message
		}
	}
}

// Parse decodes raw export bytes into a Dataset.
//
// The input must be UTF-8; a leading byte order mark is ignored. The first
// record is the header and must contain the phone and message columns.
// Records whose field count differs from the header, or whose quoting is
// broken, are skipped and listed in Dataset.Skipped rather than failing the
// parse. A broken quote never consumes the records after it.
func Parse(raw []byte, opts ...Option) (*Dataset, error) {
	o := options{
		delimiter: DefaultDelimiter,
		columns:   DefaultColumns(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !utf8.Valid(raw) {
		return nil, msgerrors.NewDecodingError(invalidOffset(raw))
	}

	text, _, err := transform.Bytes(xunicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("stripping byte order mark: %w", err)
	}

	reader := newReader(text, o.delimiter)

	rawHeader, err := reader.Read()
	if err == io.EOF {
		return nil, msgerrors.NewInputError("file", "", "empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	header := make([]string, len(rawHeader))
	copy(header, rawHeader)

	if missing := missingColumns(header, o.columns); len(missing) > 0 {
		return nil, msgerrors.NewSchemaError(missing, header)
	}

	ds := &Dataset{
		Header:  header,
		Rows:    []Row{},
		Columns: o.columns,
	}

	// base is the number of lines that precede the reader's input.
	base := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) || !isQuoteError(perr.Err) {
				return nil, fmt.Errorf("reading record: %w", err)
			}

			skipped := SkippedRow{Line: base + perr.StartLine, Reason: quoteReason(perr.Err)}
			logger.Warn("skipping line %d: %s", skipped.Line, skipped.Reason)
			ds.Skipped = append(ds.Skipped, skipped)

			// An open quote that ran into later lines must not take them
			// with it: resume on the line after the record started.
			if perr.Line > perr.StartLine {
				text = text[lineOffset(text, perr.StartLine+1):]
				base += perr.StartLine
				reader = newReader(text, o.delimiter)
			}
			continue
		}

		line, _ := reader.FieldPos(0)
		line += base

		if len(record) != len(header) {
			skipped := SkippedRow{
				Line:       line,
				FieldCount: len(record),
				Reason:     fmt.Sprintf("%d field(s), header has %d", len(record), len(header)),
			}
			logger.Warn("skipping line %d: %s", skipped.Line, skipped.Reason)
			ds.Skipped = append(ds.Skipped, skipped)
			continue
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			fields[name] = record[i]
		}

		ds.Rows = append(ds.Rows, Row{
			Line:    line,
			Phone:   fields[o.columns.Phone],
			Message: fields[o.columns.Message],
			Fields:  fields,
		})
	}

	return ds, nil
}

// ParseReader reads r to the end and parses the content.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return Parse(raw, opts...)
}

// ParseFile reads and parses the export at path.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- user-provided export path is expected
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ds, err := Parse(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ds, nil
}

func newReader(text []byte, delimiter rune) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	return reader
}

func isQuoteError(err error) bool {
	return errors.Is(err, csv.ErrQuote) || errors.Is(err, csv.ErrBareQuote)
}

func quoteReason(err error) string {
	if errors.Is(err, csv.ErrBareQuote) {
		return "quote inside an unquoted field"
	}
	return "unbalanced quote"
}

// lineOffset returns the byte offset where the 1-based line n starts, or
// len(b) when b has fewer lines.
func lineOffset(b []byte, n int) int {
	off := 0
	for i := 1; i < n; i++ {
		j := bytes.IndexByte(b[off:], '\n')
		if j < 0 {
			return len(b)
		}
		off += j + 1
	}
	return off
}

// missingColumns returns the required columns absent from header.
func missingColumns(header []string, cols Columns) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, name := range []string{cols.Phone, cols.Message} {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
