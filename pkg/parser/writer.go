package parser

import (
	"encoding/csv"
	"io"
)

// WriteRows serialises the header and rows with the given delimiter.
// Parsing the output yields the same field values.
func WriteRows(w io.Writer, ds *Dataset, rows []Row, delimiter rune) error {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(ds.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(ds.Records(rows)); err != nil {
		return err
	}
	return cw.Error()
}
