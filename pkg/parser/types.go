// Package parser turns delimited message exports into datasets of typed rows.
package parser

// Default column names of the message export.
const (
	DefaultPhoneColumn   = "Telefono"
	DefaultMessageColumn = "Mensaje"
	DefaultDelimiter     = ';'
)

// Row is one record of the export with its required fields pulled out.
type Row struct {
	// Line is the 1-based line number where the record starts (the header is line 1).
	Line int

	// Phone is the value of the phone column.
	Phone string

	// Message is the value of the message column.
	Message string

	// Fields holds every column of the record keyed by header name,
	// including the phone and message columns.
	Fields map[string]string
}

// Get returns the value of the named column and whether the column exists.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Fields[column]
	return v, ok
}

// SkippedRow describes a record dropped because its field count did not
// match the header or its quoting was broken.
type SkippedRow struct {
	// Line is the 1-based line number where the record starts.
	Line int

	// FieldCount is the number of fields the record had; zero when the
	// record could not be split.
	FieldCount int

	// Reason says why the record was dropped.
	Reason string
}

// Dataset is the parsed content of one export. It is not modified after
// Parse returns.
type Dataset struct {
	// Header lists the column names in file order.
	Header []string

	// Rows holds the well-formed records in file order.
	Rows []Row

	// Skipped lists malformed records in file order.
	Skipped []SkippedRow

	// Columns are the column names used for the required fields.
	Columns Columns
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Records rebuilds the positional records of the given rows using the
// dataset header, suitable for re-serialisation.
func (d *Dataset) Records(rows []Row) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, len(d.Header))
		for i, name := range d.Header {
			record[i] = row.Fields[name]
		}
		records = append(records, record)
	}
	return records
}

// Columns names the required columns.
type Columns struct {
	Phone   string
	Message string
}

// DefaultColumns returns the column names of the standard export.
func DefaultColumns() Columns {
	return Columns{
		Phone:   DefaultPhoneColumn,
		Message: DefaultMessageColumn,
	}
}
