package analyzer

import (
	"github.com/ccollicutt/msgsift/pkg/parser"
)

// newDataset builds a dataset from (phone, message) pairs.
func newDataset(pairs ...[2]string) *parser.Dataset {
	ds := &parser.Dataset{
		Header:  []string{parser.DefaultPhoneColumn, parser.DefaultMessageColumn},
		Rows:    []parser.Row{},
		Columns: parser.DefaultColumns(),
	}
	for i, p := range pairs {
		ds.Rows = append(ds.Rows, parser.Row{
			Line:    i + 2,
			Phone:   p[0],
			Message: p[1],
			Fields: map[string]string{
				parser.DefaultPhoneColumn:   p[0],
				parser.DefaultMessageColumn: p[1],
			},
		})
	}
	return ds
}

// scenario is the two-row dataset used across the suites.
func scenario() *parser.Dataset {
	return newDataset(
		[2]string{"111", "Hola, ¿dónde estás?"},
		[2]string{"222", "Estoy en -33.45;-70.66 ahora"},
	)
}

func phones(rows []parser.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Phone)
	}
	return out
}
