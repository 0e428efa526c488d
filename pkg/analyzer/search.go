package analyzer

import (
	"strings"

	"github.com/ccollicutt/msgsift/pkg/parser"
)

// Search returns the rows whose message contains needle, ignoring case, in
// dataset order.
// An empty or whitespace-only needle matches nothing.
func Search(ds *parser.Dataset, needle string) []parser.Row {
	matches := []parser.Row{}
	if strings.TrimSpace(needle) == "" {
		return matches
	}

	folded := fold(needle)
	for _, row := range ds.Rows {
		if strings.Contains(fold(row.Message), folded) {
			matches = append(matches, row)
		}
	}
	return matches
}
