package analyzer

import (
	"github.com/ccollicutt/msgsift/pkg/parser"
)

// Query executes one analysis action. Each action (search, coordinates,
// words) implements this interface.
type Query interface {
	// Action returns the action this query implements.
	Action() Action

	// Execute runs the query over ds and records its output in result.
	// Queries never modify ds.
	Execute(ds *parser.Dataset, req Request, result *Result)
}
