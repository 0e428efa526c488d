// Package analyzer runs the message analyses (search, coordinate
// extraction, word frequency) over a parsed dataset.
package analyzer

import (
	"time"

	"github.com/ccollicutt/msgsift/pkg/parser"
)

// Action enumerates the available analyses.
type Action string

const (
	ActionSearch      Action = "search"
	ActionCoordinates Action = "coordinates"
	ActionWords       Action = "words"
)

// Request selects an action and carries its input.
type Request struct {
	Action Action

	// Query is the search needle; ignored by other actions.
	Query string
}

// Result holds the output of a single action. Only the fields belonging to
// Action are populated.
type Result struct {
	// Action is the analysis that produced this result.
	Action Action

	// Query is the search needle, for search results.
	Query string

	// Matches are the rows whose message contains Query.
	Matches []parser.Row

	// Coordinates lists rows with at least one coordinate pair.
	Coordinates []PhoneCoordinates

	// Words is the overall ranking.
	Words []WordCount

	// PhoneWords is the per-phone ranking, when requested.
	PhoneWords []PhoneWords

	// Stats provides execution statistics.
	Stats Stats
}

// Stats contains execution statistics for an action.
type Stats struct {
	// RowsExamined is the number of dataset rows the action looked at.
	RowsExamined int

	// RowsMatched is the number of rows that contributed a result entry.
	RowsMatched int

	// CoordinatesFound is the total number of coordinate pairs extracted.
	CoordinatesFound int

	// TokensCounted is the number of tokens left after stop-word filtering.
	TokensCounted int

	// DistinctWords is the number of distinct tokens after filtering.
	DistinctWords int

	StartTime time.Time
	EndTime   time.Time
}

// Count returns the number of entries in the result.
func (r *Result) Count() int {
	switch r.Action {
	case ActionSearch:
		return len(r.Matches)
	case ActionCoordinates:
		return len(r.Coordinates)
	case ActionWords:
		if r.PhoneWords != nil {
			return len(r.PhoneWords)
		}
		return len(r.Words)
	default:
		return 0
	}
}

// HasResults returns true if the action produced at least one entry.
func (r *Result) HasResults() bool {
	return r.Count() > 0
}
