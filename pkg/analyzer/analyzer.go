package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ccollicutt/msgsift/internal/errors"
	"github.com/ccollicutt/msgsift/pkg/parser"
)

// actionAliases maps every accepted selector to its action, including the
// Spanish form selectors.
var actionAliases = map[string]Action{
	"search":          ActionSearch,
	"buscar_mensajes": ActionSearch,
	"coordinates":     ActionCoordinates,
	"coords":          ActionCoordinates,
	"ver_coordenadas": ActionCoordinates,
	"words":           ActionWords,
	"ver_palabras":    ActionWords,
}

// ParseAction resolves a user-supplied action selector.
func ParseAction(s string) (Action, error) {
	if a, ok := actionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return "", errors.NewInputError("action", s,
		"unknown action (use search, coordinates or words)")
}

// Analyzer dispatches a request to the query for its action.
type Analyzer struct {
	counter *WordCounter
	topK    int
	byPhone bool
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithStopWords replaces the stop words used by the word ranking.
func WithStopWords(s StopWords) AnalyzerOption {
	return func(a *Analyzer) {
		a.counter = NewWordCounter(s)
	}
}

// WithTopK sets how many words the ranking returns.
func WithTopK(k int) AnalyzerOption {
	return func(a *Analyzer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithByPhone ranks words per phone instead of across the whole dataset.
func WithByPhone(v bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.byPhone = v
	}
}

// NewAnalyzer creates an analyzer with the default Spanish stop words and
// a ranking of DefaultTopK words.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		counter: NewWordCounter(DefaultStopWords()),
		topK:    DefaultTopK,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the requested action over ds.
func (a *Analyzer) Run(ctx context.Context, ds *parser.Dataset, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("no dataset to analyze")
	}

	query, err := a.createQuery(req.Action)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Action: req.Action,
		Stats: Stats{
			RowsExamined: ds.Len(),
			StartTime:    time.Now(),
		},
	}

	query.Execute(ds, req, result)
	result.Stats.EndTime = time.Now()

	return result, nil
}

// createQuery returns the query implementing action.
func (a *Analyzer) createQuery(action Action) (Query, error) {
	switch action {
	case ActionSearch:
		return searchQuery{}, nil
	case ActionCoordinates:
		return coordinateQuery{}, nil
	case ActionWords:
		return wordQuery{counter: a.counter, topK: a.topK, byPhone: a.byPhone}, nil
	default:
		return nil, errors.NewInputError("action", string(action),
			"unknown action (use search, coordinates or words)")
	}
}

type searchQuery struct{}

func (searchQuery) Action() Action { return ActionSearch }

func (searchQuery) Execute(ds *parser.Dataset, req Request, result *Result) {
	result.Query = req.Query
	result.Matches = Search(ds, req.Query)
	result.Stats.RowsMatched = len(result.Matches)
}

type coordinateQuery struct{}

func (coordinateQuery) Action() Action { return ActionCoordinates }

func (coordinateQuery) Execute(ds *parser.Dataset, _ Request, result *Result) {
	result.Coordinates = ScanCoordinates(ds)
	result.Stats.RowsMatched = len(result.Coordinates)
	for _, pc := range result.Coordinates {
		result.Stats.CoordinatesFound += len(pc.Coordinates)
	}
}

type wordQuery struct {
	counter *WordCounter
	topK    int
	byPhone bool
}

func (wordQuery) Action() Action { return ActionWords }

func (q wordQuery) Execute(ds *parser.Dataset, _ Request, result *Result) {
	tally := q.counter.Tally(ds.Rows)
	result.Stats.TokensCounted = tally.Total()
	result.Stats.DistinctWords = tally.Distinct()

	if q.byPhone {
		result.PhoneWords = q.counter.TopWordsByPhone(ds, q.topK)
		return
	}
	result.Words = tally.Top(q.topK)
}
