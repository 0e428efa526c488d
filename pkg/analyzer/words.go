package analyzer

import (
	"cmp"
	"slices"

	"github.com/ccollicutt/msgsift/pkg/parser"
)

// DefaultTopK is the number of words returned when no limit is given.
const DefaultTopK = 10

// WordCount pairs a token with its number of occurrences.
type WordCount struct {
	Word  string
	Count int
}

// PhoneWords is the ranking for the messages of a single phone.
type PhoneWords struct {
	Phone string
	Words []WordCount
}

// WordCounter ranks message tokens, ignoring a fixed set of stop words.
type WordCounter struct {
	stopWords StopWords
}

// NewWordCounter creates a counter that drops the given stop words.
func NewWordCounter(stopWords StopWords) *WordCounter {
	return &WordCounter{stopWords: stopWords}
}

// StopWords returns the counter's stop words.
func (c *WordCounter) StopWords() StopWords {
	return c.stopWords
}

// Tally counts the non-stop-word tokens of rows, in row order.
func (c *WordCounter) Tally(rows []parser.Row) *Tally {
	t := newTally()
	for _, row := range rows {
		c.add(t, row.Message)
	}
	return t
}

// TopWords returns the k most frequent words of the dataset.
func (c *WordCounter) TopWords(ds *parser.Dataset, k int) []WordCount {
	return c.Tally(ds.Rows).Top(k)
}

// TopWordsByPhone ranks words separately for each phone. Phones appear in
// the order they are first seen in the dataset; phones whose messages hold
// only stop words are omitted.
func (c *WordCounter) TopWordsByPhone(ds *parser.Dataset, k int) []PhoneWords {
	tallies := make(map[string]*Tally)
	var phones []string

	for _, row := range ds.Rows {
		t, ok := tallies[row.Phone]
		if !ok {
			t = newTally()
			tallies[row.Phone] = t
			phones = append(phones, row.Phone)
		}
		c.add(t, row.Message)
	}

	results := []PhoneWords{}
	for _, phone := range phones {
		t := tallies[phone]
		if t.Distinct() == 0 {
			continue
		}
		results = append(results, PhoneWords{Phone: phone, Words: t.Top(k)})
	}
	return results
}

func (c *WordCounter) add(t *Tally, message string) {
	for _, token := range Tokenize(message) {
		if c.stopWords.Contains(token) {
			continue
		}
		t.add(token)
	}
}

// TopWords ranks the dataset's words using the default stop words.
func TopWords(ds *parser.Dataset, k int) []WordCount {
	return NewWordCounter(DefaultStopWords()).TopWords(ds, k)
}

// Tally accumulates token counts, remembering first-encounter order.
type Tally struct {
	order  []string
	counts map[string]int
	total  int
}

func newTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

func (t *Tally) add(token string) {
	if _, seen := t.counts[token]; !seen {
		t.order = append(t.order, token)
	}
	t.counts[token]++
	t.total++
}

// Total returns the number of tokens counted.
func (t *Tally) Total() int {
	return t.total
}

// Distinct returns the number of distinct tokens.
func (t *Tally) Distinct() int {
	return len(t.order)
}

// Top returns up to k words by descending count. Equal counts keep the
// order in which the words were first seen. k <= 0 means DefaultTopK.
func (t *Tally) Top(k int) []WordCount {
	if k <= 0 {
		k = DefaultTopK
	}

	ranked := make([]WordCount, 0, len(t.order))
	for _, w := range t.order {
		ranked = append(ranked, WordCount{Word: w, Count: t.counts[w]})
	}

	slices.SortStableFunc(ranked, func(a, b WordCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
