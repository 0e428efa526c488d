package analyzer

import (
	"sort"
	"strings"
)

// spanishStopWords are function words excluded from the word ranking.
var spanishStopWords = []string{
	"el", "la", "los", "las", "un", "una", "unos", "unas", "y", "o", "pero",
	"a", "ante", "bajo", "con", "contra", "de", "desde", "en", "entre",
	"hacia", "hasta", "para", "por", "sin", "sobre", "tras", "que", "quien",
	"quienes", "cual", "cuales", "me", "te", "se", "nos", "lo", "le", "les",
	"mi", "tu", "su", "nuestro", "nuestra", "nuestros", "nuestras",
	"vosotros", "vosotras", "ellos", "ellas", "yo", "tú", "él", "ella",
	"nosotros", "nosotras", "esto", "eso", "aquello", "este", "ese", "aquel",
	"estos", "esos", "aquellos", "estas", "esas", "aquellas",
	"no", "si", "es", "ya", "va", "hay",
}

var defaultStopWords = NewStopWords(spanishStopWords...)

// StopWords is an immutable set of lower-case words.
type StopWords struct {
	set map[string]struct{}
}

// NewStopWords builds a set from words. Words are folded the same way
// message tokens are, so "Él" and "él" are the same entry.
func NewStopWords(words ...string) StopWords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = fold(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return StopWords{set: set}
}

// DefaultStopWords returns the built-in Spanish stop words.
func DefaultStopWords() StopWords {
	return defaultStopWords
}

// Contains reports whether token is a stop word. token must already be folded.
func (s StopWords) Contains(token string) bool {
	_, ok := s.set[token]
	return ok
}

// Len returns the number of words in the set.
func (s StopWords) Len() int {
	return len(s.set)
}

// Words returns the words in sorted order.
func (s StopWords) Words() []string {
	words := make([]string, 0, len(s.set))
	for w := range s.set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// With returns a new set containing s plus words. s is not modified.
func (s StopWords) With(words ...string) StopWords {
	all := append(s.Words(), words...)
	return NewStopWords(all...)
}
