package analyzer

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches maximal runs of Unicode letters, digits and underscore.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// fold lower-cases s after composing it to NFC, so precomposed and
// decomposed accents compare equal.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// Tokenize splits message into lower-case word tokens in order of appearance.
func Tokenize(message string) []string {
	if message == "" {
		return nil
	}
	return tokenPattern.FindAllString(fold(message), -1)
}
