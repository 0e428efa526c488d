package analyzer

import (
	"regexp"
	"strings"

	"github.com/ccollicutt/msgsift/pkg/parser"
)

// coordinatePattern matches "lat;lon" written as signed decimals.
var coordinatePattern = regexp.MustCompile(`-?\d+\.\d+;-?\d+\.\d+`)

// CoordinatePair is a coordinate substring exactly as it appeared in the message.
type CoordinatePair string

// Latitude returns the text before the separator.
func (c CoordinatePair) Latitude() string {
	lat, _, _ := strings.Cut(string(c), ";")
	return lat
}

// Longitude returns the text after the separator.
func (c CoordinatePair) Longitude() string {
	_, lon, _ := strings.Cut(string(c), ";")
	return lon
}

// String returns the pair verbatim.
func (c CoordinatePair) String() string {
	return string(c)
}

// PhoneCoordinates groups the pairs found in one row.
type PhoneCoordinates struct {
	Phone       string
	Line        int
	Message     string
	Coordinates []CoordinatePair
}

// ExtractCoordinates returns every coordinate pair in message, left to right.
// The result is empty, not nil, when nothing matches.
func ExtractCoordinates(message string) []CoordinatePair {
	found := coordinatePattern.FindAllString(message, -1)
	pairs := make([]CoordinatePair, 0, len(found))
	for _, m := range found {
		pairs = append(pairs, CoordinatePair(m))
	}
	return pairs
}

// ScanCoordinates extracts coordinates from every row. Rows without any
// pair are left out of the result.
func ScanCoordinates(ds *parser.Dataset) []PhoneCoordinates {
	results := []PhoneCoordinates{}
	for _, row := range ds.Rows {
		pairs := ExtractCoordinates(row.Message)
		if len(pairs) == 0 {
			continue
		}
		results = append(results, PhoneCoordinates{
			Phone:       row.Phone,
			Line:        row.Line,
			Message:     row.Message,
			Coordinates: pairs,
		})
	}
	return results
}
