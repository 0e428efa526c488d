package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ccollicutt/msgsift/pkg/analyzer"
)

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func formatText(t *testing.T, opts FormatOptions, report *Report) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewTextFormatter(opts).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return buf.String()
}

func TestTextFormatter_Search(t *testing.T) {
	output := formatText(t, FormatOptions{}, createTestReport(analyzer.ActionSearch))

	checks := []string{
		`=== msgsift: search "hola" ===`,
		"[111] line 2",
		"Hola, ¿dónde estás?",
		"Summary: 1 result(s) from 2 rows",
		"Skipped: 1 malformed row(s)",
	}
	for _, check := range checks {
		if !strings.Contains(output, check) {
			t.Errorf("Output missing %q\n%s", check, output)
		}
	}
	if strings.Contains(output, "[222]") {
		t.Error("Output should only contain matched rows")
	}
}

func TestTextFormatter_Coordinates(t *testing.T) {
	output := formatText(t, FormatOptions{Verbose: true}, createTestReport(analyzer.ActionCoordinates))

	checks := []string{
		"[222] -33.45;-70.66",
		"lat -33.45, lon -70.66",
		"line 3: Estoy en",
		"line 4: 1 field(s), header has 3",
		"Run ID:",
		"Duration:",
	}
	for _, check := range checks {
		if !strings.Contains(output, check) {
			t.Errorf("Output missing %q\n%s", check, output)
		}
	}
}

func TestTextFormatter_Words(t *testing.T) {
	output := formatText(t, FormatOptions{Verbose: true}, createTestReport(analyzer.ActionWords))

	if !strings.Contains(output, " 1. hola   2") {
		t.Errorf("Output missing first ranked word\n%s", output)
	}
	if !strings.Contains(output, " 2. dónde  1") {
		t.Errorf("Output missing second ranked word\n%s", output)
	}
	if !strings.Contains(output, "Tokens counted: 3 (2 distinct)") {
		t.Errorf("Output missing token stats\n%s", output)
	}
	if strings.Index(output, "hola") > strings.Index(output, "dónde") {
		t.Error("Ranking order not preserved")
	}
}

func TestTextFormatter_WordsByPhone(t *testing.T) {
	result := testResult(analyzer.ActionWords)
	result.Words = nil
	result.PhoneWords = []analyzer.PhoneWords{
		{Phone: "111", Words: []analyzer.WordCount{{Word: "hola", Count: 1}}},
		{Phone: "222", Words: []analyzer.WordCount{{Word: "estoy", Count: 1}}},
	}

	output := formatText(t, FormatOptions{}, NewReport(result, testDataset(), "-"))

	for _, check := range []string{"[111]", "[222]", "hola", "estoy"} {
		if !strings.Contains(output, check) {
			t.Errorf("Output missing %q", check)
		}
	}
}

func TestTextFormatter_EmptyResults(t *testing.T) {
	tests := []struct {
		action analyzer.Action
		query  string
		want   string
	}{
		{analyzer.ActionSearch, "", "No search text given"},
		{analyzer.ActionSearch, "xyz", "No matching messages"},
		{analyzer.ActionCoordinates, "", "No coordinates found"},
		{analyzer.ActionWords, "", "No words to rank"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action)+tt.query, func(t *testing.T) {
			result := testResult(tt.action)
			result.Query = tt.query
			result.Matches = nil
			result.Coordinates = nil
			result.Words = nil

			output := formatText(t, FormatOptions{}, NewReport(result, testDataset(), "-"))
			if !strings.Contains(output, tt.want) {
				t.Errorf("Output missing %q\n%s", tt.want, output)
			}
		})
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	output := formatText(t, FormatOptions{Quiet: true}, createTestReport(analyzer.ActionSearch))

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Errorf("Quiet output has %d lines, want 1", len(lines))
	}
	if !strings.HasPrefix(output, "msgsift: search, 1 result(s), 2 rows parsed, 1 skipped") {
		t.Errorf("Unexpected quiet output %q", output)
	}
}

func TestTextFormatter_MultilineMessage(t *testing.T) {
	result := testResult(analyzer.ActionSearch)
	result.Matches[0].Message = "uno\ndos"

	output := formatText(t, FormatOptions{}, NewReport(result, testDataset(), "-"))
	if !strings.Contains(output, "  uno\n  dos\n") {
		t.Errorf("Multi-line message not indented\n%s", output)
	}
}
