package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"

	msgerrors "github.com/ccollicutt/msgsift/internal/errors"
	"github.com/ccollicutt/msgsift/pkg/config"
)

const scenarioCSV = `Telefono;Mensaje
555;"Hola, estoy en -33.45;-70.66"
666;¿Dónde estás? Hola
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommandConstruction(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewSearchCommand(), "search <file>", []string{"query", "config", "output", "verbose", "quiet", "webhook-url", "webhook-token", "webhook-trigger"}},
		{NewCoordsCommand(), "coords <file>", []string{"config", "output", "verbose", "quiet"}},
		{NewWordsCommand(), "words <file>", []string{"top", "by-phone", "output"}},
		{NewAnalyzeCommand(), "analyze <file>", []string{"action", "query", "top", "by-phone", "output"}},
		{NewValidateCommand(), "validate <file>", []string{"config"}},
		{NewVersionCommand(), "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			if tt.cmd.Use != tt.use {
				t.Errorf("Use = %q, want %q", tt.cmd.Use, tt.use)
			}
			for _, flag := range tt.flags {
				if tt.cmd.Flags().Lookup(flag) == nil {
					t.Errorf("Missing flag: %s", flag)
				}
			}
		})
	}
}

func TestRequireFile(t *testing.T) {
	err := requireFile(nil, nil)
	if !errors.Is(err, msgerrors.ErrInput) {
		t.Fatalf("requireFile() error = %v, want ErrInput", err)
	}
	if !strings.Contains(err.Error(), "select a CSV file") {
		t.Errorf("error = %q, want prompt to select a file", err.Error())
	}

	if err := requireFile(nil, []string{"a.csv"}); err != nil {
		t.Errorf("requireFile(one) error = %v", err)
	}
	if err := requireFile(nil, []string{"a.csv", "b.csv"}); err == nil {
		t.Error("requireFile(two) should fail")
	}
}

func TestSearch_Matches(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewSearchCommand(), path, "--query", "HOLA")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}

	for _, want := range []string{"[555] line 2", "[666] line 3", "Summary: 2 result(s) from 2 rows"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Index(stdout, "[555]") > strings.Index(stdout, "[666]") {
		t.Error("matches should keep file order")
	}
}

func TestSearch_NoMatches(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewSearchCommand(), path, "--query", "adiós")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
	if !strings.Contains(stdout, "No matching messages") {
		t.Errorf("output = %q", stdout)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewSearchCommand(), path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
	if !strings.Contains(stdout, "No search text given") {
		t.Errorf("output = %q", stdout)
	}
}

func TestSearch_CSVOutput(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewSearchCommand(), path, "-s", "dónde", "-o", "csv")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "Telefono;Mensaje\n666;¿Dónde estás? Hola\n"
	if stdout != want {
		t.Errorf("output = %q, want %q", stdout, want)
	}
}

func TestSearch_Stdin(t *testing.T) {
	cmd := NewSearchCommand()
	cmd.SetIn(strings.NewReader(scenarioCSV))

	stdout, _, err := execute(cmd, "-", "-s", "estoy", "-q")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "msgsift: search, 1 result(s), 2 rows parsed, 0 skipped") {
		t.Errorf("output = %q", stdout)
	}
}

func TestSearch_MissingFile(t *testing.T) {
	_, _, err := execute(NewSearchCommand(), "-s", "hola")
	if !errors.Is(err, msgerrors.ErrInput) {
		t.Errorf("error = %v, want ErrInput", err)
	}
}

func TestSearch_NonexistentFile(t *testing.T) {
	_, _, err := execute(NewSearchCommand(), filepath.Join(t.TempDir(), "nope.csv"), "-s", "hola")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestSearch_SchemaError(t *testing.T) {
	path := writeFile(t, "mensajes.csv", "Telefono;Texto\n555;hola\n")

	_, _, err := execute(NewSearchCommand(), path, "-s", "hola")
	if !errors.Is(err, msgerrors.ErrSchema) {
		t.Fatalf("error = %v, want ErrSchema", err)
	}
	if !strings.Contains(err.Error(), "Mensaje") {
		t.Errorf("error = %q, want missing column name", err.Error())
	}
}

func TestSearch_UnknownOutputFormat(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	_, _, err := execute(NewSearchCommand(), path, "-s", "hola", "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("error = %v, want unknown output format", err)
	}
}

func TestSearch_ConfigColumnsAndDelimiter(t *testing.T) {
	data := writeFile(t, "export.csv", "phone,body\n555,Hola mundo\n")
	cfg := writeFile(t, "msgsift.yaml", `delimiter: ","
columns:
  phone: phone
  message: body
`)

	stdout, _, err := execute(NewSearchCommand(), data, "-s", "mundo", "-c", cfg)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "[555] line 2") {
		t.Errorf("output = %q", stdout)
	}
}

func TestCoords_JSON(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewCoordsCommand(), path, "-o", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, `"-33.45;-70.66"`) {
		t.Errorf("output missing coordinate pair:\n%s", stdout)
	}
	if strings.Contains(stdout, `"666"`) {
		t.Error("rows without coordinates should be omitted")
	}
}

func TestCoords_Verbose(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewCoordsCommand(), path, "-v")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"[555] -33.45;-70.66", "lat -33.45, lon -70.66", "Run ID:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestWords_Ranking(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewWordsCommand(), path, "-o", "csv", "--top", "3")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "rank;word;count\n1;hola;2\n2;estoy;1\n3;33;1\n"
	if stdout != want {
		t.Errorf("output = %q, want %q", stdout, want)
	}
}

func TestWords_ByPhone(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	stdout, _, err := execute(NewWordsCommand(), path, "--by-phone", "-o", "csv", "-n", "1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "phone;rank;word;count\n555;1;hola;1\n666;1;dónde;1\n"
	if stdout != want {
		t.Errorf("output = %q, want %q", stdout, want)
	}
}

func TestWords_ConfigStopWords(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)
	cfg := writeFile(t, "msgsift.yaml", `stop_words:
  mode: extend
  words: [hola]
`)

	stdout, _, err := execute(NewWordsCommand(), path, "-c", cfg, "-o", "csv", "-n", "1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "rank;word;count\n1;estoy;1\n" {
		t.Errorf("output = %q", stdout)
	}
}

func TestAnalyze_Actions(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	tests := []struct {
		name   string
		args   []string
		expect string
	}{
		{"search", []string{"--action", "search", "--query", "hola"}, "msgsift: search, 2 result(s)"},
		{"buscar_mensajes", []string{"-a", "buscar_mensajes", "-s", "estás"}, "msgsift: search, 1 result(s)"},
		{"ver_coordenadas", []string{"-a", "ver_coordenadas"}, "msgsift: coordinates, 1 result(s)"},
		{"ver_palabras", []string{"-a", "VER_PALABRAS", "-n", "2"}, "msgsift: words, 2 result(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{path, "-q"}, tt.args...)
			stdout, _, err := execute(NewAnalyzeCommand(), args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(stdout, tt.expect) {
				t.Errorf("output = %q, want %q", stdout, tt.expect)
			}
		})
	}
}

func TestAnalyze_BadAction(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	for _, args := range [][]string{{path}, {path, "--action", "borrar"}} {
		_, _, err := execute(NewAnalyzeCommand(), args...)
		if !errors.Is(err, msgerrors.ErrInput) {
			t.Errorf("args %v: error = %v, want ErrInput", args, err)
		}
	}
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "mensajes.csv", "Telefono;Mensaje\n555;hola\n666;a;b\n555;chao\n")

	stdout, _, err := execute(NewValidateCommand(), path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"File valid!",
		"Columns: Telefono;Mensaje",
		"Rows:    2",
		"Phones:  1",
		"Warning: 1 malformed row(s)",
		"line 3: 3 field(s), header has 2",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestSearch_BrokenQuoteKeepsLaterRows(t *testing.T) {
	path := writeFile(t, "mensajes.csv", "Telefono;Mensaje\n111;\"Ok\" te llamo\n222;Estoy en plaza\n333;chao\n")

	stdout, _, err := execute(NewSearchCommand(), path, "-s", "plaza", "-v")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}

	for _, want := range []string{
		"[222] line 3",
		"Summary: 1 result(s) from 2 rows",
		"Skipped: 1 malformed row(s)",
		"line 2: unbalanced quote",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestValidate_InvalidUTF8(t *testing.T) {
	path := writeFile(t, "mensajes.csv", "Telefono;Mensaje\n555;\xff\n")

	_, _, err := execute(NewValidateCommand(), path)
	if !errors.Is(err, msgerrors.ErrDecoding) {
		t.Errorf("error = %v, want ErrDecoding", err)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(NewVersionCommand())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "msgsift dev\n" {
		t.Errorf("output = %q", stdout)
	}
}

func TestWebhook_FiresOnResults(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	path := writeFile(t, "mensajes.csv", scenarioCSV)

	_, stderr, err := execute(NewSearchCommand(), path, "-s", "hola", "-q",
		"--webhook-url", server.URL, "--webhook-token", "secret")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("webhook calls = %d, want 1", calls.Load())
	}
	if !strings.Contains(stderr, "Webhook cli: sent (200") {
		t.Errorf("stderr = %q", stderr)
	}

	// No results: on_results does not fire
	_, _, err = execute(NewSearchCommand(), path, "-s", "zzz", "-q", "--webhook-url", server.URL)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("webhook calls = %d, want still 1", calls.Load())
	}
}

func TestWebhook_FailureDoesNotFailRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	path := writeFile(t, "mensajes.csv", scenarioCSV)

	_, stderr, err := execute(NewCoordsCommand(), path, "-q", "--webhook-url", server.URL)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
	if !strings.Contains(stderr, "Webhook cli: failed") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestWebhook_BadTrigger(t *testing.T) {
	path := writeFile(t, "mensajes.csv", scenarioCSV)

	_, _, err := execute(NewCoordsCommand(), path, "--webhook-url", "http://example.invalid", "--webhook-trigger", "sometimes")
	if !errors.Is(err, msgerrors.ErrInput) {
		t.Errorf("error = %v, want ErrInput", err)
	}
}

func TestShouldFireWebhook(t *testing.T) {
	tests := []struct {
		trigger    config.WebhookTrigger
		hasResults bool
		want       bool
	}{
		{config.WebhookTriggerOnResults, true, true},
		{config.WebhookTriggerOnResults, false, false},
		{config.WebhookTriggerAlways, false, true},
		{config.WebhookTriggerNever, true, false},
		{"", true, true},
	}

	for _, tt := range tests {
		if got := shouldFireWebhook(tt.trigger, tt.hasResults); got != tt.want {
			t.Errorf("shouldFireWebhook(%q, %v) = %v, want %v", tt.trigger, tt.hasResults, got, tt.want)
		}
	}
}

func TestCollectWebhooks(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Webhooks = []config.WebhookConfig{{Name: "ops", URL: "http://ops.example"}}

	got := collectWebhooks(cfg, &QueryOptions{})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	got = collectWebhooks(cfg, &QueryOptions{WebhookURL: "http://cli.example"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[1].Name != "cli" || got[1].Trigger != config.WebhookTriggerOnResults {
		t.Errorf("cli webhook = %+v", got[1])
	}
}

func TestStopWords(t *testing.T) {
	replace := stopWords(config.StopWordsConfig{Mode: config.StopWordsReplace, Words: []string{"hola"}})
	if replace.Len() != 1 || !replace.Contains("hola") || replace.Contains("de") {
		t.Errorf("replace mode = %v", replace.Words())
	}

	extend := stopWords(config.StopWordsConfig{Mode: config.StopWordsExtend, Words: []string{"hola"}})
	if !extend.Contains("hola") || !extend.Contains("de") {
		t.Errorf("extend mode missing words")
	}
}
