package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/msgsift/internal/errors"
	"github.com/ccollicutt/msgsift/internal/logger"
	"github.com/ccollicutt/msgsift/pkg/analyzer"
	"github.com/ccollicutt/msgsift/pkg/config"
	"github.com/ccollicutt/msgsift/pkg/output"
	"github.com/ccollicutt/msgsift/pkg/parser"
	"github.com/ccollicutt/msgsift/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// QueryOptions holds the flags shared by the analysis commands.
type QueryOptions struct {
	ConfigPath string
	Output     string
	Verbose    bool
	Quiet      bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

const exitCodesHelp = `Exit codes:
  0 - The action produced results
  1 - The action produced no results
  2 - Input, configuration or runtime error`

func bindQueryFlags(cmd *cobra.Command, opts *QueryOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show message bodies, skipped rows and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_results", "When to fire webhook (on_results|always|never)")
}

// requireFile is a cobra.PositionalArgs that demands exactly one input file.
func requireFile(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errors.NewInputError("file", "", "select a CSV file")
	case 1:
		return nil
	default:
		return fmt.Errorf("accepts 1 file, received %d", len(args))
	}
}

// runQuery loads configuration and data, runs one action and writes the report.
func runQuery(cmd *cobra.Command, path string, req analyzer.Request, opts *QueryOptions, extra ...analyzer.AnalyzerOption) error {
	ExitCode = 0
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.SetVerbose(opts.Verbose)

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate flags before doing any work
	formatter, err := createFormatter(opts, cfg)
	if err != nil {
		return err
	}
	if err := validateTrigger(opts.WebhookTrigger); err != nil {
		return err
	}

	ds, err := loadDataset(ctx, cmd, path, cfg)
	if err != nil {
		return err
	}
	logger.Info("parsed %s: %d rows, %d skipped", path, ds.Len(), len(ds.Skipped))

	analyzerOpts := append(analyzerOptions(cfg), extra...)
	a := analyzer.NewAnalyzer(analyzerOpts...)

	result, err := a.Run(ctx, ds, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", req.Action, err)
	}

	report := output.NewReport(result, ds, path)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, cmd, cfg, opts, report)

	if !report.HasResults() {
		ExitCode = 1
	}

	return nil
}

// loadDataset parses the file at path, or standard input when path is "-".
func loadDataset(ctx context.Context, cmd *cobra.Command, path string, cfg *config.Config) (*parser.Dataset, error) {
	popts := parserOptions(cfg)

	if path == "-" {
		ds, err := parser.ParseReader(ctx, cmd.InOrStdin(), popts...)
		if err != nil {
			return nil, fmt.Errorf("parsing standard input: %w", err)
		}
		return ds, nil
	}

	return parser.ParseFile(ctx, path, popts...)
}

func parserOptions(cfg *config.Config) []parser.Option {
	return []parser.Option{
		parser.WithDelimiter(cfg.DelimiterRune()),
		parser.WithColumns(parser.Columns{
			Phone:   cfg.Columns.Phone,
			Message: cfg.Columns.Message,
		}),
	}
}

func analyzerOptions(cfg *config.Config) []analyzer.AnalyzerOption {
	return []analyzer.AnalyzerOption{
		analyzer.WithStopWords(stopWords(cfg.StopWords)),
		analyzer.WithTopK(cfg.TopWords),
	}
}

// stopWords builds the stop-word set described by the configuration.
func stopWords(sc config.StopWordsConfig) analyzer.StopWords {
	if sc.Mode == config.StopWordsReplace {
		return analyzer.NewStopWords(sc.Words...)
	}
	if len(sc.Words) == 0 {
		return analyzer.DefaultStopWords()
	}
	return analyzer.DefaultStopWords().With(sc.Words...)
}

func createFormatter(opts *QueryOptions, cfg *config.Config) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose:   opts.Verbose,
		Quiet:     opts.Quiet,
		Delimiter: cfg.DelimiterRune(),
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	case "csv":
		return output.NewCSVFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json or csv)", opts.Output)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are reported on stderr but don't fail the run.
func sendWebhooks(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *QueryOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()
	stderr := cmd.ErrOrStderr()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasResults()) {
			logger.Debug("webhook %s skipped (trigger %s)", wh.URL, wh.Trigger)
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *QueryOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnResults
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

func validateTrigger(trigger string) error {
	switch config.WebhookTrigger(trigger) {
	case "", config.WebhookTriggerOnResults, config.WebhookTriggerAlways, config.WebhookTriggerNever:
		return nil
	default:
		return errors.NewInputError("webhook-trigger", trigger, "must be on_results, always or never")
	}
}

// shouldFireWebhook determines if a webhook should fire based on trigger and results.
func shouldFireWebhook(trigger config.WebhookTrigger, hasResults bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasResults
	}
}
