package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/msgsift/pkg/analyzer"
)

// WordsOptions holds options for the words command.
type WordsOptions struct {
	QueryOptions
	Top     int
	ByPhone bool
}

// NewWordsCommand creates the words command.
func NewWordsCommand() *cobra.Command {
	opts := &WordsOptions{}

	cmd := &cobra.Command{
		Use:   "words <file>",
		Short: "Rank the most frequent words",
		Long: `Count the words of every message, ignoring case and Spanish stop words,
and list the most frequent ones. Ties keep the order in which the words
first appear.

` + exitCodesHelp,
		Example: `  msgsift words mensajes.csv
  msgsift words mensajes.csv --top 20
  msgsift words mensajes.csv --by-phone -o csv`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := analyzer.Request{Action: analyzer.ActionWords}
			return runQuery(cmd, args[0], req, &opts.QueryOptions, wordOptions(opts.Top, opts.ByPhone)...)
		},
	}

	cmd.Flags().IntVarP(&opts.Top, "top", "n", 0, "Number of words to list (default from config, 10)")
	cmd.Flags().BoolVar(&opts.ByPhone, "by-phone", false, "Rank words separately for each phone")
	bindQueryFlags(cmd, &opts.QueryOptions)

	return cmd
}

// wordOptions turns word flags into analyzer options applied after config.
func wordOptions(top int, byPhone bool) []analyzer.AnalyzerOption {
	var opts []analyzer.AnalyzerOption
	if top > 0 {
		opts = append(opts, analyzer.WithTopK(top))
	}
	if byPhone {
		opts = append(opts, analyzer.WithByPhone(true))
	}
	return opts
}
