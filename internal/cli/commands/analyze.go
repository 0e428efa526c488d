package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/msgsift/internal/errors"
	"github.com/ccollicutt/msgsift/pkg/analyzer"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	QueryOptions
	Action  string
	Query   string
	Top     int
	ByPhone bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run one action chosen by name",
		Long: `Run the action named by --action. This is the entry point for scripts
that pick the action at runtime.

Actions:
  search        (buscar_mensajes)   messages containing --query
  coordinates   (ver_coordenadas)   latitude;longitude pairs
  words         (ver_palabras)      most frequent words

` + exitCodesHelp,
		Example: `  msgsift analyze mensajes.csv --action search --query hola
  msgsift analyze mensajes.csv --action ver_coordenadas -o json`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Action == "" {
				return errors.NewInputError("action", "", "select an action (search, coordinates or words)")
			}
			action, err := analyzer.ParseAction(opts.Action)
			if err != nil {
				return err
			}

			req := analyzer.Request{Action: action, Query: opts.Query}
			return runQuery(cmd, args[0], req, &opts.QueryOptions, wordOptions(opts.Top, opts.ByPhone)...)
		},
	}

	cmd.Flags().StringVarP(&opts.Action, "action", "a", "", "Action to run (search|coordinates|words)")
	cmd.Flags().StringVarP(&opts.Query, "query", "s", "", "Text to look for (search only)")
	cmd.Flags().IntVarP(&opts.Top, "top", "n", 0, "Number of words to list (words only)")
	cmd.Flags().BoolVar(&opts.ByPhone, "by-phone", false, "Rank words per phone (words only)")
	bindQueryFlags(cmd, &opts.QueryOptions)

	return cmd
}
