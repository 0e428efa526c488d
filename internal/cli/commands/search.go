package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/msgsift/pkg/analyzer"
)

// SearchOptions holds options for the search command.
type SearchOptions struct {
	QueryOptions
	Query string
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search <file>",
		Short: "Find messages containing a text",
		Long: `Find every message whose body contains the query, ignoring case.

Matching rows are listed in file order. An empty query matches nothing.

` + exitCodesHelp,
		Example: `  msgsift search mensajes.csv --query hola
  msgsift search mensajes.csv -s "nos vemos" -o csv > encontrados.csv
  cat mensajes.csv | msgsift search - -s hola`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := analyzer.Request{Action: analyzer.ActionSearch, Query: opts.Query}
			return runQuery(cmd, args[0], req, &opts.QueryOptions)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "s", "", "Text to look for in message bodies")
	bindQueryFlags(cmd, &opts.QueryOptions)

	return cmd
}
