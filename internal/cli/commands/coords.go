package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/msgsift/pkg/analyzer"
)

// NewCoordsCommand creates the coords command.
func NewCoordsCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:     "coords <file>",
		Aliases: []string{"coordinates"},
		Short:   "Extract latitude;longitude pairs from messages",
		Long: `Extract every coordinate pair written as "lat;lon" in a message body,
for example -33.45;-70.66. Only messages with at least one pair are listed.

Because the pair contains the field delimiter, such messages must be quoted
in the CSV file.

` + exitCodesHelp,
		Example: `  msgsift coords mensajes.csv
  msgsift coords mensajes.csv -o json`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := analyzer.Request{Action: analyzer.ActionCoordinates}
			return runQuery(cmd, args[0], req, opts)
		},
	}

	bindQueryFlags(cmd, opts)

	return cmd
}
