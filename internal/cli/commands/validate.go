package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/msgsift/pkg/config"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	ConfigPath string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a message export",
		Long: `Validate a message export without running any action.

Checks:
  - UTF-8 encoding
  - Required columns in the header
  - Rows whose field count differs from the header (warning only)

With --config the configuration file is validated first.`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML)")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, opts *ValidateOptions) error {
	ExitCode = 0
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", path)

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ds, err := loadDataset(ctx, cmd, path, cfg)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	phones := make(map[string]struct{})
	for _, row := range ds.Rows {
		phones[row.Phone] = struct{}{}
	}

	// Report what we found
	fmt.Fprintf(out, "\nFile valid!\n")
	fmt.Fprintf(out, "  Columns: %s\n", strings.Join(ds.Header, string(cfg.DelimiterRune())))
	fmt.Fprintf(out, "  Rows:    %d\n", ds.Len())
	fmt.Fprintf(out, "  Phones:  %d\n", len(phones))

	if len(ds.Skipped) > 0 {
		fmt.Fprintf(out, "\nWarning: %d malformed row(s) will be ignored:\n", len(ds.Skipped))
		for _, s := range ds.Skipped {
			fmt.Fprintf(out, "  - line %d: %s\n", s.Line, s.Reason)
		}
	}

	return nil
}
