// Package cli provides the command-line interface for msgsift.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/msgsift/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	// A .env file is optional; variables already set in the environment win.
	_ = godotenv.Load()

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "msgsift",
		Short: "Search, locate and rank words in text message exports",
		Long: `msgsift analyzes a semicolon-delimited CSV export of text messages.

The export must have a header row with at least the Telefono and Mensaje
columns. Each run parses one file and performs one action:
  - search       messages containing a text, ignoring case
  - coords       latitude;longitude pairs embedded in messages
  - words        the most frequent words, excluding Spanish stop words

Use "-" as the file to read from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewCoordsCommand())
	rootCmd.AddCommand(commands.NewWordsCommand())
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
