package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/virtualboard/vaultsite/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:           "vaultsite",
		Short:         "Turn a wiki-style note vault into a static-site source tree",
		Long:          "vaultsite slugifies vault paths, promotes section index pages, rewrites [[wikilinks]] into relative markdown links and strips vault-only query blocks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Current(); err == nil {
				return nil
			}
			opts := config.New()
			if err := opts.Init(flagJSON, flagVerbose, flagDryRun, flagLogFile); err != nil {
				return err
			}
			cmd.SetContext(opts.WithContext(cmd.Context()))
			return nil
		},
	}

	flagJSON    bool
	flagVerbose bool
	flagDryRun  bool
	flagLogFile string
)

// Execute runs the root command.
func Execute() error {
	registerCommands()
	err := rootCmd.Execute()
	if opts, cerr := config.Current(); cerr == nil {
		if closeErr := opts.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close resources: %v\n", closeErr)
		}
		config.SetCurrent(nil)
	}
	return err
}

// RootCommand returns the configured root command; primarily for testing scenarios.
func RootCommand() *cobra.Command {
	registerCommands()
	return rootCmd
}

// registerCommands ensures all subcommands are attached before execution.
func registerCommands() {
	if len(rootCmd.Commands()) > 0 {
		return
	}
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log every file processed")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Report what would change without writing files")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "File to write logs to instead of stderr")

	rootCmd.AddCommand(newMapCommand())
	rootCmd.AddCommand(newRewriteCommand())
	rootCmd.AddCommand(newCleanupCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newVersionCommand())
}
