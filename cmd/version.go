package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualboard/vaultsite/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			if opts.JSONOutput {
				return respond(cmd, opts, true, "version", map[string]interface{}{"version": version.Current})
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Current)
			return nil
		},
	}
}
