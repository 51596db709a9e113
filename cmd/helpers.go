package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualboard/vaultsite/internal/config"
	"github.com/virtualboard/vaultsite/internal/util"
)

func options(cmd *cobra.Command) (*config.Options, error) {
	if ctx := cmd.Context(); ctx != nil {
		return config.FromContext(ctx)
	}
	return config.Current()
}

// exactArgs rejects the wrong number of positional arguments with a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return NewCLIError(ExitCodeUsage, fmt.Sprintf("usage: %s", cmd.UseLine()))
		}
		return nil
	}
}

func respond(cmd *cobra.Command, opts *config.Options, success bool, message string, data interface{}, details ...string) error {
	if opts.JSONOutput {
		payload := util.StructuredResult(success, message, data)
		return util.PrintJSON(cmd.OutOrStdout(), payload)
	}
	util.PrintLines(cmd.OutOrStdout(), details...)
	if message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), message)
	}
	return nil
}

func prefixed(prefix string, items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, prefix+item)
	}
	return out
}
