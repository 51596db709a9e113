package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualboard/vaultsite/internal/wikilink"
)

func newBuildCommand() *cobra.Command {
	var (
		mapOpts     mapFlags
		cleanOpts   cleanupFlags
		mode        string
		skipCleanup bool
	)

	cmd := &cobra.Command{
		Use:   "build <source_dir> <dest_dir> <mapping_file>",
		Short: "Run map, cleanup and rewrite in sequence",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			source, dest, mappingFile := args[0], args[1], args[2]
			if opts.DryRun {
				return NewCLIError(ExitCodeUsage, "build cannot run in dry-run mode: rewrite needs the mapping written by map; run the stages separately")
			}

			mapped, err := runMap(opts, mapOpts.config(), source, dest, mappingFile)
			if err != nil {
				return err
			}
			payload := map[string]interface{}{"map": mapped}

			if !skipCleanup {
				cleaned, err := runCleanup(opts, cleanOpts, dest)
				if err != nil {
					return err
				}
				payload["cleanup"] = cleaned
			}

			rewritten, err := runRewrite(opts, mode, dest, mappingFile)
			if err != nil {
				return err
			}
			payload["rewrite"] = rewritten

			message := fmt.Sprintf("%s\n%s", mapMessage(opts, mapped), rewriteMessage(opts, rewritten))
			return respond(cmd, opts, true, message, payload)
		},
	}
	mapOpts.register(cmd)
	cleanOpts.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", string(wikilink.ModeRelative), "Link style: relative or root")
	cmd.Flags().BoolVar(&skipCleanup, "skip-cleanup", false, "Do not strip query blocks and filter tags")
	return cmd
}
