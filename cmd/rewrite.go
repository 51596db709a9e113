package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualboard/vaultsite/internal/config"
	"github.com/virtualboard/vaultsite/internal/mapping"
	"github.com/virtualboard/vaultsite/internal/wikilink"
)

func newRewriteCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "rewrite <content_dir> <mapping_file>",
		Short: "Rewrite [[wikilinks]] into markdown links using a saved mapping",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			summary, err := runRewrite(opts, mode, args[0], args[1])
			if err != nil {
				return err
			}
			return respond(cmd, opts, true, rewriteMessage(opts, summary), summary, prefixed("Updated wikilinks in: ", summary.Updated)...)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(wikilink.ModeRelative), "Link style: relative (to the referencing file) or root (site-root absolute)")
	return cmd
}

func runRewrite(opts *config.Options, modeName, dir, mappingFile string) (*wikilink.Summary, error) {
	mode, err := wikilink.ParseMode(modeName)
	if err != nil {
		return nil, WrapCLIError(ExitCodeUsage, err)
	}
	m, err := mapping.Load(mappingFile)
	if err != nil {
		return nil, classify(err)
	}
	summary, err := wikilink.NewRewriter(opts, m, mode).ProcessDir(dir)
	if err != nil {
		return nil, classify(err)
	}
	return summary, nil
}

func rewriteMessage(opts *config.Options, s *wikilink.Summary) string {
	msg := fmt.Sprintf("Total files updated: %d of %d (%d links, %d images, %d unresolved)",
		len(s.Updated), s.Scanned, s.Links, s.Images, s.Unresolved)
	if opts.DryRun {
		return "Dry-run: " + msg
	}
	return msg
}
