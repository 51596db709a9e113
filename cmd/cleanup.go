package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualboard/vaultsite/internal/cleanup"
	"github.com/virtualboard/vaultsite/internal/config"
)

type cleanupFlags struct {
	blockLang string
	tag       string
}

func (f *cleanupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.blockLang, "block-lang", cleanup.DefaultBlockLang, "Fenced block language replaced by a plain-text placeholder")
	cmd.Flags().StringVar(&f.tag, "tag", cleanup.DefaultTag, "Filter tag (without #) removed from line ends")
}

func newCleanupCommand() *cobra.Command {
	var flags cleanupFlags

	cmd := &cobra.Command{
		Use:   "cleanup <content_dir>",
		Short: "Replace query blocks with placeholders and strip the filter tag",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			summary, err := runCleanup(opts, flags, args[0])
			if err != nil {
				return err
			}
			message := fmt.Sprintf("Cleaned %d of %d files", len(summary.Updated), summary.Scanned)
			return respond(cmd, opts, true, message, summary)
		},
	}
	flags.register(cmd)
	return cmd
}

func runCleanup(opts *config.Options, flags cleanupFlags, dir string) (*cleanup.Summary, error) {
	summary, err := cleanup.New(opts, flags.blockLang, flags.tag).ProcessDir(dir)
	if err != nil {
		return nil, classify(err)
	}
	return summary, nil
}
