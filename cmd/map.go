package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualboard/vaultsite/internal/config"
	"github.com/virtualboard/vaultsite/internal/mapper"
)

// mapFlags are shared by the map and build commands.
type mapFlags struct {
	promote   bool
	indexName string
	assets    string
	reverse   string
}

func (f *mapFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.promote, "promote-index", true, "Promote a note named after its folder to the section index page")
	cmd.Flags().StringVar(&f.indexName, "index-name", mapper.DefaultIndexName, "File name for promoted section index pages")
	cmd.Flags().StringVar(&f.assets, "assets", "", "Assets directory (default: Assets inside or beside the source directory)")
	cmd.Flags().StringVar(&f.reverse, "reverse-mapping", "", "Also write a URL to source path mapping to this file")
}

func (f *mapFlags) config() mapper.Config {
	cfg := mapper.DefaultConfig()
	cfg.PromoteIndex = f.promote
	if f.indexName != "" {
		cfg.IndexName = f.indexName
	}
	cfg.AssetsDir = f.assets
	cfg.ReverseMappingFile = f.reverse
	return cfg
}

func newMapCommand() *cobra.Command {
	var flags mapFlags

	cmd := &cobra.Command{
		Use:   "map <source_dir> <dest_dir> <mapping_file>",
		Short: "Copy a vault into a slugified site tree and write the name mapping",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			summary, err := runMap(opts, flags.config(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return respond(cmd, opts, true, mapMessage(opts, summary), summary, prefixed("Section index: ", summary.Indexes)...)
		},
	}
	flags.register(cmd)
	return cmd
}

func runMap(opts *config.Options, cfg mapper.Config, source, dest, mappingFile string) (*mapper.Summary, error) {
	summary, err := mapper.New(opts, cfg).Run(source, dest, mappingFile)
	if err != nil {
		return nil, classify(err)
	}
	return summary, nil
}

func mapMessage(opts *config.Options, s *mapper.Summary) string {
	msg := fmt.Sprintf("Mapped %d pages (%d section indexes, %d sidecars, %d assets)", s.Pages, len(s.Indexes), s.Sidecars, s.Assets)
	if s.Files > 0 {
		msg += fmt.Sprintf(", %d other files", s.Files)
	}
	if s.Collisions > 0 {
		msg += fmt.Sprintf(", %d name collisions", s.Collisions)
	}
	if opts.DryRun {
		return "Dry-run: " + msg + "; nothing written"
	}
	return msg + fmt.Sprintf("; mapping saved to %s", s.Mapping)
}
