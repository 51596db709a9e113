package wikilink

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/virtualboard/vaultsite/internal/config"
	"github.com/virtualboard/vaultsite/internal/mapping"
	"github.com/virtualboard/vaultsite/internal/slug"
	"github.com/virtualboard/vaultsite/internal/util"
)

// Summary reports the outcome of rewriting a content tree.
type Summary struct {
	Scanned int      `json:"scanned"`
	Updated []string `json:"updated"`
	Stats
}

// Rewriter applies a Resolver to every markdown file below a directory.
type Rewriter struct {
	opts     *config.Options
	resolver *Resolver
	log      *logrus.Entry
}

// NewRewriter constructs a rewriter for the given mapping and link mode.
func NewRewriter(opts *config.Options, m mapping.Mapping, mode Mode) *Rewriter {
	log := opts.Logger().WithField("component", "rewriter")
	return &Rewriter{
		opts:     opts,
		resolver: NewResolver(m, mode, log),
		log:      log,
	}
}

// ProcessDir rewrites wiki references in all markdown files under dir. Files
// are only written when their content changed.
func (rw *Rewriter) ProcessDir(dir string) (*Summary, error) {
	summary := &Summary{Updated: []string{}}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slug.IsMarkdown(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		changed, stats, err := rw.ProcessFile(path, rel)
		if err != nil {
			return err
		}
		summary.Scanned++
		summary.Stats.Add(stats)
		if changed {
			summary.Updated = append(summary.Updated, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rw.log.WithFields(logrus.Fields{
		"scanned":    summary.Scanned,
		"updated":    len(summary.Updated),
		"unresolved": summary.Unresolved,
	}).Info("Wikilinks rewritten")
	return summary, nil
}

// ProcessFile rewrites one file. rel is its path relative to the site root and
// anchors relative link computation.
func (rw *Rewriter) ProcessFile(path, rel string) (bool, Stats, error) {
	// #nosec G304 -- path comes from walking the content directory
	data, err := os.ReadFile(path)
	if err != nil {
		return false, Stats{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	content := string(data)
	updated, stats := rw.resolver.Rewrite(content, rel)
	if updated == content {
		return false, stats, nil
	}

	if rw.opts.DryRun {
		rw.log.WithFields(logrus.Fields{
			"path":   rel,
			"dryRun": true,
		}).Info("Skipping write in dry-run mode")
		return true, stats, nil
	}
	if err := util.WriteFileAtomic(path, []byte(updated), 0o644); err != nil {
		return false, stats, err
	}
	rw.log.WithField("path", rel).Info("Updated wikilinks")
	return true, stats, nil
}
