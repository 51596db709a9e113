// Package cleanup strips vault-only constructs (query blocks and filter tags)
// from published markdown.
package cleanup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/virtualboard/vaultsite/internal/config"
	"github.com/virtualboard/vaultsite/internal/slug"
	"github.com/virtualboard/vaultsite/internal/util"
)

const (
	// DefaultBlockLang is the fenced block language replaced by a placeholder.
	DefaultBlockLang = "dataview"
	// DefaultTag is the filter tag removed from content.
	DefaultTag = "wiki"
)

// Cleaner rewrites query blocks and removes the filter tag.
type Cleaner struct {
	opts        *config.Options
	log         *logrus.Entry
	block       *regexp.Regexp
	tagLine     *regexp.Regexp
	tagEnd      *regexp.Regexp
	tagInline   *regexp.Regexp
	placeholder string
}

// Summary reports the outcome of a cleanup run.
type Summary struct {
	Scanned int      `json:"scanned"`
	Updated []string `json:"updated"`
}

// New builds a cleaner for the given block language and tag name (without "#").
func New(opts *config.Options, blockLang, tag string) *Cleaner {
	if blockLang == "" {
		blockLang = DefaultBlockLang
	}
	if tag == "" {
		tag = DefaultTag
	}
	quotedTag := regexp.QuoteMeta("#" + tag)
	return &Cleaner{
		opts:        opts,
		log:         opts.Logger().WithField("component", "cleanup"),
		block:       regexp.MustCompile("```" + regexp.QuoteMeta(blockLang) + "[ \\t]*(\\r?\\n[\\s\\S]*?)```"),
		tagLine:     regexp.MustCompile(`(?m)^[ \t]*` + quotedTag + `[ \t]*(?:\n|\z)`),
		tagEnd:      regexp.MustCompile(`(?m)[ \t]+` + quotedTag + `[ \t]*$`),
		tagInline:   regexp.MustCompile(`(?m)(^|[ \t])` + quotedTag + `[ \t]+`),
		placeholder: placeholderTitle(blockLang) + " Query: ${1}",
	}
}

// Clean replaces query blocks and removes the tag token. A line holding only
// the tag is dropped with its newline; elsewhere the token and the blanks on
// one side of it go, so surrounding line structure is kept.
func (c *Cleaner) Clean(content string) string {
	content = c.block.ReplaceAllString(content, c.placeholder)
	// adjacent tokens share a separator, so repeat until nothing changes
	for {
		next := c.tagLine.ReplaceAllString(content, "")
		next = c.tagEnd.ReplaceAllString(next, "")
		next = c.tagInline.ReplaceAllString(next, "${1}")
		if next == content {
			return content
		}
		content = next
	}
}

// ProcessDir cleans every markdown file under dir, writing only changed files.
func (c *Cleaner) ProcessDir(dir string) (*Summary, error) {
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
		summary.Scanned++

		// #nosec G304 -- path comes from walking the content directory
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		cleaned := c.Clean(string(data))
		if cleaned == string(data) {
			return nil
		}
		summary.Updated = append(summary.Updated, rel)
		if c.opts.DryRun {
			c.log.WithFields(logrus.Fields{"path": rel, "dryRun": true}).Info("Skipping write in dry-run mode")
			return nil
		}
		if err := util.WriteFileAtomic(path, []byte(cleaned), 0o644); err != nil {
			return err
		}
		c.log.WithField("path", rel).Info("Cleaned file")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// placeholderTitle capitalises the block language: "dataview" -> "Dataview".
func placeholderTitle(lang string) string {
	r, size := utf8.DecodeRuneInString(lang)
	return string(unicode.ToUpper(r)) + lang[size:]
}
