package wikilink

import (
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/virtualboard/vaultsite/internal/mapping"
	"github.com/virtualboard/vaultsite/internal/slug"
)

// AssetsDir is the flat directory, relative to the site root, holding copied assets.
const AssetsDir = "assets"

// Mode selects how resolved links are written.
type Mode string

const (
	// ModeRelative writes links relative to the referencing file.
	ModeRelative Mode = "relative"
	// ModeRoot writes links rooted at the site root ("/section/page/").
	ModeRoot Mode = "root"
)

// ParseMode validates a mode name.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeRelative, "":
		return ModeRelative, nil
	case ModeRoot:
		return ModeRoot, nil
	default:
		return "", fmt.Errorf("unknown link mode %q (expected %s or %s)", value, ModeRelative, ModeRoot)
	}
}

// Stats counts what a rewrite pass did.
type Stats struct {
	Links      int `json:"links"`
	Images     int `json:"images"`
	Unresolved int `json:"unresolved"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Links += other.Links
	s.Images += other.Images
	s.Unresolved += other.Unresolved
}

// Resolver turns wiki references into markdown links against a fixed mapping.
type Resolver struct {
	mapping mapping.Mapping
	mode    Mode
	log     *logrus.Entry
}

// NewResolver constructs a resolver. The mapping is only read.
func NewResolver(m mapping.Mapping, mode Mode, log *logrus.Entry) *Resolver {
	if m == nil {
		m = mapping.New()
	}
	return &Resolver{mapping: m, mode: mode, log: log}
}

// Rewrite replaces every wiki reference in content. source is the referencing
// file relative to the site root; an empty source yields root-relative links.
func (r *Resolver) Rewrite(content, source string) (string, Stats) {
	var stats Stats
	if r.mode == ModeRoot {
		source = ""
	}
	out := pattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		link := Parse(groups[2], groups[1] == "!")
		replacement, linkStats := r.Resolve(link, source)
		stats.Add(linkStats)
		return replacement
	})
	return out, stats
}

// Resolve renders one parsed reference as a markdown link or image.
func (r *Resolver) Resolve(link Link, source string) (string, Stats) {
	name := link.Name()

	if IsImage(name) {
		file := path.Join(AssetsDir, slug.Asset(name))
		return fmt.Sprintf("![%s](%s)", link.Display, FileURL(source, file)), Stats{Images: 1}
	}

	name = slug.TrimMarkdownExt(name)
	anchor := ""
	if heading := link.Anchor(); heading != "" {
		anchor = "#" + slug.Slugify(heading)
	}
	if name == "" && anchor != "" {
		return fmt.Sprintf("[%s](%s)", link.Display, anchor), Stats{Links: 1}
	}

	if target, ok := r.mapping.Lookup(name); ok {
		if !slug.IsMarkdown(target) {
			return fmt.Sprintf("[%s](%s)", link.Display, FileURL(source, target)), Stats{Links: 1}
		}
		return fmt.Sprintf("[%s](%s%s)", link.Display, PageURL(source, target), anchor), Stats{Links: 1}
	}

	fallback := slug.Slugify(name)
	url := PageURL(source, fallback+slug.MarkdownExt)
	if r.log != nil {
		r.log.WithFields(logrus.Fields{
			"target": name,
			"source": source,
			"url":    url,
		}).Warnf("Link target %q not found in mapping, using slug %q", name, url)
	}
	return fmt.Sprintf("[%s](%s%s)", link.Display, url, anchor), Stats{Links: 1, Unresolved: 1}
}

// PageURL returns the directory-style URL of the page at to (a site-root
// relative path, usually ending in ".md") as seen from the file from.
//
// The shared leading directories of both paths are dropped, one ".." is
// emitted per remaining directory of from, followed by the rest of to with the
// extension removed and a trailing slash. An empty from gives "/to/".
func PageURL(from, to string) string {
	to = slug.TrimMarkdownExt(to)
	if from == "" {
		return "/" + strings.Trim(to, "/") + "/"
	}
	rel := relativePath(from, to)
	if !strings.HasSuffix(rel, "/") {
		rel += "/"
	}
	return rel
}

// FileURL is PageURL for plain files such as images: the extension is kept and
// no trailing slash is added.
func FileURL(from, to string) string {
	if from == "" {
		return "/" + strings.TrimPrefix(to, "/")
	}
	return relativePath(from, to)
}

func relativePath(from, to string) string {
	var fromParts []string
	if dir := path.Dir(from); dir != "." && dir != "/" {
		fromParts = strings.Split(strings.Trim(dir, "/"), "/")
	}
	toParts := strings.Split(strings.Trim(to, "/"), "/")

	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}

	parts := make([]string, 0, len(fromParts)-common+len(toParts)-common)
	for i := common; i < len(fromParts); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[common:]...)
	return strings.Join(parts, "/")
}
