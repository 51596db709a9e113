// Package mapper copies a note vault into a slugified site source tree and
// records where every note ended up.
package mapper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/virtualboard/vaultsite/internal/config"
	"github.com/virtualboard/vaultsite/internal/mapping"
	"github.com/virtualboard/vaultsite/internal/slug"
	"github.com/virtualboard/vaultsite/internal/util"
	"github.com/virtualboard/vaultsite/internal/wikilink"
)

// ErrSourceNotFound indicates the source directory is missing or not a directory.
var ErrSourceNotFound = errors.New("source directory not found")

// DefaultIndexName is the canonical section index file name.
const DefaultIndexName = "index.md"

// assetsSourceName is the vault directory conventionally holding attachments.
const assetsSourceName = "Assets"

// Config selects the optional behaviours of a mapping run.
type Config struct {
	// PromoteIndex renames a note named after its directory to IndexName.
	PromoteIndex bool
	// IndexName is the file name used for promoted section pages.
	IndexName string
	// AssetsDir overrides asset directory discovery when set.
	AssetsDir string
	// ReverseMappingFile, when set, receives the URL to source path table.
	ReverseMappingFile string
}

// DefaultConfig returns the configuration used by the CLI when no flags are given.
func DefaultConfig() Config {
	return Config{PromoteIndex: true, IndexName: DefaultIndexName}
}

// Summary reports what a mapping run produced.
type Summary struct {
	Pages      int      `json:"pages"`
	Indexes    []string `json:"indexes"`
	Sidecars   int      `json:"sidecars"`
	Assets     int      `json:"assets"`
	Files      int      `json:"files"`
	Collisions int      `json:"collisions"`
	Mapping    string   `json:"mapping"`
}

// Mapper performs one mapping run. It is not safe for concurrent use.
type Mapper struct {
	opts *config.Options
	cfg  Config
	log  *logrus.Entry
}

// New constructs a mapper.
func New(opts *config.Options, cfg Config) *Mapper {
	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndexName
	}
	return &Mapper{
		opts: opts,
		cfg:  cfg,
		log:  opts.Logger().WithField("component", "mapper"),
	}
}

// run holds the state accumulated during one walk.
type run struct {
	source  string
	dest    string
	assets  string
	mapping mapping.Mapping
	reverse mapping.Reverse
	claimed map[string]string
	summary *Summary
}

// Run copies sourceDir into destDir and writes the name mapping to mappingFile
// once the whole tree has been processed.
func (m *Mapper) Run(sourceDir, destDir, mappingFile string) (*Summary, error) {
	if !util.IsDir(sourceDir) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}

	r := &run{
		source:  filepath.Clean(sourceDir),
		dest:    filepath.Clean(destDir),
		assets:  m.findAssetsDir(sourceDir),
		mapping: mapping.New(),
		reverse: mapping.Reverse{},
		claimed: map[string]string{},
		summary: &Summary{Indexes: []string{}, Mapping: mappingFile},
	}

	if err := filepath.WalkDir(r.source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != r.source && m.skipDir(r, p, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if d.Name() == SidecarName {
			return m.copySidecar(r, p)
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !slug.IsMarkdown(d.Name()) {
			return m.mapFile(r, p)
		}
		return m.mapPage(r, p)
	}); err != nil {
		return nil, err
	}

	if m.opts.DryRun {
		m.log.WithFields(logrus.Fields{
			"action": "save-mapping",
			"path":   mappingFile,
			"dryRun": true,
		}).Info("Skipping write in dry-run mode")
	} else {
		if err := mapping.Save(mappingFile, r.mapping); err != nil {
			return nil, err
		}
		if m.cfg.ReverseMappingFile != "" {
			if err := mapping.SaveReverse(m.cfg.ReverseMappingFile, r.reverse); err != nil {
				return nil, err
			}
		}
	}

	if err := m.copyAssets(r); err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"pages":    r.summary.Pages,
		"indexes":  len(r.summary.Indexes),
		"sidecars": r.summary.Sidecars,
		"assets":   r.summary.Assets,
		"files":    r.summary.Files,
		"mapping":  mappingFile,
	}).Info("Mapping complete")
	return r.summary, nil
}

// mapPage copies one note to its slugified location and records it.
func (m *Mapper) mapPage(r *run, p string) error {
	rel, err := relSlash(r.source, p)
	if err != nil {
		return err
	}
	name := path.Base(rel)
	stem := name[:len(name)-len(slug.MarkdownExt)]
	srcDir := filepath.Dir(p)
	newRel := slug.Path(rel)

	promoted := false
	if m.cfg.PromoteIndex && stem == filepath.Base(srcDir) {
		candidate := joinRel(path.Dir(newRel), m.cfg.IndexName)
		exists, err := m.indexExists(r, srcDir, name, candidate)
		if err != nil {
			return err
		}
		if exists {
			m.log.WithFields(logrus.Fields{
				"path":  rel,
				"index": candidate,
			}).Info("Section index already exists, keeping slug name")
		} else {
			newRel = candidate
			promoted = true
			m.log.WithFields(logrus.Fields{
				"path":  rel,
				"index": candidate,
			}).Info("Converting to section index")
		}
	}

	// #nosec G304 -- path comes from walking the source directory
	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", rel, err)
	}
	if promoted {
		title, err := ReadTitle(srcDir)
		if err != nil {
			return err
		}
		if title == "" {
			title = stem
		}
		data = []byte(EnsureHeading(string(data), title))
		r.summary.Indexes = append(r.summary.Indexes, newRel)
	}

	m.claim(r, newRel, rel)

	if err := m.write(filepath.Join(r.dest, filepath.FromSlash(newRel)), data); err != nil {
		return err
	}

	if previous, replaced := r.mapping.Set(stem, newRel); replaced {
		r.summary.Collisions++
		m.log.WithFields(logrus.Fields{
			"name":     stem,
			"previous": previous,
			"current":  newRel,
		}).Warn("Duplicate note name, mapping entry overwritten")
	}
	r.reverse.Add(newRel, rel)
	r.summary.Pages++

	m.log.WithFields(logrus.Fields{"from": rel, "to": newRel}).Info("Copied page")
	return nil
}

// mapFile copies a non-markdown attachment to its slugified location. It is
// recorded in the mapping under its full file name so [[handout.pdf]] resolves
// without clashing with a note called "handout".
func (m *Mapper) mapFile(r *run, p string) error {
	rel, err := relSlash(r.source, p)
	if err != nil {
		return err
	}
	name := path.Base(rel)
	newRel := slug.Path(rel)

	m.claim(r, newRel, rel)
	if previous, replaced := r.mapping.Set(name, newRel); replaced {
		r.summary.Collisions++
		m.log.WithFields(logrus.Fields{
			"name":     name,
			"previous": previous,
			"current":  newRel,
		}).Warn("Duplicate file name, mapping entry overwritten")
	}
	r.reverse.Add(newRel, rel)
	r.summary.Files++

	m.log.WithFields(logrus.Fields{"from": rel, "to": newRel}).Info("Copied file")
	if m.opts.DryRun {
		return nil
	}
	return util.CopyFile(p, filepath.Join(r.dest, filepath.FromSlash(newRel)))
}

// claim records that rel produces newRel, warning when another file already did.
func (m *Mapper) claim(r *run, newRel, rel string) {
	if owner, taken := r.claimed[newRel]; taken {
		r.summary.Collisions++
		m.log.WithFields(logrus.Fields{
			"path":     newRel,
			"previous": owner,
			"current":  rel,
		}).Warn("Destination path collision, later file overwrites earlier one")
	}
	r.claimed[newRel] = rel
}

// indexExists reports whether dir already has an index page in the source, or
// whether candidate was already produced during this run. Files written by an
// earlier run are not consulted so repeated runs give identical output.
func (m *Mapper) indexExists(r *run, dir, self, candidate string) (bool, error) {
	if _, taken := r.claimed[candidate]; taken {
		return true, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == self || !slug.IsMarkdown(entry.Name()) {
			continue
		}
		if strings.EqualFold(entry.Name(), m.cfg.IndexName) || slug.Path(entry.Name()) == m.cfg.IndexName {
			return true, nil
		}
	}
	return false, nil
}

// copySidecar copies a directory metadata file byte for byte into the
// slugified directory.
func (m *Mapper) copySidecar(r *run, p string) error {
	relDir, err := relSlash(r.source, filepath.Dir(p))
	if err != nil {
		return err
	}
	target := joinRel(slug.Dir(relDir), SidecarName)
	r.summary.Sidecars++
	m.log.WithFields(logrus.Fields{"from": joinRel(relDir, SidecarName), "to": target}).Info("Copied sidecar")
	if m.opts.DryRun {
		return nil
	}
	return util.CopyFile(p, filepath.Join(r.dest, filepath.FromSlash(target)))
}

// findAssetsDir locates the attachments directory: the configured one, else
// "Assets" inside the source, else "Assets" beside it.
func (m *Mapper) findAssetsDir(source string) string {
	if m.cfg.AssetsDir != "" {
		if util.IsDir(m.cfg.AssetsDir) {
			return filepath.Clean(m.cfg.AssetsDir)
		}
		m.log.WithField("path", m.cfg.AssetsDir).Warn("Configured assets directory not found")
		return ""
	}
	candidates := []string{
		filepath.Join(source, assetsSourceName),
		filepath.Join(filepath.Dir(filepath.Clean(source)), assetsSourceName),
	}
	for _, candidate := range candidates {
		if util.IsDir(candidate) {
			return candidate
		}
	}
	m.log.WithField("tried", candidates).Info("No assets directory found")
	return ""
}

// copyAssets flattens the assets directory into <dest>/assets using the same
// name transformation the link rewriter applies to image references.
func (m *Mapper) copyAssets(r *run) error {
	if r.assets == "" {
		return nil
	}
	seen := map[string]string{}
	return filepath.WalkDir(r.assets, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != r.assets && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		name := slug.Asset(d.Name())
		if previous, ok := seen[name]; ok {
			r.summary.Collisions++
			m.log.WithFields(logrus.Fields{
				"asset":    name,
				"previous": previous,
				"current":  p,
			}).Warn("Asset name collision, later file overwrites earlier one")
		}
		seen[name] = p
		r.summary.Assets++
		m.log.WithFields(logrus.Fields{"from": d.Name(), "to": wikilink.AssetsDir + "/" + name}).Info("Copied asset")
		if m.opts.DryRun {
			return nil
		}
		return util.CopyFile(p, filepath.Join(r.dest, wikilink.AssetsDir, name))
	})
}

// skipDir excludes hidden vault folders, the assets directory and a
// destination nested inside the source from the page walk.
func (m *Mapper) skipDir(r *run, p, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if r.assets != "" && sameDir(p, r.assets) {
		return true
	}
	return sameDir(p, r.dest)
}

func (m *Mapper) write(target string, data []byte) error {
	if m.opts.DryRun {
		return nil
	}
	return util.WriteFileAtomic(target, data, 0o644)
}

func relSlash(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func joinRel(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
