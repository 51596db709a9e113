package mapper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// SidecarName is the per-directory metadata file copied verbatim into the site.
const SidecarName = ".pages"

var titleLinePattern = regexp.MustCompile(`(?m)^title:[ \t]*(.+?)[ \t]*$`)

type sidecar struct {
	Title string `yaml:"title"`
}

// ReadTitle returns the title declared in dir's sidecar file. A missing
// sidecar is not an error and yields "".
func ReadTitle(dir string) (string, error) {
	// #nosec G304 -- sidecar path is derived from the walked source tree
	data, err := os.ReadFile(filepath.Join(dir, SidecarName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read sidecar in %s: %w", dir, err)
	}
	return ParseTitle(data), nil
}

// ParseTitle extracts the title field from sidecar content. Content that is not
// valid YAML is scanned for a "title: value" line instead.
func ParseTitle(data []byte) string {
	var meta sidecar
	if err := yaml.Unmarshal(data, &meta); err == nil {
		return strings.TrimSpace(meta.Title)
	}
	if m := titleLinePattern.FindSubmatch(data); m != nil {
		return strings.Trim(string(m[1]), `"'`)
	}
	return ""
}
