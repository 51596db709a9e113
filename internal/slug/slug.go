// Package slug turns human-authored note titles and paths into stable URL slugs.
package slug

import (
	"path"
	"regexp"
	"strings"
)

var (
	separatorPattern = regexp.MustCompile(`[\s\p{Zs}_]+`)
	invalidPattern   = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenPattern    = regexp.MustCompile(`-+`)
)

// MarkdownExt is the extension of note files.
const MarkdownExt = ".md"

// Slugify converts text to a lowercase, hyphen-separated slug. Forward slashes
// are kept as path separators and every segment is normalised on its own, so
// slugifying "a/b" equals joining the slugs of "a" and "b".
func Slugify(text string) string {
	text = TrimMarkdownExt(text)
	segments := strings.Split(text, "/")
	for i, segment := range segments {
		segments[i] = segmentSlug(segment)
	}
	return strings.Join(segments, "/")
}

func segmentSlug(segment string) string {
	s := strings.ToLower(segment)
	s = separatorPattern.ReplaceAllString(s, "-")
	s = invalidPattern.ReplaceAllString(s, "")
	s = hyphenPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TrimMarkdownExt removes a trailing ".md" extension, ignoring case.
func TrimMarkdownExt(name string) string {
	if IsMarkdown(name) {
		return name[:len(name)-len(MarkdownExt)]
	}
	return name
}

// IsMarkdown reports whether name carries the markdown extension.
func IsMarkdown(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), MarkdownExt)
}

// Path slugifies every segment of a slash-separated relative path. A trailing
// markdown file keeps its ".md" extension; other files keep their extension
// after the slugified stem.
func Path(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	dir, file := path.Split(rel)
	dir = strings.TrimSuffix(dir, "/")

	var name string
	if IsMarkdown(file) {
		name = segmentSlug(TrimMarkdownExt(file)) + MarkdownExt
	} else {
		name = Asset(file)
	}
	if dir == "" {
		return name
	}
	return Dir(dir) + "/" + name
}

// Dir slugifies every segment of a slash-separated directory path.
func Dir(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == "" {
		return ""
	}
	segments := strings.Split(rel, "/")
	for i, segment := range segments {
		segments[i] = segmentSlug(segment)
	}
	return strings.Join(segments, "/")
}

// Asset returns the flattened file name for an asset: slugified stem with the
// original extension preserved. The asset copy and image link resolution both
// go through here so the two always agree.
func Asset(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := path.Ext(base)
	return segmentSlug(strings.TrimSuffix(base, ext)) + ext
}
