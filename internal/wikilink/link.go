// Package wikilink converts [[wiki style]] references into markdown links
// using the name to path mapping produced by the mapper.
package wikilink

import (
	"path"
	"regexp"
	"strings"
)

// pattern matches [[target]] and [[target|display]], with an optional leading
// "!" marking an embed.
var pattern = regexp.MustCompile(`(!?)\[\[([^\]]+)\]\]`)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// Link is a single parsed wiki reference.
type Link struct {
	// Target is the referenced name as written, possibly with a folder prefix,
	// an extension or a #heading.
	Target string
	// Display is the link text; it defaults to Target.
	Display string
	// Embed is set for ![[...]] references.
	Embed bool
}

// Parse splits the inside of a [[...]] reference into target and display text.
func Parse(inner string, embed bool) Link {
	target, display, found := strings.Cut(inner, "|")
	if !found {
		display = inner
	}
	return Link{Target: target, Display: display, Embed: embed}
}

// Name is the unqualified target: everything up to the last "/" and any
// #heading are dropped. Resolution is by base name only.
func (l Link) Name() string {
	name, _, _ := strings.Cut(l.Target, "#")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}

// Anchor returns the heading part of [[Page#Heading]], if any.
func (l Link) Anchor() string {
	_, anchor, _ := strings.Cut(l.Target, "#")
	return strings.TrimSpace(anchor)
}

// IsImage reports whether the target names an image file.
func (l Link) IsImage() bool {
	return IsImage(l.Name())
}

// IsImage reports whether name carries one of the recognised image extensions.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}
