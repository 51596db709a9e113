// Package mapping holds the note name to site path table shared by the mapper
// and the link rewriter.
package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/virtualboard/vaultsite/internal/util"
)

var (
	// ErrNotFound indicates the mapping file does not exist.
	ErrNotFound = errors.New("mapping file not found")
	// ErrInvalid indicates the mapping file is not a JSON object of strings.
	ErrInvalid = errors.New("invalid mapping file")
)

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {"type": "string", "minLength": 1}
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// Mapping maps an original base name (file name without extension) to the new
// slash-separated path relative to the site root.
//
// Names are not qualified by directory: two notes with the same base name in
// different folders share one entry and the last one written wins.
type Mapping map[string]string

// New returns an empty mapping.
func New() Mapping {
	return Mapping{}
}

// Set stores path under name and returns the path it replaced, if any.
func (m Mapping) Set(name, path string) (previous string, replaced bool) {
	previous, replaced = m[name]
	m[name] = path
	return previous, replaced
}

// Lookup returns the path stored for name.
func (m Mapping) Lookup(name string) (string, bool) {
	path, ok := m[name]
	return path, ok
}

// Reverse maps a site URL path (extension stripped) back to the original
// source path. It is written for traceability only and never read back.
type Reverse map[string]string

// Add records that newPath was produced from source.
func (r Reverse) Add(newPath, source string) {
	r[strings.TrimSuffix(newPath, ".md")] = source
}

// Load reads and validates a persisted mapping.
func Load(path string) (Mapping, error) {
	// #nosec G304 -- mapping path is provided on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}
	return Decode(data)
}

// Decode validates data against the mapping schema and decodes it.
func Decode(data []byte) (Mapping, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(details, "; "))
	}
	m := New()
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return m, nil
}

// Save writes the mapping as indented JSON. Keys are sorted so identical
// input yields identical bytes.
func Save(path string, m Mapping) error {
	return writeJSON(path, map[string]string(m))
}

// SaveReverse writes the reverse mapping the same way as Save.
func SaveReverse(path string, r Reverse) error {
	return writeJSON(path, map[string]string(r))
}

func writeJSON(path string, v map[string]string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write mapping %s: %w", path, err)
	}
	return nil
}
