package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureHeading(t *testing.T) {
	cases := []struct {
		name, content, want string
	}{
		{"plain", "Body text.\n", "# Title\n\nBody text.\n"},
		{"existing", "# Already\n\nBody\n", "# Already\n\nBody\n"},
		{"existing after blanks", "\n\n# Already\n", "\n\n# Already\n"},
		{"blank lines kept", "\n\nBody\n", "\n\n# Title\n\nBody\n"},
		{"h2 is not h1", "## Section\n", "# Title\n\n## Section\n"},
		{"tag is not a heading", "#tag line\n", "# Title\n\n#tag line\n"},
		{"empty", "", "# Title\n\n"},
		{"only blanks", "\n \n", "\n \n# Title\n\n"},
		{"frontmatter", "---\naliases: [x]\n---\nBody\n", "---\naliases: [x]\n---\n# Title\n\nBody\n"},
		{"frontmatter with heading", "---\na: b\n---\n\n# Head\n", "---\na: b\n---\n\n# Head\n"},
		{"unterminated frontmatter", "---\nnot closed\n", "# Title\n\n---\nnot closed\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EnsureHeading(tc.content, "Title")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, EnsureHeading(got, "Title"), "not idempotent")
		})
	}
}

func TestParseTitle(t *testing.T) {
	assert.Equal(t, "The Cast", ParseTitle([]byte("title: The Cast\nnav:\n  - a\n")))
	assert.Equal(t, "Quoted", ParseTitle([]byte("title: \"Quoted\"\n")))
	assert.Equal(t, "Foo: Bar", ParseTitle([]byte("title: Foo: Bar\n")))
	assert.Equal(t, "", ParseTitle([]byte("nav:\n  - a\n")))
	assert.Equal(t, "", ParseTitle(nil))
}

func TestReadTitle(t *testing.T) {
	dir := t.TempDir()
	title, err := ReadTitle(dir)
	require.NoError(t, err)
	assert.Equal(t, "", title)

	require.NoError(t, os.WriteFile(filepath.Join(dir, SidecarName), []byte("title: Places\n"), 0o600))
	title, err = ReadTitle(dir)
	require.NoError(t, err)
	assert.Equal(t, "Places", title)
}
