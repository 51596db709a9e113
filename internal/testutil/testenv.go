package testutil

import (
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/virtualboard/vaultsite/internal/config"
)

// Fixture provides a temporary sample vault laid out like a real one, plus
// locations for the generated site and mapping files.
type Fixture struct {
	Root string
}

// sampleVault is keyed by path relative to the fixture root.
var sampleVault = map[string]string{
	"vault/Home.md": "Welcome. Start with [[Characters]] or the [[World Map.png|map]].\n#wiki\n",

	"vault/Characters/.pages":        "title: The Cast\nnav:\n  - NPCs\n  - PCs\n",
	"vault/Characters/Characters.md": "All characters of the campaign.\n",

	"vault/Characters/NPCs/Elaric the Blightwarden.md": "# Elaric the Blightwarden\n\nMember of [[Notes/Hollow Root Covenant|the Covenant]].\n",
	"vault/Characters/PCs/Foo.md":                      "Friend of [[Elaric the Blightwarden]]. Rumours of [[Nonexistent Page]].\n",

	"vault/Groups/Hollow Root Covenant/Hollow Root Covenant.md": "\n\nA secretive order.\n\n```dataview\nLIST FROM \"Groups\"\n```\n",

	"vault/Locations/Locations.md": "Places.\n",
	"vault/Locations/index.md":     "# Locations\n",

	"vault/.obsidian/workspace.md": "internal\n",

	"Assets/World Map.png": "\x89PNG fake image bytes",
}

// NewFixture writes the sample vault into a fresh temporary directory.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	f := &Fixture{Root: t.TempDir()}
	for rel, content := range sampleVault {
		f.WriteFile(t, rel, []byte(content))
	}
	return f
}

// Source is the vault directory.
func (f *Fixture) Source() string {
	return filepath.Join(f.Root, "vault")
}

// Dest is the generated site directory.
func (f *Fixture) Dest() string {
	return filepath.Join(f.Root, "site")
}

// MappingFile is where the name mapping is written.
func (f *Fixture) MappingFile() string {
	return filepath.Join(f.Root, "mapping.json")
}

// Options returns cli options initialised for tests.
func (f *Fixture) Options(t *testing.T, jsonOut, verbose, dry bool) *config.Options {
	t.Helper()
	opts := config.New()
	if err := opts.Init(jsonOut, verbose, dry, ""); err != nil {
		t.Fatalf("failed to init options: %v", err)
	}
	t.Cleanup(func() { config.SetCurrent(nil) })
	return opts
}

// QuietOptions returns options whose log entries are captured by the returned hook.
func (f *Fixture) QuietOptions(dry bool) (*config.Options, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	opts := config.New()
	opts.DryRun = dry
	opts.SetLogger(logger)
	return opts, hook
}

// WriteFile writes a file relative to the fixture root.
func (f *Fixture) WriteFile(t *testing.T, relative string, data []byte) {
	t.Helper()
	path := f.Path(relative)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// ReadFile reads a file relative to the fixture root.
func (f *Fixture) ReadFile(t *testing.T, relative string) string {
	t.Helper()
	data, err := os.ReadFile(f.Path(relative))
	if err != nil {
		t.Fatalf("failed to read %s: %v", relative, err)
	}
	return string(data)
}

// Path resolves a slash-separated path relative to the fixture root.
func (f *Fixture) Path(relative string) string {
	return filepath.Join(f.Root, filepath.FromSlash(relative))
}
