package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/virtualboard/vaultsite/cmd"
	"github.com/virtualboard/vaultsite/internal/testutil"
)

func TestRunSuccessAndFailure(t *testing.T) {
	fix := testutil.NewFixture(t)

	root := cmd.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	t.Cleanup(func() { root.SetArgs(nil) })

	root.SetArgs([]string{"map", fix.Source(), fix.Dest(), fix.MappingFile()})
	if code := run(); code != 0 {
		t.Fatalf("expected success, got %d", code)
	}

	root.SetArgs([]string{"--json", "rewrite", fix.Dest(), fix.MappingFile()})
	if code := run(); code != 0 {
		t.Fatalf("expected success, got %d", code)
	}
	if !bytes.Contains(out.Bytes(), []byte(`"success": true`)) {
		t.Fatalf("expected json output, got %s", out.String())
	}

	root.SetArgs([]string{"rewrite", fix.Dest()})
	if code := run(); code != cmd.ExitCodeUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}

	root.SetArgs([]string{"rewrite", fix.Dest(), fix.Path("missing.json")})
	if code := run(); code != cmd.ExitCodeNotFound {
		t.Fatalf("expected not-found exit, got %d", code)
	}
}
