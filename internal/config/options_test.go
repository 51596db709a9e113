package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestOptionsInitDefaults(t *testing.T) {
	opts := New()
	if err := opts.Init(true, false, true, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.JSONOutput || !opts.DryRun || opts.Verbose {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.Logger().GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", opts.Logger().GetLevel())
	}
	if err := opts.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	SetCurrent(nil)
}

func TestOptionsInitVerboseWithLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "vaultsite.log")
	opts := New()
	if err := opts.Init(false, true, false, logPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Logger().GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", opts.Logger().GetLevel())
	}
	opts.Logger().Info("hello")
	if err := opts.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log output in file")
	}
	SetCurrent(nil)
}

func TestOptionsInitErrors(t *testing.T) {
	opts := New()
	if err := opts.Init(false, false, false, filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Fatalf("expected error for unwritable log file")
	}

	SetCurrent(nil)
	if _, err := Current(); err == nil {
		t.Fatalf("expected error when current not set")
	}
}

func TestContextRoundTrip(t *testing.T) {
	opts := New()
	ctx := opts.WithContext(context.Background())
	got, err := FromContext(ctx)
	if err != nil || got != opts {
		t.Fatalf("unexpected context options: %v %v", got, err)
	}
	if _, err := FromContext(nil); err == nil {
		t.Fatalf("expected error for nil context")
	}
}

func TestLoggerFallbackAndOverride(t *testing.T) {
	opts := New()
	if opts.Logger() == nil {
		t.Fatalf("expected fallback logger")
	}
	logger, hook := logtest.NewNullLogger()
	opts.SetLogger(logger)
	opts.Logger().Warn("careful")
	if len(hook.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(hook.Entries))
	}
}
