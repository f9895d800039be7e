package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/cloon/internal/store/queue"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLOON_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.UI.Theme != "classic" || c.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if want := filepath.Join(home, ".config", "cloon", "catalog.json"); c.Catalog.Path != want {
		t.Fatalf("expected catalog path %q, got %q", want, c.Catalog.Path)
	}
	if p, _ := c.DuplicatePolicy(); p != queue.KeepDuplicates {
		t.Fatalf("expected keep policy, got %v", p)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "config.toml")
	body := "[ui]\ntheme = \"neon\"\n\n[queue]\nduplicates = \"move-to-front\"\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLOON_LOG_LEVEL", "debug")

	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.UI.Theme != "neon" {
		t.Fatalf("expected neon theme from file, got %q", c.UI.Theme)
	}
	if c.Log.Level != "debug" {
		t.Fatalf("expected env override for log level, got %q", c.Log.Level)
	}
	if pol, _ := c.DuplicatePolicy(); pol != queue.MoveToFront {
		t.Fatalf("expected move-to-front, got %v", pol)
	}
}

func TestLoadRejectsUnknownDuplicatePolicy(t *testing.T) {
	isolate(t)
	t.Setenv("CLOON_QUEUE_DUPLICATES", "sometimes")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for bad duplicate policy")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}
