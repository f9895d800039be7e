package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeClipboard struct{ text string }

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

type harness struct {
	stdout, stderr bytes.Buffer
	clip           fakeClipboard
	catalog        string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLOON_CONFIG", "")
	t.Setenv("CLOON_LOG_LEVEL", "error")
	t.Setenv("CLOON_UI_THEME", "mono")
	h := &harness{catalog: filepath.Join(home, "catalog.json")}
	t.Setenv("CLOON_CATALOG_PATH", h.catalog)
	return h
}

func (h *harness) run(stdin string, args ...string) int {
	return Run(context.Background(), args, Options{
		Stdin:     strings.NewReader(stdin),
		Stdout:    &h.stdout,
		Stderr:    &h.stderr,
		Clipboard: &h.clip,
	})
}

func TestRunUsage(t *testing.T) {
	h := newHarness(t)
	if code := h.run(""); code != 2 {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if code := h.run("", "dance"); code != 2 {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(h.stderr.String(), "unknown subcommand: dance") {
		t.Fatalf("unexpected stderr %q", h.stderr.String())
	}
	if code := h.run("", "help"); code != 0 {
		t.Fatalf("expected 0, got %d", code)
	}
}

func TestCatalogListsSample(t *testing.T) {
	h := newHarness(t)
	if code := h.run("", "catalog", "-group"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.stderr.String())
	}
	out := h.stdout.String()
	for _, want := range []string{"Catalog", "Feed", "Closet", "item-1", "closet-1", "Red Jacket"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCatalogInit(t *testing.T) {
	h := newHarness(t)
	if code := h.run("", "catalog", "init"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.stderr.String())
	}
	if _, err := os.Stat(h.catalog); err != nil {
		t.Fatalf("expected catalog file: %v", err)
	}
	if code := h.run("", "catalog", "init"); code != 1 {
		t.Fatalf("expected refusal to overwrite, got %d", code)
	}
}

func TestBadCatalogFails(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.catalog, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := h.run("ls\n", "shell"); code != 1 {
		t.Fatalf("expected 1, got %d", code)
	}
}

func TestShellSession(t *testing.T) {
	h := newHarness(t)
	script := strings.Join([]string{
		"try closet-1",
		"try closet-2",
		"rm closet-1",
		"ls",
		"apply closet-2",
		"share closet-2",
		"swipe right",
		"swipe left",
		"rm nothing-here",
		"clear",
		"quit",
		"try closet-3",
	}, "\n")
	if code := h.run(script, "shell"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.stderr.String())
	}
	out := h.stdout.String()

	for _, want := range []string{
		"Tried on 1  Red Jacket",
		"Tried on 2  Blue Jeans, Red Jacket",
		"applied closet-2",
		"Check out Blue Jeans on Cloon.",
		"queued item-1",
		"skipped item-2",
		"Tried on 0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "White Sneakers") {
		t.Fatalf("commands after quit must not run:\n%s", out)
	}
	if h.clip.text == "" {
		t.Fatalf("expected share text on the clipboard")
	}
	if h.stderr.Len() != 0 {
		t.Fatalf("unexpected errors: %s", h.stderr.String())
	}
}

func TestShellReportsErrorsAndContinues(t *testing.T) {
	h := newHarness(t)
	if code := h.run("try nope\nfrobnicate\napply closet-1\ntry closet-1\n", "shell"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	errOut := h.stderr.String()
	for _, want := range []string{"unknown garment: nope", `unknown command "frobnicate"`, "not in tried-on queue"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("expected %q in stderr:\n%s", want, errOut)
		}
	}
	if !strings.Contains(h.stdout.String(), "Tried on 1") {
		t.Fatalf("expected the last try to land:\n%s", h.stdout.String())
	}
}

func TestShellToggleAndAdd(t *testing.T) {
	h := newHarness(t)
	script := "toggle closet-4\ntoggle closet-4\nadd https://x/me.png Selfie\n"
	if code := h.run(script, "shell"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.stderr.String())
	}
	out := h.stdout.String()
	for _, want := range []string{"closet-4 tried on", "closet-4 taken off", "Tried on 1  Selfie"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEnvLogLevelOverridesConfig(t *testing.T) {
	h := newHarness(t)
	t.Setenv("LOG_NO_COLOR", "true")
	t.Setenv("LOG_LEVEL", "info")
	if code := h.run("", "catalog", "init"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.stderr.String())
	}
	if !strings.Contains(h.stderr.String(), "catalog written") {
		t.Fatalf("expected info line despite log.level=error:\n%s", h.stderr.String())
	}
}

func TestConfigLogLevelFiltersWithoutEnv(t *testing.T) {
	h := newHarness(t)
	t.Setenv("LOG_LEVEL", "")
	if code := h.run("", "catalog", "init"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.stderr.String())
	}
	if strings.Contains(h.stderr.String(), "catalog written") {
		t.Fatalf("log.level=error should hide info lines:\n%s", h.stderr.String())
	}
}

func TestUnknownLogLevel(t *testing.T) {
	h := newHarness(t)
	t.Setenv("CLOON_LOG_LEVEL", "chatty")
	if code := h.run("", "catalog"); code != 2 {
		t.Fatalf("expected 2, got %d", code)
	}
	if !strings.Contains(h.stderr.String(), `unknown log level "chatty"`) {
		t.Fatalf("unexpected stderr %q", h.stderr.String())
	}
}
