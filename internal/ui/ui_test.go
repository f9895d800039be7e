package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idilsaglam/cloon/internal/model"
)

func named(id, name string) model.TriedOnItem {
	return model.TriedOnItem{ID: id, Meta: map[string]any{model.MetaName: name}}
}

func TestBadge(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	if got := Badge(nil); !strings.Contains(got, "Tried on 0") {
		t.Fatalf("unexpected empty badge %q", got)
	}
	items := []model.TriedOnItem{named("d", "D"), named("c", "C"), named("b", "B"), named("a", "A")}
	got := Badge(items)
	if !strings.Contains(got, "Tried on 4") || !strings.Contains(got, "D, C, B") || !strings.Contains(got, "+1") {
		t.Fatalf("unexpected badge %q", got)
	}
	if strings.Contains(got, " A") {
		t.Fatalf("badge must show only three names: %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	got := ProgressBar(1, 4, 8)
	if !strings.HasPrefix(got, "██░░░░░░") || !strings.HasSuffix(got, "1/4") {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := ProgressBar(0, 0, 1); !strings.HasSuffix(got, "0/1") {
		t.Fatalf("expected zero total clamped, got %q", got)
	}
}

func TestPanelFramesLines(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	Panel(&buf, []string{"one", "two"})
	out := buf.String()
	if !strings.Contains(out, "│ one") || !strings.Contains(out, "┌") {
		t.Fatalf("unexpected panel:\n%s", out)
	}
}

func TestOKAndFail(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	if buf.String() != "ok added\nerror: nope\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Red Jacket", 6); got != "Red..." {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	SetTheme("sparkly")
	if Current().Name != "classic" {
		t.Fatalf("expected classic, got %q", Current().Name)
	}
}
