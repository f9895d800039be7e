package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/cloon/internal/model"
)

// ProgressBar renders a Unicode progress bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d", bar, done, total)
}

// PanelString frames lines using the current theme.
func PanelString(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Panel writes a framed box to w.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(lines))
}

// Badge is the one-line queue strip: count plus the three newest names.
func Badge(items []model.TriedOnItem) string {
	t := Current()
	head := t.Accent.Render("Tried on") + " " + t.Title.Render(fmt.Sprint(len(items)))
	if len(items) == 0 {
		return head + "  " + t.Muted.Render("nothing yet")
	}
	n := min(len(items), 3)
	names := make([]string, 0, n)
	for _, it := range items[:n] {
		names = append(names, Truncate(it.Name(), 24))
	}
	s := head + "  " + strings.Join(names, ", ")
	if len(items) > n {
		s += t.Muted.Render(fmt.Sprintf(" +%d", len(items)-n))
	}
	return s
}

// Truncate cuts s to width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 4 {
		return s
	}
	return string(r[:width-3]) + "..."
}

// OK and Fail print status lines.
func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
