package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/cloon/internal/model"
	"github.com/idilsaglam/cloon/internal/ui"
)

// row is what the shared delegate needs from a list item.
type row interface {
	list.Item
	box() string
	text() string
	on() bool
}

// closetItem adapts a closet garment to bubbles/list.Item
type closetItem struct {
	g      model.Garment
	queued bool
}

func (i closetItem) Title() string       { return i.g.Title() }
func (i closetItem) Description() string { return i.g.ID }
func (i closetItem) FilterValue() string { return i.g.Title() }
func (i closetItem) text() string        { return i.g.Title() }
func (i closetItem) on() bool            { return i.queued }
func (i closetItem) box() string {
	if i.queued {
		return ui.Current().BoxChecked
	}
	return ui.Current().BoxUnchecked
}

// sheetItem is one entry of the tried-on sheet.
type sheetItem struct {
	it       model.TriedOnItem
	selected bool
	applied  bool
}

func (i sheetItem) Title() string       { return i.it.Name() }
func (i sheetItem) Description() string { return i.it.Image }
func (i sheetItem) FilterValue() string { return i.it.Name() }
func (i sheetItem) on() bool            { return i.selected }
func (i sheetItem) text() string {
	s := i.it.Name()
	if i.applied {
		s += " " + ui.Current().Success.Render("(on avatar)")
	}
	return s
}
func (i sheetItem) box() string {
	if i.selected {
		return ui.Current().BoxChecked
	}
	return ui.Current().BoxUnchecked
}

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(r.box())
	if r.on() {
		box = t.Success.Render(r.box())
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+ui.Truncate(r.text(), max(m.Width()-6, 10)))
}

func newList(title string, filter bool) list.Model {
	t := ui.Current()
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(filter)
	l.Styles.Title = t.Title
	l.Styles.PaginationStyle = t.Muted
	l.FilterInput.Prompt = "/ "
	l.KeyMap.Quit.SetEnabled(false)
	return l
}
