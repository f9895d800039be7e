// Package tui is the interactive front end: a swipe feed, the closet grid as
// a list, and the tried-on sheet with selection mode.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"github.com/idilsaglam/cloon/internal/feed"
	"github.com/idilsaglam/cloon/internal/model"
	"github.com/idilsaglam/cloon/internal/session"
	"github.com/idilsaglam/cloon/internal/store/queue"
	"github.com/idilsaglam/cloon/internal/ui"
)

type view int

const (
	viewFeed view = iota
	viewCloset
	viewSheet
)

var viewNames = []string{"Feed", "Closet", "Tried on"}

// queueChangedMsg is delivered once per burst of queue mutations.
type queueChangedMsg struct{}

type keyMap struct {
	Quit, Next, Left, Right, Reset, Toggle, Select, Apply, Delete, Share, Clear, Undo, Back key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "skip")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "try on")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset feed")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "try on/off")),
	Select: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Share:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Undo:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// Model is the Bubble Tea model. Build it with New and release it with Close.
type Model struct {
	sess *session.Session
	log  pslog.Logger

	view   view
	closet list.Model
	sheet  list.Model

	selected map[string]bool    // sheet selection mode is on while non-empty
	undo     []model.TriedOnItem // last deleted batch, queue order
	undoLook string              // applied look id lost with the batch

	status        string
	statusErr     bool
	width, height int

	changes chan struct{}
	done    chan struct{}
	cancel  func()
}

// New subscribes to the session's queue; call Close when done.
func New(ctx context.Context, sess *session.Session) Model {
	m := Model{
		sess:     sess,
		log:      pslog.Ctx(ctx),
		closet:   newList("Closet", true),
		sheet:    newList("Tried on", false),
		selected: map[string]bool{},
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		width:    80,
		height:   24,
	}
	changes := m.changes
	m.cancel = sess.Queue().Subscribe(func(queue.Event) {
		select {
		case changes <- struct{}{}:
		default: // a refresh is already pending
		}
	})
	m.refresh()
	m.resize()
	return m
}

// Close drops the queue subscription.
func (m Model) Close() {
	m.cancel()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, sess *session.Session) error {
	m := New(ctx, sess)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func (m Model) waitForChange() tea.Cmd {
	changes, done := m.changes, m.done
	return func() tea.Msg {
		select {
		case <-changes:
			return queueChangedMsg{}
		case <-done:
			return nil
		}
	}
}

func (m Model) Init() tea.Cmd { return m.waitForChange() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case queueChangedMsg:
		m.refresh()
		return m, m.waitForChange()

	case tea.KeyMsg:
		if m.view == viewCloset && m.closet.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, keys.Next) {
			m.view = (m.view + 1) % view(len(viewNames))
			m.clearSelection()
			return m, nil
		}
		switch msg.String() {
		case "1", "2", "3":
			m.view = view(msg.String()[0] - '1')
			m.clearSelection()
			return m, nil
		}
		var handled bool
		switch m.view {
		case viewFeed:
			handled = m.updateFeed(msg)
		case viewCloset:
			handled = m.updateCloset(msg)
		case viewSheet:
			handled = m.updateSheet(msg)
		}
		if handled {
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewCloset:
		m.closet, cmd = m.closet.Update(msg)
	case viewSheet:
		m.sheet, cmd = m.sheet.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateFeed(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
		dir := feed.Left
		if key.Matches(msg, keys.Right) {
			dir = feed.Right
		}
		g, ok := m.sess.Feed().Swipe(dir)
		if !ok {
			m.setStatus("feed is empty, press r to start over", true)
			return true
		}
		if dir == feed.Right {
			m.setStatus("tried on "+g.Title(), false)
		} else {
			m.setStatus("skipped "+g.Title(), false)
		}
		return true
	case key.Matches(msg, keys.Reset):
		m.sess.Feed().Reset()
		m.setStatus("feed reset", false)
		return true
	}
	return false
}

func (m *Model) updateCloset(msg tea.KeyMsg) bool {
	if !key.Matches(msg, keys.Toggle) {
		return false
	}
	ci, ok := m.closet.SelectedItem().(closetItem)
	if !ok {
		return true
	}
	in, err := m.sess.ToggleCloset(ci.g.ID)
	if err != nil {
		m.setStatus(err.Error(), true)
		return true
	}
	if in {
		m.setStatus("tried on "+ci.g.Title(), false)
	} else {
		m.setStatus("took off "+ci.g.Title(), false)
	}
	return true
}

func (m *Model) updateSheet(msg tea.KeyMsg) bool {
	cur, hasCur := m.sheet.SelectedItem().(sheetItem)
	switch {
	case key.Matches(msg, keys.Select):
		if hasCur {
			m.toggleSelected(cur.it.ID)
		}
		return true

	case key.Matches(msg, keys.Apply):
		if !hasCur {
			return true
		}
		if len(m.selected) > 0 {
			// selection mode: enter toggles like space
			m.toggleSelected(cur.it.ID)
			return true
		}
		if err := m.sess.Apply(cur.it.ID); err != nil {
			m.setStatus(err.Error(), true)
			return true
		}
		m.setStatus("applied "+cur.it.Name(), false)
		m.view = viewFeed
		return true

	case key.Matches(msg, keys.Delete):
		ids := m.targets(cur, hasCur)
		if len(ids) == 0 {
			return true
		}
		var batch []model.TriedOnItem
		for _, it := range m.sess.Queue().Items() {
			if slices.Contains(ids, it.ID) {
				batch = append(batch, it)
			}
		}
		m.saveUndo(batch)
		if err := m.sess.DeleteSelected(ids); err != nil {
			m.setStatus(err.Error(), true)
			return true
		}
		m.clearSelection()
		m.setStatus(fmt.Sprintf("deleted %d, u to undo", len(m.undo)), false)
		return true

	case key.Matches(msg, keys.Share):
		ids := m.targets(cur, hasCur)
		text, err := m.sess.Share(ids)
		if err != nil {
			m.setStatus(err.Error(), true)
			return true
		}
		m.log.Debug("shared look", "id", ids[0])
		m.setStatus("copied: "+text, false)
		return true

	case key.Matches(msg, keys.Clear):
		m.saveUndo(m.sess.Queue().Items())
		m.sess.Clear()
		m.clearSelection()
		m.setStatus("queue cleared, u to undo", false)
		return true

	case key.Matches(msg, keys.Undo):
		if len(m.undo) == 0 {
			m.setStatus("nothing to undo", true)
			return true
		}
		// re-add oldest first so the batch keeps its order at the front
		for i := len(m.undo) - 1; i >= 0; i-- {
			m.sess.Queue().Add(m.undo[i])
		}
		msg := fmt.Sprintf("restored %d", len(m.undo))
		if m.undoLook != "" {
			if err := m.sess.Apply(m.undoLook); err == nil {
				msg += ", look back on avatar"
			}
		}
		m.setStatus(msg, false)
		m.undo, m.undoLook = nil, ""
		return true

	case key.Matches(msg, keys.Back):
		if len(m.selected) > 0 {
			m.clearSelection()
		} else {
			m.view = viewFeed
		}
		return true
	}
	return false
}

// targets is the selection, or the highlighted row when nothing is selected.
// Selected ids keep sheet order.
func (m *Model) targets(cur sheetItem, hasCur bool) []string {
	if len(m.selected) == 0 {
		if hasCur {
			return []string{cur.it.ID}
		}
		return nil
	}
	var ids []string
	for _, it := range m.sess.Queue().Items() {
		if m.selected[it.ID] && !slices.Contains(ids, it.ID) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// saveUndo keeps batch for u, along with the applied look if the batch holds it.
func (m *Model) saveUndo(batch []model.TriedOnItem) {
	m.undo, m.undoLook = batch, ""
	if look, ok := m.sess.Applied(); ok {
		for _, it := range batch {
			if it.ID == look.ID {
				m.undoLook = look.ID
				break
			}
		}
	}
}

func (m *Model) toggleSelected(id string) {
	if m.selected[id] {
		delete(m.selected, id)
	} else {
		m.selected[id] = true
	}
}

func (m *Model) clearSelection() { clear(m.selected) }

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// refresh rebuilds both lists from the session.
func (m *Model) refresh() {
	closet := m.sess.Closet()
	ci := make([]list.Item, 0, len(closet))
	for _, g := range closet {
		ci = append(ci, closetItem{g: g, queued: m.sess.Queue().Contains(g.ID)})
	}
	m.closet.SetItems(ci)

	applied, hasApplied := m.sess.Applied()
	items := m.sess.Queue().Items()
	si := make([]list.Item, 0, len(items))
	present := map[string]bool{}
	for _, it := range items {
		present[it.ID] = true
		si = append(si, sheetItem{
			it:       it,
			selected: m.selected[it.ID],
			applied:  hasApplied && it.ID == applied.ID,
		})
	}
	for id := range m.selected {
		if !present[id] {
			delete(m.selected, id)
		}
	}
	m.sheet.SetItems(si)
}

func (m *Model) resize() {
	w := max(m.width-4, 20)
	h := max(m.height-8, 3)
	m.closet.SetSize(w, h)
	m.sheet.SetSize(w, h)
}

func (m Model) View() string {
	t := ui.Current()

	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if view(i) == m.view {
			tabs = append(tabs, t.Selected.Render(" "+label+" "))
		} else {
			tabs = append(tabs, t.Muted.Render(" "+label+" "))
		}
	}
	header := strings.Join(tabs, " ") + "   " + ui.Badge(m.sess.Queue().Items())

	var body string
	switch m.view {
	case viewFeed:
		body = m.feedView()
	case viewCloset:
		body = m.closet.View()
	case viewSheet:
		body = m.sheetView()
	}

	status := t.Muted.Render(m.helpLine())
	if m.status != "" {
		st := t.Success
		if m.statusErr {
			st = t.Error
		}
		status = st.Render(ui.Truncate(m.status, max(m.width-6, 10))) + "\n" + status
	}
	return ui.PanelString([]string{header, "", body, "", status})
}

func (m Model) feedView() string {
	t := ui.Current()
	f := m.sess.Feed()
	progress := t.Muted.Render(ui.ProgressBar(f.Total()-f.Remaining(), f.Total(), 20))
	g, ok := f.Current()
	if !ok {
		return t.Muted.Render("You're all caught up.") + "\n" + progress
	}
	card := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(1, 2).
		Width(min(max(m.width-8, 20), 60))
	lines := []string{t.Title.Render(g.Title())}
	if g.TriedOnCount != "" {
		lines = append(lines, t.Accent.Render(g.TriedOnCount+" tried on"))
	}
	lines = append(lines, t.Muted.Render(ui.Truncate(g.Image, 54)))
	return card.Render(strings.Join(lines, "\n")) + "\n" + progress
}

func (m Model) sheetView() string {
	t := ui.Current()
	if len(m.sheet.Items()) == 0 {
		return t.Muted.Render("Nothing tried on yet. Swipe right in the feed or pick from the closet.")
	}
	top := ""
	if n := len(m.selected); n > 0 {
		top = t.Accent.Render(fmt.Sprintf("Select (%d)", n)) + "\n"
	}
	return top + m.sheet.View()
}

func (m Model) helpLine() string {
	var bs []key.Binding
	switch m.view {
	case viewFeed:
		bs = []key.Binding{keys.Left, keys.Right, keys.Reset}
	case viewCloset:
		bs = []key.Binding{keys.Toggle}
	case viewSheet:
		bs = []key.Binding{keys.Select, keys.Apply, keys.Delete, keys.Share, keys.Clear, keys.Undo, keys.Back}
	}
	bs = append(bs, keys.Next, keys.Quit)
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
