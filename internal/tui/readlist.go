package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
	"github.com/blackwell-systems/openshelf/internal/readlist"
)

type readListLoadedMsg struct {
	entries []readlist.Entry
	err     error
}

type readListChangedMsg struct {
	err error
}

// pendingAction is a destructive action awaiting a y/n keypress.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingRemove
	pendingClear
)

// ReadListModel shows the marked-read collection, most recent first.
type ReadListModel struct {
	store *readlist.Store

	entries []readlist.Entry
	cursor  int
	pending pendingAction
	errMsg  string

	width  int
	height int
}

// NewReadList creates the read-list view.
func NewReadList(store *readlist.Store) ReadListModel {
	return ReadListModel{store: store}
}

func (m ReadListModel) Init() tea.Cmd {
	return loadReadListCmd(m.store)
}

func loadReadListCmd(store *readlist.Store) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.List()
		return readListLoadedMsg{entries: entries, err: err}
	}
}

func (m ReadListModel) Update(msg tea.Msg) (ReadListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case readListLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.errMsg = ""
		return m, nil

	case readListChangedMsg:
		if msg.err != nil {
			m.errMsg = "Could not update your read list. Try again."
			m.pending = pendingNone
			return m, nil
		}
		m.pending = pendingNone
		return m, loadReadListCmd(m.store)

	case tea.KeyMsg:
		if m.pending != pendingNone {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.entries) > 0 {
				e := m.entries[m.cursor]
				book := openlibrary.Book{
					ID:       e.ID,
					Title:    e.Title,
					Author:   e.Author,
					CoverURL: e.CoverURL,
				}
				return m, func() tea.Msg { return BookSelectedMsg{Book: book} }
			}
		case "x":
			if len(m.entries) > 0 {
				m.pending = pendingRemove
			}
		case "C":
			if len(m.entries) > 0 {
				m.pending = pendingClear
			}
		}
		return m, nil
	}

	return m, nil
}

// updateConfirm handles the y/n prompt for remove and clear. Both are
// destructive and never run on a single keypress.
func (m ReadListModel) updateConfirm(msg tea.KeyMsg) (ReadListModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		store := m.store
		switch m.pending {
		case pendingRemove:
			id := m.entries[m.cursor].ID
			return m, func() tea.Msg { return readListChangedMsg{err: store.Remove(id)} }
		case pendingClear:
			return m, func() tea.Msg { return readListChangedMsg{err: store.Clear()} }
		}
	case "n", "N", "esc":
		m.pending = pendingNone
	}
	return m, nil
}

func (m ReadListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Read list"))
	if len(m.entries) > 0 {
		plural := "s"
		if len(m.entries) == 1 {
			plural = ""
		}
		b.WriteString(StyleHelp.Render(fmt.Sprintf("  %d book%s read", len(m.entries), plural)))
	}
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(StyleError.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(StyleHelp.Render("No books read yet. Mark one from its detail view."))
		return b.String()
	}

	for i, e := range m.entries {
		prefix := "  "
		titleStyle := StyleNormal
		if i == m.cursor {
			prefix = StyleHighlight.Render("›") + " "
			titleStyle = StyleHighlight
		}
		b.WriteString(prefix)
		b.WriteString(titleStyle.Render(padOrTruncate(e.Title, 40)))
		b.WriteString(" ")
		b.WriteString(StyleHelp.Render(padOrTruncate(e.Author, 24)))
		b.WriteString(" ")
		b.WriteString(StyleSuccess.Render("✓ "))
		b.WriteString(StyleHelp.Render(e.ReadAt.Format("Jan 2, 2006")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.pending {
	case pendingRemove:
		b.WriteString(StyleError.Render(fmt.Sprintf("Remove %q from your read list? (y/n)", m.entries[m.cursor].Title)))
	case pendingClear:
		b.WriteString(StyleError.Render("Remove all books from your read list? (y/n)"))
	default:
		b.WriteString(StyleHelp.Render("enter open · x remove · C clear all"))
	}
	return b.String()
}
