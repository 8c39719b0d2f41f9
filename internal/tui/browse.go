package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/openshelf/internal/readlist"
)

// browseMode identifies which view the browser is showing.
type browseMode int

const (
	modeSearch browseMode = iota
	modeFeatured
	modeReadList
	modeDetail
)

// Client is the aggregation surface the browser needs: search, the
// featured selection, and single-work detail.
type Client interface {
	Searcher
	FeaturedFetcher
	DetailFetcher
}

// BrowseModel is the top-level router. It owns one model per view and
// forwards messages to whichever is active.
type BrowseModel struct {
	client Client
	store  *readlist.Store

	mode     browseMode
	lastList browseMode // view to return to when leaving detail

	search   SearchModel
	featured FeaturedModel
	readList ReadListModel
	detail   DetailModel

	width  int
	height int
}

// NewBrowse creates the browser rooted at the search view.
func NewBrowse(client Client, store *readlist.Store) BrowseModel {
	return BrowseModel{
		client:   client,
		store:    store,
		mode:     modeSearch,
		lastList: modeSearch,
		search:   NewSearch(client),
		featured: NewFeatured(client),
		readList: NewReadList(store),
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.search.Init(), m.featured.Init(), m.readList.Init())
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
		m.featured, cmd = m.featured.Update(msg)
		cmds = append(cmds, cmd)
		m.readList, cmd = m.readList.Update(msg)
		cmds = append(cmds, cmd)
		if m.mode == modeDetail {
			m.detail, cmd = m.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case BookSelectedMsg:
		m.lastList = m.mode
		m.mode = modeDetail
		m.detail = NewDetail(m.client, m.store, msg.Book)
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, tea.Batch(m.detail.Init(), cmd)

	case BackMsg:
		m.mode = m.lastList
		if m.mode == modeReadList {
			// A mark-read in detail may have changed the list.
			return m, loadReadListCmd(m.store)
		}
		return m, nil

	case QuitAppMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.mode != modeDetail {
				m.mode = m.nextListMode()
				m.lastList = m.mode
				if m.mode == modeReadList {
					return m, loadReadListCmd(m.store)
				}
				return m, nil
			}
		case "esc":
			if m.mode != modeDetail && m.search.State() == SearchIdle {
				return m, tea.Quit
			}
		}
		// Keys go to the active view only.
		var cmd tea.Cmd
		switch m.mode {
		case modeSearch:
			m.search, cmd = m.search.Update(msg)
		case modeFeatured:
			m.featured, cmd = m.featured.Update(msg)
		case modeReadList:
			m.readList, cmd = m.readList.Update(msg)
		case modeDetail:
			m.detail, cmd = m.detail.Update(msg)
		}
		return m, cmd
	}

	return m.broadcast(msg)
}

// broadcast delivers async messages (fetch results, timers, spinner ticks)
// to every view. A view that tabbed out of focus mid-fetch still receives
// its result this way, and each message type carries enough identity
// (query tags, book ids, spinner ids) that the wrong view ignores it.
func (m BrowseModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	m.featured, cmd = m.featured.Update(msg)
	cmds = append(cmds, cmd)
	m.readList, cmd = m.readList.Update(msg)
	cmds = append(cmds, cmd)
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m BrowseModel) nextListMode() browseMode {
	switch m.mode {
	case modeSearch:
		return modeFeatured
	case modeFeatured:
		return modeReadList
	default:
		return modeSearch
	}
}

func (m BrowseModel) View() string {
	var body string
	switch m.mode {
	case modeSearch:
		body = m.search.View()
	case modeFeatured:
		body = m.featured.View()
	case modeReadList:
		body = m.readList.View()
	case modeDetail:
		body = m.detail.View()
	}

	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(StyleHelp.Render("tab switch view · ctrl+c quit"))
	return b.String()
}

// tabBar renders the view switcher line.
func (m BrowseModel) tabBar() string {
	labels := []struct {
		mode  browseMode
		label string
	}{
		{modeSearch, "Search"},
		{modeFeatured, "Featured"},
		{modeReadList, "Read list"},
	}

	active := m.mode
	if active == modeDetail {
		active = m.lastList
	}

	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.mode == active {
			parts = append(parts, StyleHighlight.Render("["+l.label+"]"))
		} else {
			parts = append(parts, StyleHelp.Render(" "+l.label+" "))
		}
	}
	return fmt.Sprintf("  %s", strings.Join(parts, " "))
}

// Run starts the interactive browser and blocks until the user quits.
func Run(client Client, store *readlist.Store) error {
	p := tea.NewProgram(NewBrowse(client, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
