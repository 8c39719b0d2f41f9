package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
)

// SearchState labels the phases of the query pipeline.
type SearchState int

const (
	// SearchIdle: nothing typed yet.
	SearchIdle SearchState = iota
	// SearchPending: keystroke seen, debounce timer running.
	SearchPending
	// SearchLoading: request in flight.
	SearchLoading
	// SearchSuccess: results (possibly empty) on screen.
	SearchSuccess
	// SearchFailed: last request failed.
	SearchFailed
)

// debounceDelay is how long the query must be quiet before a request goes
// out.
const debounceDelay = 500 * time.Millisecond

// Searcher is the slice of the aggregation client the search view uses.
type Searcher interface {
	Search(ctx context.Context, query string) ([]openlibrary.Book, error)
}

// debounceMsg fires when a debounce timer elapses. Every keystroke bumps
// the model's sequence counter, so a timer started for an older sequence is
// dead on arrival — at most one timer is ever honored.
type debounceMsg struct {
	seq int
}

// searchResultsMsg carries a completed search, tagged with the query it was
// issued for. Issued requests are never canceled, so a response for a
// superseded query can still arrive; the tag lets the model discard it
// instead of flashing stale results.
type searchResultsMsg struct {
	query string
	books []openlibrary.Book
}

type searchErrMsg struct {
	query string
	err   error
}

// SearchModel is the interactive search view: a text input driving a
// debounced, supersedable pipeline of search calls.
type SearchModel struct {
	client Searcher

	input   textinput.Model
	spinner spinner.Model

	state  SearchState
	seq    int    // identifies the live debounce timer
	query  string // query text the model last acted on
	books  []openlibrary.Book
	cursor int
	errMsg string

	width  int
	height int
}

// NewSearch creates the search view.
func NewSearch(client Searcher) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search by title, author, subject…"
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleHelp

	return SearchModel{
		client:  client,
		input:   ti,
		spinner: sp,
		state:   SearchIdle,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// State exposes the pipeline phase (the app router shows contextual help).
func (m SearchModel) State() SearchState { return m.state }

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		return m, nil

	case spinner.TickMsg:
		if m.state != SearchLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case debounceMsg:
		// Superseded timers fire into the void.
		if msg.seq != m.seq || m.state != SearchPending {
			return m, nil
		}
		m.state = SearchLoading
		return m, tea.Batch(m.spinner.Tick, searchCmd(m.client, m.query))

	case searchResultsMsg:
		if msg.query != m.query {
			return m, nil // stale response for a superseded query
		}
		m.state = SearchSuccess
		m.books = msg.books
		m.cursor = 0
		m.errMsg = ""
		return m, nil

	case searchErrMsg:
		if msg.query != m.query {
			return m, nil
		}
		m.state = SearchFailed
		m.errMsg = msg.err.Error()
		m.books = nil
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.books)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.state == SearchSuccess && len(m.books) > 0 {
				book := m.books[m.cursor]
				return m, func() tea.Msg { return BookSelectedMsg{Book: book} }
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, tea.Batch(cmd, m.queryChanged())
	}

	return m, nil
}

// queryChanged reacts to edits of the input text: it invalidates any
// outstanding debounce timer and either short-circuits (blank query) or
// starts a fresh timer.
func (m *SearchModel) queryChanged() tea.Cmd {
	q := m.input.Value()
	if q == m.query {
		return nil
	}
	m.query = q
	m.seq++

	if strings.TrimSpace(q) == "" {
		// Blank queries never reach the network.
		m.state = SearchSuccess
		m.books = nil
		m.cursor = 0
		m.errMsg = ""
		return nil
	}

	m.state = SearchPending
	seq := m.seq
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func searchCmd(client Searcher, query string) tea.Cmd {
	return func() tea.Msg {
		books, err := client.Search(context.Background(), query)
		if err != nil {
			return searchErrMsg{query: query, err: err}
		}
		return searchResultsMsg{query: query, books: books}
	}
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state {
	case SearchIdle:
		b.WriteString(StyleHelp.Render("Start typing to search Open Library."))
	case SearchPending:
		b.WriteString(StyleHelp.Render("…"))
	case SearchLoading:
		b.WriteString(m.spinner.View() + StyleHelp.Render(" searching"))
	case SearchFailed:
		b.WriteString(StyleError.Render(m.errMsg))
	case SearchSuccess:
		if len(m.books) == 0 {
			if strings.TrimSpace(m.query) != "" {
				b.WriteString(StyleHelp.Render("No books found."))
			}
			break
		}
		width := m.width
		if width <= 0 {
			width = 80
		}
		for i, book := range m.books {
			b.WriteString(renderBookRow(book, width, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render(fmt.Sprintf("%d result(s)", len(m.books))))
	}

	return b.String()
}
