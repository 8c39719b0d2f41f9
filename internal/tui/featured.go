package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
)

// FeaturedFetcher is the slice of the aggregation client the dashboard
// uses.
type FeaturedFetcher interface {
	Featured(ctx context.Context) ([]openlibrary.Book, error)
}

type featuredLoadedMsg struct {
	books []openlibrary.Book
}

type featuredErrMsg struct {
	err error
}

// FeaturedModel is the dashboard view: a fixed editorial selection loaded
// once when the view first appears.
type FeaturedModel struct {
	client FeaturedFetcher

	spinner spinner.Model
	loading bool
	loaded  bool
	errMsg  string
	books   []openlibrary.Book
	cursor  int

	width  int
	height int
}

// NewFeatured creates the dashboard view.
func NewFeatured(client FeaturedFetcher) FeaturedModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleHelp
	return FeaturedModel{client: client, spinner: sp}
}

func (m FeaturedModel) Init() tea.Cmd {
	if m.loaded {
		return nil
	}
	return tea.Batch(m.spinner.Tick, featuredCmd(m.client))
}

func featuredCmd(client FeaturedFetcher) tea.Cmd {
	return func() tea.Msg {
		books, err := client.Featured(context.Background())
		if err != nil {
			return featuredErrMsg{err: err}
		}
		return featuredLoadedMsg{books: books}
	}
}

func (m FeaturedModel) Update(msg tea.Msg) (FeaturedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.loaded || m.errMsg != "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case featuredLoadedMsg:
		m.loaded = true
		m.books = msg.books
		m.cursor = 0
		return m, nil

	case featuredErrMsg:
		m.errMsg = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.books)-1 {
				m.cursor++
			}
		case "enter":
			if m.loaded && len(m.books) > 0 {
				book := m.books[m.cursor]
				return m, func() tea.Msg { return BookSelectedMsg{Book: book} }
			}
		}
		return m, nil
	}

	return m, nil
}

func (m FeaturedModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Featured"))
	b.WriteString("\n\n")

	switch {
	case m.errMsg != "":
		b.WriteString(StyleError.Render(m.errMsg))
	case !m.loaded:
		b.WriteString(m.spinner.View() + StyleHelp.Render(" loading featured books"))
	case len(m.books) == 0:
		b.WriteString(StyleHelp.Render("Nothing featured right now."))
	default:
		width := m.width
		if width <= 0 {
			width = 80
		}
		for i, book := range m.books {
			b.WriteString(renderBookRow(book, width, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render(fmt.Sprintf("%d book(s)", len(m.books))))
	}

	return b.String()
}
