package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
	"github.com/blackwell-systems/openshelf/internal/readlist"
)

// DetailFetcher is the slice of the aggregation client the detail view
// uses.
type DetailFetcher interface {
	Detail(ctx context.Context, id string) (openlibrary.BookDetail, error)
}

type detailLoadedMsg struct {
	id     string
	detail openlibrary.BookDetail
}

type detailErrMsg struct {
	id  string
	err error
}

type markedMsg struct {
	status readlist.AddStatus
	err    error
}

// DetailModel shows one merged BookDetail and lets the user mark it read.
type DetailModel struct {
	client DetailFetcher
	store  *readlist.Store

	book     openlibrary.Book // list-row data shown while loading
	detail   openlibrary.BookDetail
	loaded   bool
	errMsg   string
	feedback string

	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

// NewDetail creates a detail view for the given list entry.
func NewDetail(client DetailFetcher, store *readlist.Store, book openlibrary.Book) DetailModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleHelp
	return DetailModel{
		client:  client,
		store:   store,
		book:    book,
		spinner: sp,
	}
}

func (m DetailModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, detailCmd(m.client, m.book.ID))
}

func detailCmd(client DetailFetcher, id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := client.Detail(context.Background(), id)
		if err != nil {
			return detailErrMsg{id: id, err: err}
		}
		return detailLoadedMsg{id: id, detail: detail}
	}
}

func (m DetailModel) markCmd() tea.Cmd {
	entry := readlist.Entry{
		ID:       m.detail.ID,
		Title:    m.detail.Title,
		Author:   m.detail.Author,
		CoverURL: m.detail.CoverURL,
		ReadAt:   time.Now().UTC(),
	}
	store := m.store
	return func() tea.Msg {
		status, err := store.Add(entry)
		return markedMsg{status: status, err: err}
	}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-4, msg.Height-10)
		if m.loaded {
			m.viewport.SetContent(m.renderBody())
		}
		return m, nil

	case spinner.TickMsg:
		if m.loaded || m.errMsg != "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case detailLoadedMsg:
		if msg.id != m.book.ID {
			return m, nil // detail for a book we already navigated away from
		}
		m.loaded = true
		m.detail = msg.detail
		if m.viewport.Width > 0 {
			m.viewport.SetContent(m.renderBody())
		}
		return m, nil

	case detailErrMsg:
		if msg.id != m.book.ID {
			return m, nil
		}
		m.errMsg = msg.err.Error()
		return m, nil

	case markedMsg:
		switch {
		case msg.err != nil:
			m.feedback = StyleError.Render("Could not save. Please try again.")
		case msg.status == readlist.AlreadyPresent:
			m.feedback = StyleHelp.Render("Already in your read list.")
		default:
			m.feedback = StyleSuccess.Render("✓ Added to your read list.")
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return BackMsg{} }
		case "r":
			if m.loaded {
				return m, m.markCmd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// renderBody lays out the long-form fields for the viewport.
func (m DetailModel) renderBody() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 76
	}

	var b strings.Builder
	b.WriteString(StyleSubject.Render(strings.Join(m.detail.Subjects, " · ")))
	b.WriteString("\n\n")
	b.WriteString(StyleHeader.Render("Description"))
	b.WriteString("\n")
	b.WriteString(xansi.Wordwrap(m.detail.Description, width, " "))
	b.WriteString("\n\n")
	b.WriteString(StyleHeader.Render("About the author"))
	b.WriteString("\n")
	b.WriteString(xansi.Wordwrap(m.detail.AuthorBio, width, " "))
	return b.String()
}

func (m DetailModel) View() string {
	var b strings.Builder

	title := m.book.Title
	author := m.book.Author
	year := m.book.Year
	rating := m.book.Rating
	reviews := m.book.ReviewCount
	if m.loaded {
		title = m.detail.Title
		author = m.detail.Author
		year = m.detail.Year
		rating = m.detail.Rating
		reviews = m.detail.ReviewCount
	}

	b.WriteString(StyleHeader.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleNormal.Render("by " + author))
	b.WriteString(StyleHelp.Render("  · " + year))
	b.WriteString("\n")
	b.WriteString(StyleRating.Render(stars(rating)))
	if reviews > 0 {
		b.WriteString(StyleHelp.Render(ratingsSuffix(reviews)))
	}
	b.WriteString("\n\n")

	switch {
	case m.errMsg != "":
		b.WriteString(StyleError.Render(m.errMsg))
	case !m.loaded:
		b.WriteString(m.spinner.View() + StyleHelp.Render(" loading book details"))
	default:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n\n")
	if m.feedback != "" {
		b.WriteString(m.feedback)
		b.WriteString("\n")
	}
	b.WriteString(StyleHelp.Render("r mark read · esc back"))
	return b.String()
}

func ratingsSuffix(count int) string {
	if count == 1 {
		return "  (1 rating)"
	}
	return "  (" + humanCount(count) + " ratings)"
}

// humanCount renders 1234 as "1,234".
func humanCount(n int) string {
	s := []byte(nil)
	digits := []byte(nil)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	if len(digits) == 0 {
		digits = []byte{'0'}
	}
	for i := len(digits) - 1; i >= 0; i-- {
		s = append(s, digits[i])
		if i > 0 && i%3 == 0 {
			s = append(s, ',')
		}
	}
	return string(s)
}
