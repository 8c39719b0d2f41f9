package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
)

// recordingSearcher counts Search calls instead of hitting the network.
type recordingSearcher struct {
	queries []string
	books   []openlibrary.Book
	err     error
}

func (r *recordingSearcher) Search(_ context.Context, query string) ([]openlibrary.Book, error) {
	r.queries = append(r.queries, query)
	return r.books, r.err
}

func press(m SearchModel, r rune) (SearchModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// drain runs a command tree to completion and returns every message it
// produces. Timer commands are never passed here, so this returns
// immediately.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestSearchDebounceCollapsesKeystrokes(t *testing.T) {
	searcher := &recordingSearcher{books: []openlibrary.Book{{ID: "OL1W", Title: "Dune"}}}
	m := NewSearch(searcher)

	m, _ = press(m, 'a')
	staleSeq := m.seq
	m, _ = press(m, 'b')
	m, _ = press(m, 'c')

	if m.state != SearchPending {
		t.Fatalf("state after typing = %v, want SearchPending", m.state)
	}
	if m.query != "abc" {
		t.Fatalf("query = %q, want %q", m.query, "abc")
	}

	// Timers from the first two keystrokes fire with dead sequence numbers.
	m, cmd := m.Update(debounceMsg{seq: staleSeq})
	if cmd != nil || m.state != SearchPending {
		t.Fatalf("stale timer acted: state=%v cmd=%v", m.state, cmd)
	}
	if len(searcher.queries) != 0 {
		t.Fatalf("search issued before live timer fired: %v", searcher.queries)
	}

	m, cmd = m.Update(debounceMsg{seq: m.seq})
	if m.state != SearchLoading {
		t.Fatalf("state after live timer = %v, want SearchLoading", m.state)
	}

	var results *searchResultsMsg
	for _, msg := range drain(cmd) {
		if r, ok := msg.(searchResultsMsg); ok {
			results = &r
		}
	}
	if results == nil {
		t.Fatal("live timer produced no search results")
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "abc" {
		t.Fatalf("queries = %v, want exactly [abc]", searcher.queries)
	}

	m, _ = m.Update(*results)
	if m.state != SearchSuccess {
		t.Fatalf("state after results = %v, want SearchSuccess", m.state)
	}
	if len(m.books) != 1 || m.books[0].Title != "Dune" {
		t.Fatalf("books = %+v", m.books)
	}
}

func TestSearchBlankQueryNeverHitsNetwork(t *testing.T) {
	searcher := &recordingSearcher{}
	m := NewSearch(searcher)

	m, _ = press(m, ' ')
	if m.state != SearchSuccess {
		t.Fatalf("state = %v, want SearchSuccess", m.state)
	}
	if len(m.books) != 0 {
		t.Fatalf("books = %+v, want none", m.books)
	}

	// Even a timer firing for the current sequence must not search.
	m, cmd := m.Update(debounceMsg{seq: m.seq})
	drain(cmd)
	if len(searcher.queries) != 0 {
		t.Fatalf("blank query reached the network: %v", searcher.queries)
	}
	_ = m
}

func TestSearchClearingQueryResetsResults(t *testing.T) {
	searcher := &recordingSearcher{books: []openlibrary.Book{{ID: "OL1W"}}}
	m := NewSearch(searcher)

	m, _ = press(m, 'a')
	m, cmd := m.Update(debounceMsg{seq: m.seq})
	for _, msg := range drain(cmd) {
		if r, ok := msg.(searchResultsMsg); ok {
			m, _ = m.Update(r)
		}
	}
	if len(m.books) != 1 {
		t.Fatalf("setup: books = %+v", m.books)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.state != SearchSuccess || len(m.books) != 0 {
		t.Fatalf("after clearing: state=%v books=%+v", m.state, m.books)
	}
}

func TestSearchStaleResultsDiscarded(t *testing.T) {
	searcher := &recordingSearcher{}
	m := NewSearch(searcher)

	m, _ = press(m, 'a')
	m, _ = press(m, 'b')

	// A response for the superseded "a" arrives after "ab" was typed.
	m, _ = m.Update(searchResultsMsg{query: "a", books: []openlibrary.Book{{ID: "OLSTALE"}}})
	if m.state != SearchPending {
		t.Fatalf("stale results changed state to %v", m.state)
	}
	if len(m.books) != 0 {
		t.Fatalf("stale results were kept: %+v", m.books)
	}

	m, _ = m.Update(searchResultsMsg{query: "ab", books: []openlibrary.Book{{ID: "OL2W"}}})
	if m.state != SearchSuccess || len(m.books) != 1 || m.books[0].ID != "OL2W" {
		t.Fatalf("live results not applied: state=%v books=%+v", m.state, m.books)
	}
}

func TestSearchErrorSetsFailed(t *testing.T) {
	searcher := &recordingSearcher{err: errors.New("Failed to search books. Please check your connection")}
	m := NewSearch(searcher)

	m, _ = press(m, 'a')
	m, cmd := m.Update(debounceMsg{seq: m.seq})
	for _, msg := range drain(cmd) {
		if e, ok := msg.(searchErrMsg); ok {
			m, _ = m.Update(e)
		}
	}
	if m.state != SearchFailed {
		t.Fatalf("state = %v, want SearchFailed", m.state)
	}
	if m.errMsg == "" {
		t.Fatal("errMsg empty after failure")
	}

	// A stale error for an old query must not disturb a newer one.
	m, _ = press(m, 'b')
	m, _ = m.Update(searchErrMsg{query: "a", err: errors.New("late failure")})
	if m.state != SearchPending {
		t.Fatalf("stale error changed state to %v", m.state)
	}
}
