package openlibrary_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
)

// newTestClient points a Client at the given test server with rate limiting
// effectively disabled. The client is closed when the test ends.
func newTestClient(t *testing.T, srv *httptest.Server) *openlibrary.Client {
	t.Helper()
	c := openlibrary.New(openlibrary.Options{
		APIBase: srv.URL,
		Timeout: 5 * time.Second,
		RPS:     1000,
		Burst:   1000,
	})
	t.Cleanup(c.Close)
	return c
}

const searchBody = `{
	"numFound": 2,
	"docs": [
		{
			"key": "/works/OL1W",
			"title": "The Hobbit",
			"author_name": ["J. R. R. Tolkien"],
			"first_publish_year": 1937,
			"cover_i": 111,
			"ratings_average": 4.27,
			"ratings_count": 1200,
			"subject": ["Fantasy", "Dragons"]
		},
		{
			"key": "/works/OL2W",
			"title": "Coverless",
			"ratings_count": 150
		}
	]
}`

func TestSearch_NormalizesDocs(t *testing.T) {
	var gotQuery, gotLimit, gotFields string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotFields = r.URL.Query().Get("fields")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	books, err := newTestClient(t, srv).Search(context.Background(), "the hobbit")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "the hobbit" {
		t.Errorf("q = %q, want the verbatim query", gotQuery)
	}
	if gotLimit != "20" {
		t.Errorf("limit = %q, want 20", gotLimit)
	}
	if !strings.Contains(gotFields, "ratings_average") {
		t.Errorf("fields = %q, missing ratings_average", gotFields)
	}

	if len(books) != 2 {
		t.Fatalf("len(books) = %d, want 2", len(books))
	}
	if books[0].ID != "OL1W" || books[0].Rating != 4.3 {
		t.Errorf("books[0] = %+v", books[0])
	}
	// Second doc: no average, 150 reviews — synthesized rating, placeholder
	// cover.
	if books[1].Rating != 3.5 {
		t.Errorf("books[1].Rating = %v, want 3.5", books[1].Rating)
	}
	if books[1].CoverURL != openlibrary.DefaultPlaceholderCover {
		t.Errorf("books[1].CoverURL = %q", books[1].CoverURL)
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Search(context.Background(), "x")
	var fe *openlibrary.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.Op != "search" {
		t.Errorf("Op = %q", fe.Op)
	}
	if !strings.Contains(fe.Message, "check your connection") {
		t.Errorf("Message = %q", fe.Message)
	}
}

func TestSearch_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Search(context.Background(), "x")
	var fe *openlibrary.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
}

func TestSearch_ResponseCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), "same query"); err != nil {
			t.Fatalf("Search #%d: %v", i, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (cached)", hits.Load())
	}
}

func TestFeatured_FiltersCoverless(t *testing.T) {
	var gotSort string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSort = r.URL.Query().Get("sort")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	books, err := newTestClient(t, srv).Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if gotSort != "rating" {
		t.Errorf("sort = %q, want rating", gotSort)
	}
	if len(books) != 1 {
		t.Fatalf("len(books) = %d, want 1 (coverless doc dropped)", len(books))
	}
	if books[0].ID != "OL1W" {
		t.Errorf("books[0].ID = %q", books[0].ID)
	}
}

// detailHandler serves a coherent work + search + author trio.
func detailHandler(t *testing.T, authorStatus int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/works/"):
			_, _ = w.Write([]byte(`{
				"description": {"type": "/type/text", "value": "A hole in the ground. **Epic** stuff[1]."},
				"authors": [{"author": {"key": "/authors/OL26A"}}]
			}`))
		case strings.HasPrefix(r.URL.Path, "/authors/"):
			if authorStatus != http.StatusOK {
				http.Error(w, "nope", authorStatus)
				return
			}
			_, _ = w.Write([]byte(`{"bio": "Philologist and novelist."}`))
		case r.URL.Path == "/search.json":
			_, _ = w.Write([]byte(searchBody))
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func TestDetail_MergesAllThreeCalls(t *testing.T) {
	srv := httptest.NewServer(detailHandler(t, http.StatusOK))
	defer srv.Close()

	detail, err := newTestClient(t, srv).Detail(context.Background(), "OL1W")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}

	// Base fields come from the first search doc.
	if detail.ID != "OL1W" || detail.Title != "The Hobbit" {
		t.Errorf("base book = %+v", detail.Book)
	}
	if detail.Rating != 4.3 || detail.ReviewCount != 1200 {
		t.Errorf("aggregate fields = rating %v, reviews %d", detail.Rating, detail.ReviewCount)
	}
	// Description comes from the work payload, sanitized.
	if strings.Contains(detail.Description, "**") || strings.Contains(detail.Description, "[1]") {
		t.Errorf("Description not sanitized: %q", detail.Description)
	}
	if !strings.Contains(detail.Description, "A hole in the ground") {
		t.Errorf("Description = %q", detail.Description)
	}
	if detail.AuthorBio != "Philologist and novelist." {
		t.Errorf("AuthorBio = %q", detail.AuthorBio)
	}
}

func TestDetail_BioFailureSwallowed(t *testing.T) {
	srv := httptest.NewServer(detailHandler(t, http.StatusInternalServerError))
	defer srv.Close()

	detail, err := newTestClient(t, srv).Detail(context.Background(), "OL1W")
	if err != nil {
		t.Fatalf("Detail should succeed without the bio: %v", err)
	}
	if detail.AuthorBio != openlibrary.NoAuthorBio {
		t.Errorf("AuthorBio = %q, want sentinel", detail.AuthorBio)
	}
	if detail.Title != "The Hobbit" {
		t.Errorf("Title = %q", detail.Title)
	}
}

func TestDetail_WorkFailureFailsWhole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/works/") {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Detail(context.Background(), "OL1W")
	var fe *openlibrary.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.Op != "detail" {
		t.Errorf("Op = %q", fe.Op)
	}
}

func TestDetail_EmptySearchUsesStub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/works/"):
			_, _ = w.Write([]byte(`{"description": "Plain text description."}`))
		default:
			_, _ = w.Write([]byte(`{"numFound": 0, "docs": []}`))
		}
	}))
	defer srv.Close()

	detail, err := newTestClient(t, srv).Detail(context.Background(), "OL99W")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.ID != "OL99W" {
		t.Errorf("ID = %q, want stub id", detail.ID)
	}
	if detail.Title != openlibrary.UnknownTitle {
		t.Errorf("Title = %q, want sentinel", detail.Title)
	}
	if detail.Description != "Plain text description." {
		t.Errorf("Description = %q", detail.Description)
	}
	if detail.AuthorBio != openlibrary.NoAuthorBio {
		t.Errorf("AuthorBio = %q, want sentinel", detail.AuthorBio)
	}
}
