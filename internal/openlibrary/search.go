package openlibrary

import (
	"context"
	"net/url"
)

// Search runs one search call and normalizes every returned document. The
// query is passed through verbatim; tokenization is the server's business.
// Results are capped at the configured page size. Any failure surfaces as a
// *FetchError — never a partial list.
func (c *Client) Search(ctx context.Context, query string) ([]Book, error) {
	params := url.Values{
		"q":      {query},
		"limit":  {c.pageSizeParam()},
		"fields": {searchFields},
	}

	var res searchResponse
	if err := c.getJSON(ctx, c.searchURL(params), &res); err != nil {
		return nil, fetchFailed("search", msgSearchFailed, err)
	}

	books := make([]Book, 0, len(res.Docs))
	for _, doc := range res.Docs {
		books = append(books, c.normalize(doc))
	}
	return books, nil
}

// Featured fetches the editorial dashboard selection: a fixed query sorted
// by rating. Documents without a cover are dropped before normalizing — a
// wall of placeholder covers is a curation failure, not a data one.
func (c *Client) Featured(ctx context.Context) ([]Book, error) {
	params := url.Values{
		"q":      {c.featuredQuery},
		"limit":  {c.pageSizeParam()},
		"sort":   {"rating"},
		"fields": {featuredFields},
	}

	var res searchResponse
	if err := c.getJSON(ctx, c.searchURL(params), &res); err != nil {
		return nil, fetchFailed("featured", msgFeaturedFailed, err)
	}

	books := make([]Book, 0, len(res.Docs))
	for _, doc := range res.Docs {
		if doc.CoverID == 0 {
			continue
		}
		books = append(books, c.normalize(doc))
	}
	return books, nil
}
