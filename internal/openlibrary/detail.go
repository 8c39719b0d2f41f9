package openlibrary

import (
	"context"
	"net/url"

	"github.com/blackwell-systems/openshelf/internal/sanitize"
)

// Detail fetches one work as a fully merged BookDetail.
//
// Two calls go out concurrently and both must succeed: the work endpoint
// (sole source of the description) and a search scoped to the work id (sole
// source of aggregate rating and subject data). Base fields come from the
// first search document when one exists, otherwise from a stub built from
// the id alone, so the merged record keeps a stable identifier either way.
//
// A third, sequential call enriches the author bio. That one is
// best-effort: if it fails, the sentinel bio stays and Detail still
// succeeds.
func (c *Client) Detail(ctx context.Context, id string) (BookDetail, error) {
	type workReply struct {
		work workPayload
		err  error
	}
	type searchReply struct {
		docs []Doc
		err  error
	}

	workCh := make(chan workReply, 1)
	searchCh := make(chan searchReply, 1)

	go func() {
		var w workPayload
		err := c.getJSON(ctx, c.workURL(id), &w)
		workCh <- workReply{work: w, err: err}
	}()
	go func() {
		params := url.Values{
			"q":      {id},
			"fields": {detailFields},
		}
		var res searchResponse
		err := c.getJSON(ctx, c.searchURL(params), &res)
		searchCh <- searchReply{docs: res.Docs, err: err}
	}()

	// Join on both required calls before merging anything.
	wr := <-workCh
	sr := <-searchCh
	if wr.err != nil {
		return BookDetail{}, fetchFailed("detail", msgDetailFailed, wr.err)
	}
	if sr.err != nil {
		return BookDetail{}, fetchFailed("detail", msgDetailFailed, sr.err)
	}

	doc := Doc{Key: "/works/" + id}
	if len(sr.docs) > 0 {
		doc = sr.docs[0]
	}

	detail := BookDetail{
		Book:        c.normalize(doc),
		Description: sanitize.Clean(wr.work.Description.Or(NoDescription)),
		AuthorBio:   NoAuthorBio,
	}

	if key := wr.work.authorKey(); key != "" {
		var author authorPayload
		if err := c.getJSON(ctx, c.apiBase+key+".json", &author); err == nil {
			detail.AuthorBio = sanitize.Clean(author.Bio.Or(NoAuthorBio))
		}
		// Bio failures are swallowed: enrichment, not a required field.
	}

	return detail, nil
}
