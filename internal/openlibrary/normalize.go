package openlibrary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxSubjects caps the subject list on a normalized Book. First five in
// upstream order; no dedup, no sort.
const maxSubjects = 5

// reviewFloor is the review count past which an unrated book gets the
// synthesized rating. Books with that many reviews and no average are
// almost always decent; the value is a heuristic, not a measurement.
const (
	reviewFloor       = 100
	synthesizedRating = 3.5
)

// Normalize maps one raw search document onto the canonical Book shape
// using the default cover hosts. It is total: any input, including the zero
// Doc, yields a fully populated Book.
func Normalize(doc Doc) Book {
	return normalize(doc, DefaultCoversBase, DefaultPlaceholderCover)
}

func normalize(doc Doc, coversBase, placeholder string) Book {
	b := Book{
		ID:          strings.TrimPrefix(doc.Key, "/works/"),
		Title:       doc.Title,
		Author:      strings.Join(doc.AuthorName, ", "),
		Year:        UnknownYear,
		CoverURL:    coverURL(doc.CoverID, coversBase, placeholder),
		ReviewCount: doc.RatingsCount,
	}
	if b.Title == "" {
		b.Title = UnknownTitle
	}
	if b.Author == "" {
		b.Author = UnknownAuthor
	}
	if doc.FirstPublishYear.ok {
		b.Year = strconv.Itoa(doc.FirstPublishYear.value)
	}
	if b.ReviewCount < 0 {
		b.ReviewCount = 0
	}

	// An explicit average always wins, rounded to one decimal. The
	// synthesized value only fills in when there is no average at all.
	switch {
	case doc.RatingsAverage != nil:
		b.Rating = math.Round(*doc.RatingsAverage*10) / 10
	case doc.RatingsCount > reviewFloor:
		b.Rating = synthesizedRating
	}

	if len(doc.Subject) > 0 {
		n := len(doc.Subject)
		if n > maxSubjects {
			n = maxSubjects
		}
		b.Subjects = append([]string(nil), doc.Subject[:n]...)
	}
	return b
}

// coverURL builds the medium cover image URL for a numeric cover id, or the
// placeholder when the document has no cover. Presence check only — the
// image is never fetched here.
func coverURL(coverID int, coversBase, placeholder string) string {
	if coverID == 0 {
		return placeholder
	}
	return fmt.Sprintf("%s/id/%d-M.jpg", coversBase, coverID)
}
