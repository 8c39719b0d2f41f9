package openlibrary

import (
	"encoding/json"
	"strings"
)

// searchResponse is the envelope of the /search.json endpoint.
type searchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

// Doc is one raw search document. Everything past Key is optional; the
// normalizer supplies sentinels for whatever is missing.
//
// RatingsAverage is a pointer because "no rating data" and "rated 0.0" are
// different upstream states and must stay distinguishable.
type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear Year     `json:"first_publish_year"`
	CoverID          int      `json:"cover_i"`
	RatingsAverage   *float64 `json:"ratings_average"`
	RatingsCount     int      `json:"ratings_count"`
	Subject          []string `json:"subject"`
	EditionCount     int      `json:"edition_count"`
}

// Year tolerates both shapes the search endpoint uses for
// first_publish_year: a bare number or an array of numbers, in which case
// the first element wins.
type Year struct {
	value int
	ok    bool
}

// YearOf builds a present Year. Used by callers assembling docs by hand.
func YearOf(n int) Year {
	return Year{value: n, ok: true}
}

func (y *Year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		y.value, y.ok = n, true
		return nil
	}
	var arr []int
	if err := json.Unmarshal(data, &arr); err == nil && len(arr) > 0 {
		y.value, y.ok = arr[0], true
		return nil
	}
	// Unrecognized shapes degrade to the sentinel rather than failing the
	// whole document.
	return nil
}

// Text is a free-text field that arrives either as a plain JSON string or
// wrapped as {"value": "..."}. Both the work description and the author bio
// use this dual shape.
type Text struct {
	value string
	ok    bool
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.value, t.ok = s, true
		return nil
	}
	var wrapped struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		t.value, t.ok = wrapped.Value, wrapped.Value != ""
		return nil
	}
	return nil
}

// Or resolves the union into one string, falling back when the field was
// absent or blank.
func (t Text) Or(fallback string) string {
	if t.ok && strings.TrimSpace(t.value) != "" {
		return t.value
	}
	return fallback
}

// workPayload is the subset of the work-detail endpoint we consume. It has
// no aggregate rating data; that only exists on the search endpoint.
type workPayload struct {
	Description Text         `json:"description"`
	Authors     []authorLink `json:"authors"`
}

// authorKey returns the primary author's key ("/authors/OL23919A"), or ""
// when the work has none.
func (w workPayload) authorKey() string {
	if len(w.Authors) == 0 {
		return ""
	}
	return w.Authors[0].Author.Key
}

type authorLink struct {
	Author struct {
		Key string `json:"key"`
	} `json:"author"`
}

// authorPayload is the subset of the author endpoint we consume.
type authorPayload struct {
	Bio Text `json:"bio"`
}
