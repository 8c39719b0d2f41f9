package openlibrary

// Book is the canonical search-result shape. Every field is always
// populated: missing upstream data resolves to the sentinel defaults below,
// so consumers never null-check.
type Book struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Author      string   `json:"author" yaml:"author"`
	Year        string   `json:"year" yaml:"year"`
	CoverURL    string   `json:"cover_url" yaml:"cover_url"`
	Rating      float64  `json:"rating" yaml:"rating"`
	ReviewCount int      `json:"review_count" yaml:"review_count"`
	Subjects    []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`
}

// BookDetail is a Book enriched with the long-form fields only the work and
// author endpoints carry. Both strings are already sanitized.
type BookDetail struct {
	Book
	Description string `json:"description"`
	AuthorBio   string `json:"author_bio"`
}

// Sentinel values substituted for missing upstream data.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	UnknownYear   = "Unknown"

	NoDescription = "No description available."
	NoAuthorBio   = "No author information available."
)
