package openlibrary

// Fixed user-facing messages, one per operation. The raw transport error is
// wrapped underneath, never shown directly.
const (
	msgSearchFailed   = "Failed to search books. Please check your connection"
	msgFeaturedFailed = "Failed to fetch featured books. Please check your connection"
	msgDetailFailed   = "Failed to fetch book details."
)

// FetchError is returned when a required remote call fails for any reason:
// network error, non-200 status, or a malformed payload. Error() is the
// user-facing message; the cause is available through Unwrap.
type FetchError struct {
	Op      string // "search", "featured", or "detail"
	Message string
	cause   error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.cause }

func fetchFailed(op, message string, cause error) error {
	return &FetchError{Op: op, Message: message, cause: cause}
}
