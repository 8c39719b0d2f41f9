package tui

import "github.com/blackwell-systems/openshelf/internal/openlibrary"

// BookSelectedMsg is emitted when the user opens a book from any list view.
type BookSelectedMsg struct {
	Book openlibrary.Book
}

// BackMsg returns from the detail view to the view that opened it.
type BackMsg struct{}

// QuitAppMsg ends the whole program.
type QuitAppMsg struct{}
