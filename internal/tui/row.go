package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
)

// Column width constraints for book rows.
const (
	minTitleWidth  = 12
	maxTitleWidth  = 48
	minAuthorWidth = 8
	maxAuthorWidth = 30
	yearWidth      = 7
	ratingWidth    = 9
	columnGap      = 1
)

// padOrTruncate pads s to exactly width visible chars, truncating with "…"
// if necessary. Rune count, not byte length, so multi-byte titles align.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	n := len(runes)
	if n > width {
		if width <= 1 {
			return "…"
		}
		return string(runes[:width-1]) + "…"
	}
	if n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// stars renders a 0–5 rating as filled and hollow stars, with the numeric
// value appended. A zero rating means "no rating data" and renders as a
// quiet placeholder instead.
func stars(rating float64) string {
	if rating == 0 {
		return "unrated"
	}
	full := int(rating + 0.5)
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + fmt.Sprintf(" %.1f", rating)
}

// bookColumnWidths distributes available width between the title and author
// columns; year and rating are fixed.
func bookColumnWidths(totalWidth int) (titleW, authorW int) {
	prefix := 2
	gaps := columnGap * 3
	usable := totalWidth - prefix - gaps - yearWidth - ratingWidth
	if usable < minTitleWidth+minAuthorWidth {
		return minTitleWidth, minAuthorWidth
	}
	titleW = usable * 60 / 100
	if titleW > maxTitleWidth {
		titleW = maxTitleWidth
	}
	authorW = usable - titleW
	if authorW > maxAuthorWidth {
		authorW = maxAuthorWidth
	}
	if titleW < minTitleWidth {
		titleW = minTitleWidth
	}
	if authorW < minAuthorWidth {
		authorW = minAuthorWidth
	}
	return titleW, authorW
}

// renderBookRow renders one search or featured result line.
func renderBookRow(b openlibrary.Book, width int, selected bool) string {
	titleW, authorW := bookColumnWidths(width)
	gap := strings.Repeat(" ", columnGap)

	titleCol := padOrTruncate(b.Title, titleW)
	authorCol := padOrTruncate(b.Author, authorW)
	yearCol := padOrTruncate(b.Year, yearWidth)
	ratingCol := padOrTruncate(stars(b.Rating), ratingWidth+6)

	if selected {
		prefix := StyleHighlight.Render("›") + " "
		return prefix +
			StyleHighlight.Render(titleCol) + gap +
			StyleNormal.Render(authorCol) + gap +
			StyleHelp.Render(yearCol) + gap +
			StyleRating.Render(ratingCol)
	}
	return "  " +
		StyleNormal.Render(titleCol) + gap +
		StyleHelp.Render(authorCol) + gap +
		StyleHelp.Render(yearCol) + gap +
		StyleRating.Render(ratingCol)
}
