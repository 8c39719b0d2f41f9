package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/openshelf/internal/openlibrary"
)

func newSearchCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Open Library by title, author, or subject",
		Long: `Search the Open Library catalog. The query is passed through as
typed — Open Library's own relevance ranking decides the order.

Examples:
  openshelf search "le guin"
  openshelf search dune --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			books, err := client.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(books)
			}

			if len(books) == 0 {
				fmt.Println("No books found.")
				return nil
			}

			header("── results for %q  (%d)", query, len(books))
			printBookRows(books)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// printBookRows renders a book list in the fixed-width text layout shared
// by search and featured output.
func printBookRows(books []openlibrary.Book) {
	for _, b := range books {
		rating := "unrated"
		if b.Rating > 0 {
			rating = fmt.Sprintf("%.1f★", b.Rating)
		}
		fmt.Printf("  %-12s  %-44s  %-24s  %-6s  %s\n",
			color.WhiteString(b.ID),
			truncate(b.Title, 44),
			truncate(b.Author, 24),
			b.Year,
			color.YellowString(rating),
		)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
