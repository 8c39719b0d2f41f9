package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show merged details for one work",
		Long: `Show the full record for a work id (e.g. OL45883W): catalog
fields, the cleaned description, and the author biography.

The description and biography come from different endpoints than the
catalog fields; show merges all of them into one record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := client.Detail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(detail)
			}

			header("Book: %s", detail.ID)
			printField("title", detail.Title)
			printField("author", detail.Author)
			printField("year", detail.Year)
			if detail.Rating > 0 {
				printField("rating", fmt.Sprintf("%.1f (%d ratings)", detail.Rating, detail.ReviewCount))
			}
			if len(detail.Subjects) > 0 {
				printField("subjects", strings.Join(detail.Subjects, ", "))
			}
			printField("cover", detail.CoverURL)

			fmt.Println()
			header("Description")
			fmt.Println(detail.Description)
			fmt.Println()
			header("About the author")
			fmt.Println(detail.AuthorBio)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
