package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newFeaturedCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show the featured book selection",
		Long: `Show the fixed editorial selection that seeds the interactive
browser's dashboard: highly rated classics, best first, covers only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := client.Featured(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(books)
			}

			if len(books) == 0 {
				fmt.Println("Nothing featured right now.")
				return nil
			}

			header("── featured  (%d)", len(books))
			printBookRows(books)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
