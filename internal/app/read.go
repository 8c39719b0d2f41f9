package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/openshelf/internal/readlist"
	"github.com/blackwell-systems/openshelf/internal/tui"
)

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Manage your read list",
		Long: `Manage the local list of books you have marked as read.

The list lives in a single YAML file (default:
~/.local/share/openshelf/readlist.yml) and is ordered most recently
read first.`,
	}

	cmd.AddCommand(
		newReadListCmd(),
		newReadAddCmd(),
		newReadRemoveCmd(),
		newReadClearCmd(),
	)
	return cmd
}

func newReadListCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List read books, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := store.List()
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Println("No books read yet.")
				return nil
			}

			header("── read list  (%d)", len(entries))
			for _, e := range entries {
				fmt.Printf("  %-12s  %-44s  %-24s  %s\n",
					e.ID,
					truncate(e.Title, 44),
					truncate(e.Author, 24),
					e.ReadAt.Local().Format("Jan 2, 2006"),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newReadAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Mark a work as read",
		Long: `Mark a work as read by its Open Library id. The title and author
are fetched from the catalog so the list entry is self-contained.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := client.Detail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			status, err := store.Add(readlist.Entry{
				ID:       detail.ID,
				Title:    detail.Title,
				Author:   detail.Author,
				CoverURL: detail.CoverURL,
				ReadAt:   time.Now().UTC(),
			})
			if err != nil {
				return err
			}
			if status == readlist.AlreadyPresent {
				warn("%q is already in your read list", detail.Title)
				return nil
			}
			ok("Marked %q as read", detail.Title)
			return nil
		},
	}
}

func newReadRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a book from the read list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			ok("Removed %s from your read list", args[0])
			return nil
		},
	}
}

func newReadClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every book from the read list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := store.Len()
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("Read list is already empty.")
				return nil
			}

			if !yes {
				if !tui.IsTTY() {
					return fmt.Errorf("refusing to clear %d entries without --yes", n)
				}
				fmt.Printf("Remove all %d entries from your read list? (y/n): ", n)
				var response string
				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" && response != "yes" {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := store.Clear(); err != nil {
				return err
			}
			ok("Read list cleared (%d entries removed)", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation prompt")
	return cmd
}
