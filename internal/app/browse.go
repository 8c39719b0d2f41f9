package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/openshelf/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Launch the interactive browser",
		Long: `Launch the full-screen browser: incremental search, the featured
dashboard, book details, and your read list in one place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tui.IsTTY() {
				return fmt.Errorf("browse needs a terminal; use 'openshelf search' for scripted output")
			}
			return tui.Run(client, store)
		},
	}
}
