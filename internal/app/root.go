package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/openshelf/internal/config"
	"github.com/blackwell-systems/openshelf/internal/openlibrary"
	"github.com/blackwell-systems/openshelf/internal/readlist"
	"github.com/blackwell-systems/openshelf/internal/tui"
)

var (
	cfg    *config.Config
	client *openlibrary.Client
	store  *readlist.Store

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "openshelf",
	Short: "Browse and track books from the Open Library catalog",
	Long: `openshelf searches the Open Library catalog, shows merged book
details, and keeps a local list of the books you have read.

Run 'openshelf' with no arguments to launch the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return tui.Run(client, store)
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/openshelf/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		tui.InitColor(flagNoColor)

		if flagConfig != "" {
			if err := os.Setenv("OPENSHELF_CONFIG", flagConfig); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client = openlibrary.New(openlibrary.Options{
			APIBase:          cfg.API.Base,
			CoversBase:       cfg.API.CoversBase,
			PlaceholderCover: cfg.API.PlaceholderCover,
			FeaturedQuery:    cfg.Featured.Query,
			PageSize:         cfg.API.PageSize,
			Timeout:          cfg.API.Timeout,
			CacheTTL:         cfg.API.CacheTTL,
			RPS:              cfg.API.RPS,
			Burst:            cfg.API.Burst,
		})

		path := cfg.ReadList.Path
		if path == "" {
			path = readlist.DefaultPath()
		}
		store = readlist.New(readlist.NewFileBlob(path))
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newSearchCmd(),
		newFeaturedCmd(),
		newShowCmd(),
		newReadCmd(),
		newBrowseCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", color.CyanString(label+":"), value)
}
