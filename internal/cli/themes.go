package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpwg/brixie/internal/models"
)

var (
	themesRefresh  bool
	themesPage     int
	themesPageSize int
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Browse LEGO themes",
	Long: `Browse LEGO themes from the local cache.

With --refresh, a page is fetched from Rebrickable first. Page 1 replaces
the whole cache; later pages are appended.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

var themesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search themes by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runThemesSearch,
}

func init() {
	themesCmd.Flags().BoolVarP(&themesRefresh, "refresh", "r", false, "fetch from Rebrickable before listing")
	themesCmd.Flags().IntVar(&themesPage, "page", 1, "page to fetch (with --refresh)")
	themesCmd.Flags().IntVar(&themesPageSize, "page-size", 0, "page size (with --refresh, defaults to config)")

	themesCmd.AddCommand(themesSearchCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pageSize := themesPageSize
	if pageSize <= 0 {
		pageSize = a.cfg.PageSize
	}

	var themes []models.Theme
	if themesRefresh {
		themes, err = a.themes.FetchThemes(cmd.Context(), themesPage, pageSize)
		if err != nil {
			return fmt.Errorf("refresh themes: %w", err)
		}
		if _, err := a.sets.BackfillThemeNames(); err != nil {
			fmt.Printf("warning: backfill theme names: %v\n", err)
		}
	} else {
		themes = a.themes.GetCachedThemes()
	}

	if len(themes) == 0 {
		fmt.Println("No themes cached yet.")
		fmt.Println("\nUse 'brixie themes --refresh' to fetch the catalog.")
		return nil
	}

	printThemes(themes)
	return nil
}

func runThemesSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	themes := a.themes.SearchThemes(cmd.Context(), query, 1, a.cfg.PageSize)
	if len(themes) == 0 {
		fmt.Printf("No themes matching %q.\n", query)
		return nil
	}

	printThemes(themes)
	return nil
}

func printThemes(themes []models.Theme) {
	fmt.Printf("THEMES (%d)\n", len(themes))
	fmt.Println("──────────────────────────────────────────────────")
	for _, theme := range themes {
		parent := ""
		if !theme.IsRoot() {
			parent = fmt.Sprintf(" (parent %d)", *theme.ParentID)
		}
		fmt.Printf("  %4d  %s%s\n", theme.ID, theme.Name, parent)
	}
}
