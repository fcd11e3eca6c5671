package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpwg/brixie/internal/models"
)

var (
	setsRefresh  bool
	setsPage     int
	setsPageSize int
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Browse LEGO sets",
	Long: `Browse LEGO sets from the local cache.

With --refresh, a page is fetched from Rebrickable first. Page 1 replaces
the whole cache; later pages are appended. If Rebrickable is unreachable
the cached sets are shown instead.`,
	Args: cobra.NoArgs,
	RunE: runSets,
}

func init() {
	setsCmd.Flags().BoolVarP(&setsRefresh, "refresh", "r", false, "fetch from Rebrickable before listing")
	setsCmd.Flags().IntVar(&setsPage, "page", 1, "page to fetch (with --refresh)")
	setsCmd.Flags().IntVar(&setsPageSize, "page-size", 0, "page size (with --refresh, defaults to config)")
}

func runSets(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pageSize := setsPageSize
	if pageSize <= 0 {
		pageSize = a.cfg.PageSize
	}

	var sets []models.Set
	if setsRefresh {
		sets, err = a.sets.FetchSets(cmd.Context(), setsPage, pageSize)
		if err != nil {
			return fmt.Errorf("refresh sets: %w", err)
		}
		// Sets cached before their themes were known can now pick up names.
		if _, err := a.sets.BackfillThemeNames(); err != nil {
			fmt.Printf("warning: backfill theme names: %v\n", err)
		}
	} else {
		sets = a.sets.GetCachedSets()
	}

	if len(sets) == 0 {
		fmt.Println("No sets cached yet.")
		fmt.Println("\nUse 'brixie sets --refresh' to fetch the catalog.")
		return nil
	}

	printSets(sets)
	return nil
}

func printSets(sets []models.Set) {
	fmt.Printf("SETS (%d)\n", len(sets))
	fmt.Println("──────────────────────────────────────────────────")
	for _, set := range sets {
		favorite := ""
		if set.IsFavorite {
			favorite = " ★"
		}
		fmt.Printf("  %s  %s%s\n", set.SetNum, set.Name, favorite)
		fmt.Printf("    %d | %s | %d parts\n", set.Year, set.DisplayTheme(), set.NumParts)
	}
}
