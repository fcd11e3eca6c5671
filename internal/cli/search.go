package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchPage     int
	searchPageSize int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search LEGO sets by name",
	Long: `Search Rebrickable for sets matching the query.

Results are cached locally. If Rebrickable is unreachable the search falls
back to the cached sets, matching against name and set number.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 0, "page size (defaults to config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pageSize := searchPageSize
	if pageSize <= 0 {
		pageSize = a.cfg.PageSize
	}

	sets := a.sets.SearchSets(cmd.Context(), query, searchPage, pageSize)
	if len(sets) == 0 {
		fmt.Printf("No sets matching %q.\n", query)
		return nil
	}

	printSets(sets)
	return nil
}
