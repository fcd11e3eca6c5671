package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <set-num>",
	Short: "Show details for one set",
	Long: `Show the details of a single set by its Rebrickable set number,
for example 60001-1.

The set is fetched fresh from Rebrickable when possible and served from the
local cache otherwise. Viewing a set records it as recently viewed.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	setNum := args[0]

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	set := a.sets.GetSetDetails(cmd.Context(), setNum)
	if set == nil {
		return fmt.Errorf("set not found: %s", setNum)
	}

	fmt.Printf("%s  %s\n", set.SetNum, set.Name)
	fmt.Println("──────────────────────────────────────────────────")
	fmt.Printf("  Year:    %d\n", set.Year)
	fmt.Printf("  Theme:   %s\n", set.DisplayTheme())
	fmt.Printf("  Parts:   %d\n", set.NumParts)
	if set.ImageURL != "" {
		fmt.Printf("  Image:   %s\n", set.ImageURL)
	}
	if set.IsFavorite {
		fmt.Println("  ★ favorite")
	}
	if set.ViewedAt != nil {
		fmt.Printf("  Viewed:  %s\n", formatTimeSince(*set.ViewedAt))
	}

	return nil
}
