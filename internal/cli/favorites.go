package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite sets",
	Long: `Manage your favorite sets.

Favorites are purely local: they never touch the network and they survive
catalog refreshes.

Subcommands:
  add <set-num>     Mark a set as a favorite
  remove <set-num>  Unmark a favorite
  list              List all favorite sets`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <set-num>",
	Short: "Mark a set as a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <set-num>",
	Short: "Unmark a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all favorite sets",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	setNum := args[0]

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.sets.MarkFavorite(setNum); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	fmt.Printf("Added %s to favorites.\n", setNum)
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	setNum := args[0]

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.sets.RemoveFavorite(setNum); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	fmt.Printf("Removed %s from favorites.\n", setNum)
	return nil
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	favorites := a.sets.GetFavoriteSets()
	if len(favorites) == 0 {
		fmt.Println("No favorites yet.")
		fmt.Println("\nUse 'brixie favorites add <set-num>' to mark a set.")
		return nil
	}

	fmt.Printf("FAVORITES (%d sets)\n", len(favorites))
	fmt.Println("──────────────────────────────────────────────────")
	for _, set := range favorites {
		fmt.Printf("  %s  %s\n", set.SetNum, set.Name)
		fmt.Printf("    %d | %s | %d parts\n", set.Year, set.DisplayTheme(), set.NumParts)
	}

	return nil
}
