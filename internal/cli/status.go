package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mpwg/brixie/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache and sync status",
	Long: `Show the state of the local cache: row counts, on-disk size, and the
last sync attempt of every feed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var (
	statusOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headerStyle     = lipgloss.NewStyle().Bold(true)
)

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.database.GetStats()
	if err != nil {
		return fmt.Errorf("read cache stats: %w", err)
	}

	fmt.Println(headerStyle.Render("CACHE"))
	fmt.Println("──────────────────────────────────────────────────")
	fmt.Printf("  Sets:      %d (%d favorites)\n", stats.TotalSets, stats.TotalFavorites)
	fmt.Printf("  Themes:    %d\n", stats.TotalThemes)
	fmt.Printf("  Database:  %s (%s)\n", a.database.Path(), formatBytes(stats.CacheSizeBytes))
	fmt.Println()

	fmt.Println(headerStyle.Render("SYNC FEEDS"))
	fmt.Println("──────────────────────────────────────────────────")

	feeds := []string{
		models.FeedSets,
		models.FeedThemes,
		models.FeedSearch,
		models.FeedSetDetails,
	}
	for _, feed := range feeds {
		status := a.sets.LastSync(feed)
		if status == nil {
			fmt.Printf("  %-11s never synced\n", feed)
			continue
		}

		outcome := statusOKStyle.Render("ok")
		if !status.Success {
			outcome = statusFailStyle.Render("failed")
		}
		fmt.Printf("  %-11s %s, %s (%d items)\n",
			feed, outcome, formatTimeSince(status.SyncedAt), status.ItemCount)
	}

	return nil
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
