// Package cli provides the command-line interface for Brixie.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mpwg/brixie/internal/catalog"
	"github.com/mpwg/brixie/internal/config"
	"github.com/mpwg/brixie/internal/db"
	"github.com/mpwg/brixie/internal/log"
	"github.com/mpwg/brixie/internal/rebrick"
	"github.com/mpwg/brixie/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "brixie",
	Short: "Local-first LEGO catalog browser",
	Long: `Local-first LEGO catalog browser

Brixie mirrors the Rebrickable catalog into a local SQLite database so sets,
themes and favorites stay browsable when the network is not.

An API key is required for anything that talks to Rebrickable:

	export REBRICKABLE_API_KEY=<your key>

Get one at https://rebrickable.com/api/.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// app bundles the dependencies every command needs: config, database, and
// the two repositories wired to a Rebrickable client.
type app struct {
	cfg      *config.Config
	database *db.DB
	themes   *catalog.ThemeRepository
	sets     *catalog.SetRepository
}

// openApp loads configuration and opens the local database. The API key may
// be empty; commands that never leave the cache still work without one.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)

	if err := log.Init(paths.Logs); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	client := rebrick.NewClient(cfg.Rebrickable.APIKey,
		rebrick.WithRateLimit(cfg.Rebrickable.RateLimit))

	themes := catalog.NewThemeRepository(database, client)
	sets := catalog.NewSetRepository(database, client, themes)

	return &app{cfg: cfg, database: database, themes: themes, sets: sets}, nil
}

func (a *app) Close() {
	_ = a.database.Close()
	_ = log.Close()
}

// formatTimeSince formats a duration since a time in a human-readable way.
func formatTimeSince(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
