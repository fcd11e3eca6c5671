package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mpwg/brixie/internal/db"
	"github.com/mpwg/brixie/internal/log"
	"github.com/mpwg/brixie/internal/models"
	"github.com/mpwg/brixie/internal/rebrick"
)

// ThemeRepository keeps the local theme table in step with the remote
// catalog and owns the "themes" sync feed.
type ThemeRepository struct {
	db     *db.DB
	remote RemoteCatalog

	// mu serializes the clear-then-reinsert sequence of a page-1 refresh.
	mu sync.Mutex
}

// NewThemeRepository creates a theme repository.
func NewThemeRepository(database *db.DB, remote RemoteCatalog) *ThemeRepository {
	return &ThemeRepository{db: database, remote: remote}
}

// FetchThemes fetches one page of themes from the remote catalog and writes
// it through to the local cache. Page 1 is a full refresh: the theme table
// is cleared before the page is inserted, so themes dropped upstream
// disappear locally too.
//
// On a transport failure the full local cache is returned instead, provided
// it is non-empty; any other failure (or an empty cache) propagates.
func (r *ThemeRepository) FetchThemes(ctx context.Context, page, pageSize int) ([]models.Theme, error) {
	results, err := r.remote.ListThemes(ctx, page, pageSize)
	if err != nil {
		r.recordSync(models.FeedThemes, false, 0)
		if rebrick.IsNetworkError(err) {
			if cached := r.GetCachedThemes(); len(cached) > 0 {
				return cached, nil
			}
		}
		return nil, fmt.Errorf("fetch themes: %w", err)
	}

	themes := themesFromResults(results)

	r.mu.Lock()
	defer r.mu.Unlock()

	if page == 1 {
		if err := r.db.DeleteAllThemes(); err != nil {
			return nil, fmt.Errorf("clear theme cache: %w", err)
		}
	}
	if err := r.db.SaveThemes(themes); err != nil {
		return nil, fmt.Errorf("save themes: %w", err)
	}

	r.recordSync(models.FeedThemes, true, len(themes))

	return themes, nil
}

// SearchThemes searches the remote catalog for themes by name. On any
// failure it degrades to a case-insensitive substring match over the local
// cache; it never returns an error.
func (r *ThemeRepository) SearchThemes(ctx context.Context, query string, page, pageSize int) []models.Theme {
	results, err := r.remote.SearchThemes(ctx, query, page, pageSize)
	if err != nil {
		log.Errorf("theme search %q failed, filtering cache: %v", query, err)
		return filterThemesByName(r.GetCachedThemes(), query)
	}

	themes := themesFromResults(results)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.SaveThemes(themes); err != nil {
		log.Errorf("cache theme search results: %v", err)
	}

	return themes
}

// GetThemeDetails fetches a single theme by id, caching it on success.
// When the remote lookup fails or finds nothing, the local cache is
// consulted instead; nil means the theme is unknown everywhere.
func (r *ThemeRepository) GetThemeDetails(ctx context.Context, id int) *models.Theme {
	result, err := r.remote.GetTheme(ctx, id)
	if err != nil || result == nil {
		if err != nil {
			log.Errorf("theme %d details: %v", id, err)
		}
		cached, cerr := r.db.GetTheme(id)
		if cerr != nil {
			log.Errorf("theme %d cache lookup: %v", id, cerr)
			return nil
		}
		return cached
	}

	theme := themeFromResult(*result)
	if err := r.db.SaveThemes([]models.Theme{theme}); err != nil {
		log.Errorf("cache theme %d: %v", id, err)
	}

	return &theme
}

// GetCachedThemes returns the full local theme cache. It never fails; a
// persistence error yields an empty list.
func (r *ThemeRepository) GetCachedThemes() []models.Theme {
	themes, err := r.db.GetAllThemes()
	if err != nil {
		log.Errorf("read theme cache: %v", err)
		return []models.Theme{}
	}
	return themes
}

// LastSync returns the last sync attempt for a feed, or nil if the feed has
// never synced or the lookup fails.
func (r *ThemeRepository) LastSync(feed string) *models.SyncStatus {
	status, err := r.db.GetSyncStatus(feed)
	if err != nil {
		log.Errorf("read sync status %s: %v", feed, err)
		return nil
	}
	return status
}

// themeNames builds the id -> name map used to denormalize theme names onto
// sets.
func (r *ThemeRepository) themeNames() map[int]string {
	themes := r.GetCachedThemes()
	names := make(map[int]string, len(themes))
	for _, t := range themes {
		names[t.ID] = t.Name
	}
	return names
}

// recordSync stamps the outcome of a sync attempt. Bookkeeping is
// best-effort: a failed write is logged, never surfaced, so it cannot abort
// an otherwise successful fetch.
func (r *ThemeRepository) recordSync(feed string, success bool, count int) {
	status := models.SyncStatus{
		Feed:      feed,
		SyncedAt:  time.Now(),
		Success:   success,
		ItemCount: count,
	}
	if err := r.db.UpsertSyncStatus(status); err != nil {
		log.Errorf("record sync status %s: %v", feed, err)
	}
}

func themesFromResults(results []rebrick.ThemeResult) []models.Theme {
	themes := make([]models.Theme, len(results))
	for i, result := range results {
		themes[i] = themeFromResult(result)
	}
	return themes
}

func themeFromResult(result rebrick.ThemeResult) models.Theme {
	return models.Theme{
		ID:       result.ID,
		Name:     result.Name,
		ParentID: result.ParentID,
	}
}

func filterThemesByName(themes []models.Theme, query string) []models.Theme {
	needle := strings.ToLower(query)
	matched := make([]models.Theme, 0, len(themes))
	for _, t := range themes {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			matched = append(matched, t)
		}
	}
	return matched
}
