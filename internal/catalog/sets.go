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

// SetRepository keeps the local set table in step with the remote catalog.
// It owns the "sets", "search" and "setDetails" sync feeds and leans on the
// theme repository to denormalize theme names onto set records.
type SetRepository struct {
	db     *db.DB
	remote RemoteCatalog
	themes *ThemeRepository

	// mu serializes the clear-then-reinsert sequence of a page-1 refresh.
	mu sync.Mutex
}

// NewSetRepository creates a set repository.
func NewSetRepository(database *db.DB, remote RemoteCatalog, themes *ThemeRepository) *SetRepository {
	return &SetRepository{db: database, remote: remote, themes: themes}
}

// FetchSets fetches one page of sets from the remote catalog, joins theme
// names from the local theme cache, and writes the page through to the set
// table. Page 1 is a full refresh (clear then insert).
//
// On a transport failure the full local cache is returned instead, provided
// it is non-empty; any other failure (or an empty cache) propagates.
func (r *SetRepository) FetchSets(ctx context.Context, page, pageSize int) ([]models.Set, error) {
	results, err := r.remote.ListSets(ctx, page, pageSize)
	if err != nil {
		r.recordSync(models.FeedSets, false, 0)
		if rebrick.IsNetworkError(err) {
			if cached := r.GetCachedSets(); len(cached) > 0 {
				return cached, nil
			}
		}
		return nil, fmt.Errorf("fetch sets: %w", err)
	}

	sets := r.joinThemeNames(setsFromResults(results))

	r.mu.Lock()
	defer r.mu.Unlock()

	if page == 1 {
		if err := r.db.DeleteAllSets(); err != nil {
			return nil, fmt.Errorf("clear set cache: %w", err)
		}
	}
	if err := r.db.SaveSets(sets); err != nil {
		return nil, fmt.Errorf("save sets: %w", err)
	}

	r.recordSync(models.FeedSets, true, len(sets))

	return sets, nil
}

// SearchSets searches the remote catalog for sets. Results are joined with
// theme names and upserted into the cache. On ANY failure the search
// degrades to a case-insensitive substring filter over the local cache,
// matching name or set number; it never returns an error.
func (r *SetRepository) SearchSets(ctx context.Context, query string, page, pageSize int) []models.Set {
	results, err := r.remote.SearchSets(ctx, query, page, pageSize)
	if err != nil {
		r.recordSync(models.FeedSearch, false, 0)
		log.Errorf("set search %q failed, filtering cache: %v", query, err)
		return filterSets(r.GetCachedSets(), query)
	}

	sets := r.joinThemeNames(setsFromResults(results))

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.SaveSets(sets); err != nil {
		log.Errorf("cache set search results: %v", err)
	}

	r.recordSync(models.FeedSearch, true, len(sets))

	return sets
}

// GetSetDetails fetches a single set by set number, caching it on success
// and marking it viewed. When the remote lookup fails, the local cache is
// consulted instead; nil means the set is unknown everywhere.
func (r *SetRepository) GetSetDetails(ctx context.Context, setNum string) *models.Set {
	result, err := r.remote.GetSet(ctx, setNum)
	if err != nil {
		r.recordSync(models.FeedSetDetails, false, 0)
		log.Errorf("set %s details: %v", setNum, err)
		return r.cachedSet(setNum)
	}
	if result == nil {
		// Known answer from the remote: the set does not exist there.
		// The cache may still hold it (e.g. removed upstream).
		r.recordSync(models.FeedSetDetails, true, 0)
		return r.cachedSet(setNum)
	}

	set := r.joinThemeNames([]models.Set{setFromResult(*result)})[0]

	if err := r.db.SaveSets([]models.Set{set}); err != nil {
		log.Errorf("cache set %s: %v", setNum, err)
	}
	if err := r.db.RecordSetView(setNum); err != nil {
		log.Errorf("record view of %s: %v", setNum, err)
	}

	r.recordSync(models.FeedSetDetails, true, 1)

	// Re-read so the caller sees local state (favorite flag, viewed
	// timestamp) merged with the fresh catalog fields.
	if stored := r.cachedSet(setNum); stored != nil {
		return stored
	}
	return &set
}

// GetCachedSets returns the full local set cache. It never fails; a
// persistence error yields an empty list.
func (r *SetRepository) GetCachedSets() []models.Set {
	sets, err := r.db.GetAllSets()
	if err != nil {
		log.Errorf("read set cache: %v", err)
		return []models.Set{}
	}
	return sets
}

// LastSync returns the last sync attempt for a feed, or nil if the feed has
// never synced or the lookup fails.
func (r *SetRepository) LastSync(feed string) *models.SyncStatus {
	status, err := r.db.GetSyncStatus(feed)
	if err != nil {
		log.Errorf("read sync status %s: %v", feed, err)
		return nil
	}
	return status
}

// MarkFavorite flags a set as a favorite. Purely local: no network call, no
// sync timestamp.
func (r *SetRepository) MarkFavorite(setNum string) error {
	return r.db.SetFavorite(setNum, true)
}

// RemoveFavorite clears the favorite flag of a set. Purely local.
func (r *SetRepository) RemoveFavorite(setNum string) error {
	return r.db.SetFavorite(setNum, false)
}

// GetFavoriteSets returns all favorited sets. It never fails; a persistence
// error yields an empty list.
func (r *SetRepository) GetFavoriteSets() []models.Set {
	sets, err := r.db.GetFavoriteSets()
	if err != nil {
		log.Errorf("read favorites: %v", err)
		return []models.Set{}
	}
	return sets
}

// BackfillThemeNames repairs cached sets whose theme name is still missing,
// typically because the set was cached before its theme was. It re-joins
// them against the current theme cache and persists only the sets that
// gained a name. Idempotent: once every set has a name it is a no-op.
// Returns the number of sets updated.
func (r *SetRepository) BackfillThemeNames() (int, error) {
	missing, err := r.db.GetSetsMissingThemeName()
	if err != nil {
		return 0, fmt.Errorf("find sets missing theme name: %w", err)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	names := r.themes.themeNames()

	var updated []models.Set
	for _, set := range missing {
		name, ok := names[set.ThemeID]
		if !ok {
			continue
		}
		set.ThemeName = &name
		updated = append(updated, set)
	}
	if len(updated) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.SaveSets(updated); err != nil {
		return 0, fmt.Errorf("backfill theme names: %w", err)
	}

	return len(updated), nil
}

// joinThemeNames populates the denormalized theme name on each set from the
// local theme cache. A theme id with no cached theme leaves the name nil;
// that is "unknown", not an error.
func (r *SetRepository) joinThemeNames(sets []models.Set) []models.Set {
	names := r.themes.themeNames()
	for i := range sets {
		if name, ok := names[sets[i].ThemeID]; ok {
			n := name
			sets[i].ThemeName = &n
		}
	}
	return sets
}

func (r *SetRepository) cachedSet(setNum string) *models.Set {
	set, err := r.db.GetSet(setNum)
	if err != nil {
		log.Errorf("set %s cache lookup: %v", setNum, err)
		return nil
	}
	return set
}

// recordSync stamps the outcome of a sync attempt. Best-effort, never
// surfaced.
func (r *SetRepository) recordSync(feed string, success bool, count int) {
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

func setsFromResults(results []rebrick.SetResult) []models.Set {
	sets := make([]models.Set, len(results))
	for i, result := range results {
		sets[i] = setFromResult(result)
	}
	return sets
}

func setFromResult(result rebrick.SetResult) models.Set {
	return models.Set{
		SetNum:   result.SetNum,
		Name:     result.Name,
		Year:     result.Year,
		ThemeID:  result.ThemeID,
		NumParts: result.NumParts,
		ImageURL: result.ImageURL,
	}
}

// filterSets matches sets whose name or set number contains the query,
// case-insensitively.
func filterSets(sets []models.Set, query string) []models.Set {
	needle := strings.ToLower(query)
	matched := make([]models.Set, 0, len(sets))
	for _, s := range sets {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.SetNum), needle) {
			matched = append(matched, s)
		}
	}
	return matched
}
