package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpwg/brixie/internal/models"
	"github.com/mpwg/brixie/internal/rebrick"
)

func seedThemes(t *testing.T, themes *ThemeRepository, results ...rebrick.ThemeResult) {
	t.Helper()
	remote := themes.remote.(*fakeRemote)
	prev := remote.listThemes
	remote.listThemes = func(ctx context.Context, page, pageSize int) ([]rebrick.ThemeResult, error) {
		return results, nil
	}
	_, err := themes.FetchThemes(context.Background(), 1, len(results))
	require.NoError(t, err)
	remote.listThemes = prev
}

func TestFetchSets_JoinsThemeNames(t *testing.T) {
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			return []rebrick.SetResult{
				{SetNum: "60001-1", Name: "Fire Truck", Year: 2013, ThemeID: 1, NumParts: 300},
				{SetNum: "9999-1", Name: "Mystery Box", Year: 2020, ThemeID: 42, NumParts: 10},
			}, nil
		},
	}
	themes, sets := newRepos(t, remote)
	seedThemes(t, themes, rebrick.ThemeResult{ID: 1, Name: "City"})

	got, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].ThemeName)
	assert.Equal(t, "City", *got[0].ThemeName)

	// Theme 42 is not cached: the name stays nil, the set is kept anyway.
	assert.Nil(t, got[1].ThemeName)
	assert.Equal(t, "unknown", got[1].DisplayTheme())

	status := sets.LastSync(models.FeedSets)
	require.NotNil(t, status)
	assert.True(t, status.Success)
	assert.Equal(t, 2, status.ItemCount)
}

func TestFetchSets_PageOneFullRefresh(t *testing.T) {
	pages := [][]rebrick.SetResult{
		{{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1}, {SetNum: "60002-1", Name: "Police Car", ThemeID: 1}},
		{{SetNum: "60003-1", Name: "Ambulance", ThemeID: 1}},
	}
	call := 0
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			result := pages[call]
			call++
			return result, nil
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)
	_, err = sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)

	cached := sets.GetCachedSets()
	require.Len(t, cached, 1)
	assert.Equal(t, "60003-1", cached[0].SetNum)
}

func TestFetchSets_NetworkErrorFallsBackToCache(t *testing.T) {
	up := true
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			if !up {
				return nil, errDown
			}
			return []rebrick.SetResult{{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1}}, nil
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)

	up = false
	got, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "60001-1", got[0].SetNum)

	status := sets.LastSync(models.FeedSets)
	require.NotNil(t, status)
	assert.False(t, status.Success)
}

func TestFetchSets_NetworkErrorEmptyCachePropagates(t *testing.T) {
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			return nil, errDown
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.Error(t, err)
}

// A favorite set survives both the outage and the next full refresh.
func TestFavorite_SurvivesRefresh(t *testing.T) {
	up := true
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			if !up {
				return nil, errDown
			}
			return []rebrick.SetResult{{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1}}, nil
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)
	require.NoError(t, sets.MarkFavorite("60001-1"))

	// Offline: favorites read straight from the cache.
	up = false
	favorites := sets.GetFavoriteSets()
	require.Len(t, favorites, 1)
	assert.Equal(t, "60001-1", favorites[0].SetNum)

	// Back online: the refresh re-clears the table, the upsert restores the
	// set, and the favorite flag is preserved because sync writes never touch
	// user state columns.
	up = true
	got, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, got, 1)

	favorites = sets.GetFavoriteSets()
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].IsFavorite)

	require.NoError(t, sets.RemoveFavorite("60001-1"))
	assert.Empty(t, sets.GetFavoriteSets())
}

func TestSearchSets_RemoteResultsUpserted(t *testing.T) {
	remote := &fakeRemote{t: t,
		searchSets: func(ctx context.Context, query string, page, pageSize int) ([]rebrick.SetResult, error) {
			assert.Equal(t, "fire", query)
			return []rebrick.SetResult{{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1}}, nil
		},
	}
	themes, sets := newRepos(t, remote)
	seedThemes(t, themes, rebrick.ThemeResult{ID: 1, Name: "City"})

	got := sets.SearchSets(context.Background(), "fire", 1, 20)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].ThemeName)
	assert.Equal(t, "City", *got[0].ThemeName)

	// Search results land in the cache without clearing it.
	assert.Len(t, sets.GetCachedSets(), 1)

	status := sets.LastSync(models.FeedSearch)
	require.NotNil(t, status)
	assert.True(t, status.Success)
	assert.Equal(t, 1, status.ItemCount)
}

func TestSearchSets_DegradesToLocalFilter(t *testing.T) {
	up := true
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			return []rebrick.SetResult{
				{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1},
				{SetNum: "60002-1", Name: "Police Car", ThemeID: 1},
			}, nil
		},
		searchSets: func(ctx context.Context, query string, page, pageSize int) ([]rebrick.SetResult, error) {
			if !up {
				return nil, errDown
			}
			return nil, nil
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)

	up = false

	// Matches against the name, case-insensitively.
	got := sets.SearchSets(context.Background(), "FIRE", 1, 20)
	require.Len(t, got, 1)
	assert.Equal(t, "60001-1", got[0].SetNum)

	// Matches against the set number too.
	got = sets.SearchSets(context.Background(), "60002", 1, 20)
	require.Len(t, got, 1)
	assert.Equal(t, "Police Car", got[0].Name)

	// No match: empty result, still no error.
	assert.Empty(t, sets.SearchSets(context.Background(), "starfighter", 1, 20))

	status := sets.LastSync(models.FeedSearch)
	require.NotNil(t, status)
	assert.False(t, status.Success)
}

func TestGetSetDetails_CachesAndRecordsView(t *testing.T) {
	remote := &fakeRemote{t: t,
		getSet: func(ctx context.Context, setNum string) (*rebrick.SetResult, error) {
			return &rebrick.SetResult{SetNum: setNum, Name: "Fire Truck", Year: 2013, ThemeID: 1, NumParts: 300}, nil
		},
	}
	themes, sets := newRepos(t, remote)
	seedThemes(t, themes, rebrick.ThemeResult{ID: 1, Name: "City"})

	got := sets.GetSetDetails(context.Background(), "60001-1")
	require.NotNil(t, got)
	assert.Equal(t, "Fire Truck", got.Name)
	require.NotNil(t, got.ThemeName)
	assert.Equal(t, "City", *got.ThemeName)
	assert.NotNil(t, got.ViewedAt)

	status := sets.LastSync(models.FeedSetDetails)
	require.NotNil(t, status)
	assert.True(t, status.Success)
	assert.Equal(t, 1, status.ItemCount)
}

func TestGetSetDetails_MergesLocalState(t *testing.T) {
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			return []rebrick.SetResult{{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1}}, nil
		},
		getSet: func(ctx context.Context, setNum string) (*rebrick.SetResult, error) {
			return &rebrick.SetResult{SetNum: setNum, Name: "Fire Truck (2nd Edition)", ThemeID: 1}, nil
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)
	require.NoError(t, sets.MarkFavorite("60001-1"))

	got := sets.GetSetDetails(context.Background(), "60001-1")
	require.NotNil(t, got)
	assert.Equal(t, "Fire Truck (2nd Edition)", got.Name)
	assert.True(t, got.IsFavorite)
}

func TestGetSetDetails_FallsBackToCache(t *testing.T) {
	up := true
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			return []rebrick.SetResult{{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1}}, nil
		},
		getSet: func(ctx context.Context, setNum string) (*rebrick.SetResult, error) {
			if !up {
				return nil, errDown
			}
			return nil, nil
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)

	up = false
	got := sets.GetSetDetails(context.Background(), "60001-1")
	require.NotNil(t, got)
	assert.Equal(t, "Fire Truck", got.Name)

	status := sets.LastSync(models.FeedSetDetails)
	require.NotNil(t, status)
	assert.False(t, status.Success)
}

func TestGetSetDetails_RemoteMissServesCache(t *testing.T) {
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			return []rebrick.SetResult{{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1}}, nil
		},
		getSet: func(ctx context.Context, setNum string) (*rebrick.SetResult, error) {
			return nil, nil // gone upstream
		},
	}
	_, sets := newRepos(t, remote)

	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)

	got := sets.GetSetDetails(context.Background(), "60001-1")
	require.NotNil(t, got)
	assert.Equal(t, "Fire Truck", got.Name)

	// A definitive "not there" from the remote is a successful sync.
	status := sets.LastSync(models.FeedSetDetails)
	require.NotNil(t, status)
	assert.True(t, status.Success)
	assert.Equal(t, 0, status.ItemCount)
}

func TestGetSetDetails_UnknownEverywhere(t *testing.T) {
	remote := &fakeRemote{t: t,
		getSet: func(ctx context.Context, setNum string) (*rebrick.SetResult, error) {
			return nil, nil
		},
	}
	_, sets := newRepos(t, remote)

	assert.Nil(t, sets.GetSetDetails(context.Background(), "404-1"))
}

func TestBackfillThemeNames(t *testing.T) {
	remote := &fakeRemote{t: t,
		listSets: func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
			return []rebrick.SetResult{
				{SetNum: "60001-1", Name: "Fire Truck", ThemeID: 1},
				{SetNum: "8880-1", Name: "Super Car", ThemeID: 5},
			}, nil
		},
	}
	themes, sets := newRepos(t, remote)

	// Sets arrive before any theme is cached: names stay nil.
	_, err := sets.FetchSets(context.Background(), 1, 20)
	require.NoError(t, err)
	for _, set := range sets.GetCachedSets() {
		assert.Nil(t, set.ThemeName)
	}

	// Only theme 1 becomes known.
	seedThemes(t, themes, rebrick.ThemeResult{ID: 1, Name: "City"})

	updated, err := sets.BackfillThemeNames()
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	fire := sets.cachedSet("60001-1")
	require.NotNil(t, fire)
	require.NotNil(t, fire.ThemeName)
	assert.Equal(t, "City", *fire.ThemeName)

	// Theme 5 is still unknown: its set is untouched.
	car := sets.cachedSet("8880-1")
	require.NotNil(t, car)
	assert.Nil(t, car.ThemeName)

	// Idempotent: nothing left to repair.
	updated, err = sets.BackfillThemeNames()
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}
