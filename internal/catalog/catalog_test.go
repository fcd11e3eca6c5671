package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpwg/brixie/internal/db"
	"github.com/mpwg/brixie/internal/rebrick"
)

// fakeRemote is a scriptable RemoteCatalog. Unset functions fail the test,
// so each test declares exactly the calls it expects.
type fakeRemote struct {
	t *testing.T

	listSets     func(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error)
	searchSets   func(ctx context.Context, query string, page, pageSize int) ([]rebrick.SetResult, error)
	getSet       func(ctx context.Context, setNum string) (*rebrick.SetResult, error)
	listThemes   func(ctx context.Context, page, pageSize int) ([]rebrick.ThemeResult, error)
	searchThemes func(ctx context.Context, query string, page, pageSize int) ([]rebrick.ThemeResult, error)
	getTheme     func(ctx context.Context, id int) (*rebrick.ThemeResult, error)
}

func (f *fakeRemote) ListSets(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error) {
	if f.listSets == nil {
		f.t.Fatal("unexpected ListSets call")
	}
	return f.listSets(ctx, page, pageSize)
}

func (f *fakeRemote) SearchSets(ctx context.Context, query string, page, pageSize int) ([]rebrick.SetResult, error) {
	if f.searchSets == nil {
		f.t.Fatal("unexpected SearchSets call")
	}
	return f.searchSets(ctx, query, page, pageSize)
}

func (f *fakeRemote) GetSet(ctx context.Context, setNum string) (*rebrick.SetResult, error) {
	if f.getSet == nil {
		f.t.Fatal("unexpected GetSet call")
	}
	return f.getSet(ctx, setNum)
}

func (f *fakeRemote) ListThemes(ctx context.Context, page, pageSize int) ([]rebrick.ThemeResult, error) {
	if f.listThemes == nil {
		f.t.Fatal("unexpected ListThemes call")
	}
	return f.listThemes(ctx, page, pageSize)
}

func (f *fakeRemote) SearchThemes(ctx context.Context, query string, page, pageSize int) ([]rebrick.ThemeResult, error) {
	if f.searchThemes == nil {
		f.t.Fatal("unexpected SearchThemes call")
	}
	return f.searchThemes(ctx, query, page, pageSize)
}

func (f *fakeRemote) GetTheme(ctx context.Context, id int) (*rebrick.ThemeResult, error) {
	if f.getTheme == nil {
		f.t.Fatal("unexpected GetTheme call")
	}
	return f.getTheme(ctx, id)
}

func testDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func newRepos(t *testing.T, remote *fakeRemote) (*ThemeRepository, *SetRepository) {
	t.Helper()
	database := testDB(t)
	themes := NewThemeRepository(database, remote)
	sets := NewSetRepository(database, remote, themes)
	return themes, sets
}

var errDown = &rebrick.NetworkError{Op: "GET /test", Err: errors.New("connection refused")}
