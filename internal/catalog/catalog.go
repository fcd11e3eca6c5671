// Package catalog implements Brixie's local-first repositories.
//
// Each repository reconciles the remote Rebrickable catalog with the local
// database: a successful fetch is written through to the cache and stamped in
// sync_statuses; a transport failure falls back to whatever the cache holds,
// so the user sees stale data instead of an error. Search degrades to a local
// substring filter and never fails.
//
// Repositories are handed their dependencies explicitly. They serialize
// their own clear-then-reinsert sequences with a mutex, so two concurrent
// page-1 refreshes cannot interleave.
package catalog

import (
	"context"

	"github.com/mpwg/brixie/internal/rebrick"
)

// RemoteCatalog is the slice of the Rebrickable client the repositories
// consume. *rebrick.Client satisfies it; tests substitute a fake.
type RemoteCatalog interface {
	ListSets(ctx context.Context, page, pageSize int) ([]rebrick.SetResult, error)
	SearchSets(ctx context.Context, query string, page, pageSize int) ([]rebrick.SetResult, error)
	GetSet(ctx context.Context, setNum string) (*rebrick.SetResult, error)
	ListThemes(ctx context.Context, page, pageSize int) ([]rebrick.ThemeResult, error)
	SearchThemes(ctx context.Context, query string, page, pageSize int) ([]rebrick.ThemeResult, error)
	GetTheme(ctx context.Context, id int) (*rebrick.ThemeResult, error)
}

var _ RemoteCatalog = (*rebrick.Client)(nil)
