package db

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/mithrel/firesale/pkg/api"
)

// RecentRepo keeps the recent-documents list.
type RecentRepo interface {
	// Touch records that path was opened at the given time with content digest.
	Touch(ctx context.Context, path, digest string, at time.Time) error
	Get(ctx context.Context, path string) (api.RecentDocument, error)
	// List returns the most recently opened documents first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]api.RecentDocument, error)
	Remove(ctx context.Context, path string) error
	Clear(ctx context.Context) error
	// Prune keeps only the keep most recent documents.
	Prune(ctx context.Context, keep int) error
}

// Store aggregates repositories.
type Store struct {
	Recent RecentRepo
}

var ErrNotFound = errors.New("not found")

// Open returns a Store for a sqlite:// URL or a bare path.
func Open(ctx context.Context, url string) (*Store, io.Closer, error) {
	return openSQLite(ctx, url)
}

// Remember touches path and trims the list to keep entries.
func (st *Store) Remember(ctx context.Context, path, digest string, keep int) error {
	now := time.Now()
	if r, ok := st.Recent.(interface {
		remember(context.Context, string, string, time.Time, int) error
	}); ok {
		return r.remember(ctx, path, digest, now, keep)
	}
	if err := st.Recent.Touch(ctx, path, digest, now); err != nil {
		return err
	}
	return st.Recent.Prune(ctx, keep)
}
