//go:build !mem

package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, closer, err := Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "nested", "firesale.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })
	return st
}

func TestSQLiteTouchUpserts(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.Recent.Touch(ctx, "/a.md", "d1", t0))
	require.NoError(t, st.Recent.Touch(ctx, "/a.md", "d2", t0.Add(time.Minute)))

	d, err := st.Recent.Get(ctx, "/a.md")
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.Opens)
	assert.Equal(t, "d2", d.Digest)
	assert.True(t, d.OpenedAt.Equal(t0.Add(time.Minute)))

	_, err = st.Recent.Get(ctx, "/missing.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteListOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []string{"/a.md", "/b.md", "/c.md"} {
		require.NoError(t, st.Recent.Touch(ctx, p, "", t0.Add(time.Duration(i)*time.Hour)))
	}

	all, err := st.Recent.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/c.md", all[0].Path)
	assert.Equal(t, "/a.md", all[2].Path)

	two, err := st.Recent.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestSQLitePruneRemoveClear(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []string{"/a.md", "/b.md", "/c.md", "/d.md"} {
		require.NoError(t, st.Recent.Touch(ctx, p, "", t0.Add(time.Duration(i)*time.Hour)))
	}
	require.NoError(t, st.Recent.Prune(ctx, 2))
	list, err := st.Recent.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/d.md", list[0].Path)
	assert.Equal(t, "/c.md", list[1].Path)

	require.NoError(t, st.Recent.Remove(ctx, "/d.md"))
	list, _ = st.Recent.List(ctx, 0)
	assert.Len(t, list, 1)

	require.NoError(t, st.Recent.Clear(ctx))
	list, _ = st.Recent.List(ctx, 0)
	assert.Empty(t, list)
}

func TestSQLiteRememberPrunes(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	for _, p := range []string{"/a.md", "/b.md", "/c.md"} {
		require.NoError(t, st.Remember(ctx, p, "x", 2))
	}
	list, err := st.Recent.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
