package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRecent(t *testing.T) {
	ctx := context.Background()
	st := NewMemStore()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.Recent.Touch(ctx, "/a.md", "d1", t0))
	require.NoError(t, st.Recent.Touch(ctx, "/b.md", "d2", t0.Add(time.Hour)))
	require.NoError(t, st.Recent.Touch(ctx, "/a.md", "d3", t0.Add(2*time.Hour)))

	list, err := st.Recent.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/a.md", list[0].Path)
	assert.EqualValues(t, 2, list[0].Opens)
	assert.Equal(t, "d3", list[0].Digest)

	require.NoError(t, st.Recent.Prune(ctx, 1))
	_, err = st.Recent.Get(ctx, "/b.md")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Recent.Clear(ctx))
	list, _ = st.Recent.List(ctx, 0)
	assert.Empty(t, list)
}

func TestMemStoreRemember(t *testing.T) {
	ctx := context.Background()
	st := NewMemStore()
	for _, p := range []string{"/a.md", "/b.md", "/c.md"} {
		require.NoError(t, st.Remember(ctx, p, "", 2))
	}
	list, err := st.Recent.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
