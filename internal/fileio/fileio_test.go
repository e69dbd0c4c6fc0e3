package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.md")
	require.NoError(t, Write(path, "# Hi"))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "# Hi", got)

	require.NoError(t, Write(path, "# Hi!"))
	got, err = Read(path)
	require.NoError(t, err)
	assert.Equal(t, "# Hi!", got)
}

func TestReadMissingIsIOError(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.True(t, IsIOError(err))
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	assert.Equal(t, "read", ioe.Op)
}

func TestWriteIntoMissingDirIsIOError(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "nope", "a.md"), "x")
	require.Error(t, err)
	assert.True(t, IsIOError(err))
	assert.Contains(t, err.Error(), "write ")
}

type changeLog struct {
	mu   sync.Mutex
	seen []string
}

func (c *changeLog) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, s)
}

func (c *changeLog) last() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.seen) == 0 {
		return "", false
	}
	return c.seen[len(c.seen)-1], true
}

func TestWatchDeliversFreshContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, Write(path, "one"))

	var log changeLog
	sub, err := Watch(path, log.add)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, Write(filepath.Join(dir, "other.md"), "ignored"))
	require.NoError(t, Write(path, "two"))

	require.Eventually(t, func() bool {
		s, ok := log.last()
		return ok && s == "two"
	}, 3*time.Second, 10*time.Millisecond)

	log.mu.Lock()
	for _, s := range log.seen {
		assert.NotEqual(t, "ignored", s)
	}
	log.mu.Unlock()
}

func TestWatchCloseIsIdempotentAndStopsDelivery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.md")
	require.NoError(t, Write(path, "one"))

	var log changeLog
	sub, err := Watch(path, log.add)
	require.NoError(t, err)

	first := sub.Close()
	assert.Equal(t, first, sub.Close())

	require.NoError(t, Write(path, "two"))
	time.Sleep(100 * time.Millisecond)
	_, ok := log.last()
	assert.False(t, ok)
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "gone", "a.md"), func(string) {})
	require.Error(t, err)
	assert.True(t, IsIOError(err))
}
