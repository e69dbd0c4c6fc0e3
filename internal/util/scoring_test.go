package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mithrel/firesale/pkg/api"
)

func paths(docs []api.RecentDocument) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Path)
	}
	return out
}

func TestScoreRecentEmptyInputKeepsOrder(t *testing.T) {
	docs := []api.RecentDocument{{Path: "/b.md"}, {Path: "/a.md"}, {Path: "/c.md"}}
	assert.Equal(t, []string{"/b.md", "/a.md"}, paths(ScoreRecent("", docs, 2, time.Now())))
	assert.Len(t, ScoreRecent("", docs, 0, time.Now()), 3)
}

func TestScoreRecentFiltersAndRanks(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	docs := []api.RecentDocument{
		{Path: "/notes/readme/other.md", Opens: 1, OpenedAt: now},
		{Path: "/notes/readme.md", Opens: 1, OpenedAt: now},
		{Path: "/src/main.go", Opens: 50, OpenedAt: now},
	}
	got := paths(ScoreRecent("readme", docs, 0, now))
	assert.Equal(t, "/notes/readme.md", got[0])
	assert.NotContains(t, got, "/src/main.go")
	assert.Nil(t, ScoreRecent("zzzz", docs, 0, now))
}

func TestFrecencyDecays(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fresh := api.RecentDocument{Opens: 3, OpenedAt: now}
	stale := api.RecentDocument{Opens: 3, OpenedAt: now.Add(-14 * 24 * time.Hour)}
	assert.Greater(t, Frecency(fresh, now), Frecency(stale, now))
	assert.InDelta(t, Frecency(fresh, now)/4, Frecency(stale, now), 1e-9)
	assert.Greater(t, Frecency(api.RecentDocument{Opens: 9, OpenedAt: now}, now), Frecency(fresh, now))
}
