package util

import (
	"math"
	"path/filepath"
	"sort"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/mithrel/firesale/pkg/api"
)

// recentSource exposes document paths to the fuzzy matcher.
type recentSource []api.RecentDocument

func (s recentSource) String(i int) string { return s[i].Path }
func (s recentSource) Len() int            { return len(s) }

// ScoreRecent returns up to n documents matching input, best first. The fuzzy
// score is boosted by frecency so that often and lately opened files win ties.
// An empty input keeps the given order. n <= 0 means no limit.
func ScoreRecent(input string, docs []api.RecentDocument, n int, now time.Time) []api.RecentDocument {
	if input == "" {
		return limit(docs, n)
	}
	matches := fuzzy.FindFrom(input, recentSource(docs))
	if len(matches) == 0 {
		return nil
	}
	type scored struct {
		doc   api.RecentDocument
		score float64
	}
	ranked := make([]scored, 0, len(matches))
	for _, m := range matches {
		d := docs[m.Index]
		score := float64(m.Score) + Frecency(d, now)
		// Hits in the file name beat hits in the directory.
		if base := filepath.Base(d.Path); len(fuzzy.Find(input, []string{base})) > 0 {
			score += 10
		}
		ranked = append(ranked, scored{doc: d, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	out := make([]api.RecentDocument, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.doc)
	}
	return limit(out, n)
}

// Frecency weighs the open count by how recently the document was opened,
// halving every week.
func Frecency(d api.RecentDocument, now time.Time) float64 {
	age := now.Sub(d.OpenedAt)
	if age < 0 {
		age = 0
	}
	weeks := age.Hours() / (24 * 7)
	return math.Log2(float64(d.Opens)+1) * math.Pow(0.5, weeks) * 5
}

func limit(docs []api.RecentDocument, n int) []api.RecentDocument {
	if n <= 0 || len(docs) <= n {
		return docs
	}
	return docs[:n]
}
