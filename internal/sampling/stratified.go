// Package sampling draws balanced per-class subsets from labeled rows.
package sampling

import (
	"math/rand"
	"sort"
)

// PerTag caps the number of rows kept per tag at k, drawing uniformly
// without replacement from over-full partitions, then applies one global
// shuffle from the same seeded source so downstream progress figures are
// not biased toward any one tag's ordering.
//
// Identical (rows, k, seed) inputs always yield the identical sequence:
// partitions are visited in sorted tag order, not map order. k <= 0 means
// no sampling and returns rows unchanged.
func PerTag[T any](rows []T, k int, seed int64, tagOf func(T) string) []T {
	if k <= 0 {
		return rows
	}

	byTag := make(map[string][]T)
	for _, row := range rows {
		tag := tagOf(row)
		byTag[tag] = append(byTag[tag], row)
	}
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	rng := rand.New(rand.NewSource(seed))
	sampled := make([]T, 0, len(rows))
	for _, tag := range tags {
		group := byTag[tag]
		if len(group) <= k {
			sampled = append(sampled, group...)
			continue
		}
		for _, idx := range rng.Perm(len(group))[:k] {
			sampled = append(sampled, group[idx])
		}
	}

	rng.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	return sampled
}
