// Package planner groups topic names into Easy, Medium and Hard bands by
// lexical similarity and derives a progressive study order.
package planner

import (
	"slices"
	"strings"
)

// DefaultSeed is the k-means seed. It is part of the contract: the same
// topics always land in the same bands.
const DefaultSeed uint64 = 42

// DefaultMaxIterations bounds Lloyd iterations.
const DefaultMaxIterations = 300

// Band names a difficulty group.
type Band string

const (
	Easy   Band = "Easy"
	Medium Band = "Medium"
	Hard   Band = "Hard"
)

// Bands is a partition of topic names. Each distinct input name appears
// in exactly one band.
type Bands struct {
	Easy   []string `json:"Easy"`
	Medium []string `json:"Medium"`
	Hard   []string `json:"Hard"`
}

// BandOf returns the band holding name.
func (b Bands) BandOf(name string) (Band, bool) {
	band, ok := b.Lookup()[name]
	return band, ok
}

// Lookup returns a name to band index.
func (b Bands) Lookup() map[string]Band {
	out := make(map[string]Band, len(b.Easy)+len(b.Medium)+len(b.Hard))
	for _, n := range b.Easy {
		out[n] = Easy
	}
	for _, n := range b.Medium {
		out[n] = Medium
	}
	for _, n := range b.Hard {
		out[n] = Hard
	}
	return out
}

// Sequence returns Easy, then Medium, then Hard.
func (b Bands) Sequence() []string {
	out := make([]string, 0, len(b.Easy)+len(b.Medium)+len(b.Hard))
	out = append(out, b.Easy...)
	out = append(out, b.Medium...)
	return append(out, b.Hard...)
}

// Planner clusters topics. Seed is used as given, zero included; New sets
// DefaultSeed. A non-positive MaxIterations means DefaultMaxIterations.
type Planner struct {
	Seed          uint64
	MaxIterations int
}

// New returns a planner with the default seed.
func New() Planner {
	return Planner{Seed: DefaultSeed, MaxIterations: DefaultMaxIterations}
}

func (p Planner) maxIter() int {
	if p.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return p.MaxIterations
}

// ClusterByDifficulty partitions topic names into bands. With fewer than
// three distinct names clustering is skipped: one name goes to Easy, two
// are split between Easy and Medium. Otherwise names are clustered with
// k = 3 and clusters are mapped onto bands by ascending cluster id.
func (p Planner) ClusterByDifficulty(topics []string) Bands {
	names := distinct(topics)
	switch len(names) {
	case 0:
		return Bands{Easy: []string{}, Medium: []string{}, Hard: []string{}}
	case 1:
		return Bands{Easy: names, Medium: []string{}, Hard: []string{}}
	case 2:
		return Bands{Easy: slices.Clone(names[:1]), Medium: slices.Clone(names[1:]), Hard: []string{}}
	}

	labels := KMeans(Vectorize(names), min(3, len(names)), p.Seed, p.maxIter())

	groups := make(map[int][]string)
	for i, l := range labels {
		groups[l] = append(groups[l], names[i])
	}
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := Bands{Easy: []string{}, Medium: []string{}, Hard: []string{}}
	dst := []*[]string{&out.Easy, &out.Medium, &out.Hard}
	for i, id := range ids {
		*dst[i] = groups[id]
	}
	return out
}

// ProgressiveSequence returns the banded topics as one easy-to-hard list.
func (p Planner) ProgressiveSequence(topics []string) []string {
	return p.ClusterByDifficulty(topics).Sequence()
}

func distinct(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
