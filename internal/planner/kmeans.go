package planner

import (
	"math"
	"math/rand/v2"
)

// KMeans partitions vectors into at most k clusters and returns the
// cluster id of each vector. Centres are seeded with k-means++ from a PCG
// source built from seed, so identical input and seed give identical
// labels. Iteration stops when assignments are stable or after maxIter
// rounds.
func KMeans(vectors [][]float64, k int, seed uint64, maxIter int) []int {
	n := len(vectors)
	labels := make([]int, n)
	if n == 0 || k <= 0 {
		return labels
	}
	if k > n {
		k = n
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	centers := seedPlusPlus(vectors, k, rng)

	for i := range labels {
		labels[i] = -1
	}
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range vectors {
			c := nearest(v, centers)
			if labels[i] != c {
				labels[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}
		centers = recompute(vectors, labels, centers)
	}
	return labels
}

func seedPlusPlus(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := [][]float64{clone(vectors[rng.IntN(len(vectors))])}
	dist := make([]float64, len(vectors))
	for len(centers) < k {
		var total float64
		for i, v := range vectors {
			dist[i] = sqDist(v, centers[nearest(v, centers)])
			total += dist[i]
		}
		if total == 0 {
			// every point sits on a centre already
			centers = append(centers, clone(vectors[rng.IntN(len(vectors))]))
			continue
		}
		target := rng.Float64() * total
		pick := len(vectors) - 1
		for i, d := range dist {
			target -= d
			if target < 0 {
				pick = i
				break
			}
		}
		centers = append(centers, clone(vectors[pick]))
	}
	return centers
}

// recompute moves each centre to the mean of its members. An empty
// cluster is re-seeded with the point farthest from its own centre.
func recompute(vectors [][]float64, labels []int, old [][]float64) [][]float64 {
	dim := len(vectors[0])
	centers := make([][]float64, len(old))
	counts := make([]int, len(old))
	for c := range centers {
		centers[c] = make([]float64, dim)
	}
	for i, v := range vectors {
		c := labels[i]
		counts[c]++
		for j, x := range v {
			centers[c][j] += x
		}
	}
	for c := range centers {
		if counts[c] == 0 {
			centers[c] = clone(farthest(vectors, labels, old))
			continue
		}
		for j := range centers[c] {
			centers[c][j] /= float64(counts[c])
		}
	}
	return centers
}

func farthest(vectors [][]float64, labels []int, centers [][]float64) []float64 {
	best, bestD := 0, -1.0
	for i, v := range vectors {
		if d := sqDist(v, centers[labels[i]]); d > bestD {
			best, bestD = i, d
		}
	}
	return vectors[best]
}

// nearest returns the closest centre; ties go to the lower index.
func nearest(v []float64, centers [][]float64) int {
	best, bestD := 0, math.Inf(1)
	for c, ctr := range centers {
		if d := sqDist(v, ctr); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
