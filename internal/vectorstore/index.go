// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorstore

import (
	"fmt"
	"sort"
)

// flatIndex is an exact nearest-neighbour index over squared L2 distance.
// Flat scan is the right shape here: a session indexes at most a few
// dozen abstracts, so approximate structures buy nothing.
type flatIndex struct {
	dimension int
	vectors   [][]float32
}

func newFlatIndex(dimension int) *flatIndex {
	return &flatIndex{dimension: dimension}
}

// Len returns the number of stored vectors.
func (x *flatIndex) Len() int {
	return len(x.vectors)
}

// Add appends vectors to the index in order.
func (x *flatIndex) Add(vectors [][]float32) error {
	for _, v := range vectors {
		if len(v) != x.dimension {
			return fmt.Errorf("vector dimension %d, index expects %d", len(v), x.dimension)
		}
	}
	x.vectors = append(x.vectors, vectors...)
	return nil
}

// hit is one nearest-neighbour candidate.
type hit struct {
	ordinal  int
	distance float32
}

// Search returns up to k hits ordered by ascending squared L2 distance
// from query. Fewer than k hits are returned when the index is smaller.
func (x *flatIndex) Search(query []float32, k int) []hit {
	if len(x.vectors) == 0 || k <= 0 {
		return nil
	}

	hits := make([]hit, 0, len(x.vectors))
	for i, v := range x.vectors {
		hits = append(hits, hit{ordinal: i, distance: squaredL2(query, v)})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits
}

// squaredL2 computes the squared Euclidean distance between a and b.
func squaredL2(a, b []float32) float32 {
	var sum float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(sum)
}
