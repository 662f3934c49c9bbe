// Package perm enumerates permutations of small index sets.
package perm

import "iter"

// Seq returns the sequence [0, 1, ..., n-1]. For n <= 0 it returns an empty
// slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Permutations yields every permutation of [0, n) exactly once, starting
// with the identity, using Heap's algorithm. The yielded slice is reused
// between iterations; clone it to keep it.
//
// n = 0 yields one empty permutation. The sequence has n! elements, so keep
// n small.
func Permutations(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		p := Seq(n)
		if !yield(p) {
			return
		}
		c := make([]int, len(p))
		for i := 1; i < len(p); {
			if c[i] < i {
				if i%2 == 0 {
					p[0], p[i] = p[i], p[0]
				} else {
					p[c[i]], p[i] = p[i], p[c[i]]
				}
				if !yield(p) {
					return
				}
				c[i]++
				i = 1
			} else {
				c[i] = 0
				i++
			}
		}
	}
}
