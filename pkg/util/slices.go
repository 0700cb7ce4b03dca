package util

import (
	"sort"
)

// CopyInts copies a slice of ints.
func CopyInts(input []int) []int {
	results := make([]int, len(input))
	copy(results, input)
	return results
}

// UnionInts merges two int slices into a sorted slice of their
// distinct elements.
func UnionInts(slice1 []int, slice2 []int) []int {
	seen := map[int]struct{}{}
	for _, s := range slice1 {
		seen[s] = struct{}{}
	}
	for _, s := range slice2 {
		seen[s] = struct{}{}
	}

	results := make([]int, 0, len(seen))
	for s := range seen {
		results = append(results, s)
	}
	sort.Ints(results)
	return results
}
