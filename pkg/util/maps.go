package util

import (
	"sort"
)

// SortedStringKeys returns the keys of the argument map, sorted
// lexicographically.
func SortedStringKeys(input map[string][]int) []string {
	keys := []string{}

	for key := range input {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}
