package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedStringKeys(t *testing.T) {
	assert.Equal(
		t,
		[]string{"rack1", "rack2", "rack3"},
		SortedStringKeys(
			map[string][]int{
				"rack2": {1, 2},
				"rack3": {3},
				"rack1": {4},
			},
		),
	)
	assert.Equal(t, []string{}, SortedStringKeys(nil))
}
