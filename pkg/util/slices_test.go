package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyInts(t *testing.T) {
	input := []int{3, 1, 2}
	result := CopyInts(input)

	assert.Equal(t, input, result)

	result[0] = 9
	assert.Equal(t, []int{3, 1, 2}, input)

	assert.Equal(t, []int{}, CopyInts(nil))
}

func TestUnionInts(t *testing.T) {
	testCases := []struct {
		description string
		slice1      []int
		slice2      []int
		expected    []int
	}{
		{
			description: "Disjoint",
			slice1:      []int{5, 1},
			slice2:      []int{2, 4},
			expected:    []int{1, 2, 4, 5},
		},
		{
			description: "Overlapping",
			slice1:      []int{3, 1, 2},
			slice2:      []int{2, 3, 7},
			expected:    []int{1, 2, 3, 7},
		},
		{
			description: "Duplicates within one slice",
			slice1:      []int{4, 4, 1},
			slice2:      nil,
			expected:    []int{1, 4},
		},
		{
			description: "Both empty",
			slice1:      nil,
			slice2:      []int{},
			expected:    []int{},
		},
	}

	for _, testCase := range testCases {
		assert.Equal(
			t,
			testCase.expected,
			UnionInts(testCase.slice1, testCase.slice2),
			testCase.description,
		)
	}
}
