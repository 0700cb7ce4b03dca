package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrokerPool(t *testing.T) {
	pool, err := NewBrokerPool(0, 5, []int{2, 4})
	require.NoError(t, err)

	assert.Equal(t, 4, pool.Size())
	assert.Equal(t, []int{0, 1, 3, 5}, pool.IDs())
	assert.True(t, pool.Contains(0))
	assert.True(t, pool.Contains(5))
	assert.False(t, pool.Contains(2))
	assert.False(t, pool.Contains(4))
	assert.False(t, pool.Contains(6))
}

func TestNewBrokerPoolInvalidRange(t *testing.T) {
	_, err := NewBrokerPool(5, 3, nil)
	assert.Error(t, err)

	_, err = NewBrokerPool(-1, 3, nil)
	assert.Error(t, err)
}

func TestNewStaticBrokerPool(t *testing.T) {
	pool, err := NewStaticBrokerPool([]int{10, 3, 7}, []int{7})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 10}, pool.IDs())
	assert.True(t, pool.Contains(10))
	assert.False(t, pool.Contains(7))

	_, err = NewStaticBrokerPool([]int{1, -2}, nil)
	assert.Error(t, err)
}

func TestBrokerPoolCandidates(t *testing.T) {
	pool, err := NewBrokerPool(0, 4, []int{1})
	require.NoError(t, err)

	testCases := []struct {
		description        string
		used               []int
		expectedCandidates []int
		expectedErr        error
	}{
		{
			description:        "No used brokers",
			used:               nil,
			expectedCandidates: []int{0, 2, 3, 4},
		},
		{
			description:        "Some used brokers",
			used:               []int{0, 3},
			expectedCandidates: []int{2, 4},
		},
		{
			description:        "Used brokers outside pool are ignored",
			used:               []int{9},
			expectedCandidates: []int{0, 2, 3, 4},
		},
		{
			description: "All brokers used",
			used:        []int{0, 2, 3, 4},
			expectedErr: ErrEmptyPool,
		},
	}

	for _, testCase := range testCases {
		candidates, err := pool.Candidates(testCase.used)
		if testCase.expectedErr != nil {
			assert.ErrorIs(t, err, testCase.expectedErr, testCase.description)
		} else {
			require.NoError(t, err, testCase.description)
			assert.Equal(t, testCase.expectedCandidates, candidates, testCase.description)
		}
	}
}
