package policies

import (
	"fmt"
	"testing"

	"github.com/segmentio/reassignctl/pkg/plan"
	"github.com/segmentio/reassignctl/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleUp(t *testing.T) {
	pool := testPool(t, 0, 5, []int{5})
	policy := NewScalePolicy(pool, testPicker(12), 3)

	desired, err := policy.Apply("test-topic", 0, plan.ReplicaSet{5})
	require.NoError(t, err)

	require.Equal(t, 3, len(desired))
	assert.Equal(t, 5, desired.Leader())
	assert.NoError(t, desired.Validate())
	for _, replica := range desired[1:] {
		assert.True(t, pool.Contains(replica))
	}
}

func TestScaleUpNoCandidates(t *testing.T) {
	// Only 4 brokers in total, so a target of 5 distinct replicas can never
	// be satisfied.
	pool := testPool(t, 0, 3, nil)
	policy := NewScalePolicy(pool, testPicker(12), 5)

	_, err := policy.Apply("test-topic", 0, plan.ReplicaSet{1, 2, 3})
	assert.ErrorIs(t, err, plan.ErrNoCandidate)
	assert.ErrorIs(t, err, plan.ErrOutOfRange)
	assert.False(t, plan.IsFatal(err))
}

func TestScaleNegativeTarget(t *testing.T) {
	pool := testPool(t, 0, 3, nil)
	policy := NewScalePolicy(pool, testPicker(12), -1)

	_, err := policy.Apply("test-topic", 0, plan.ReplicaSet{1, 2, 3})
	assert.ErrorIs(t, err, plan.ErrOutOfRange)
	assert.NotErrorIs(t, err, plan.ErrNoCandidate)
	assert.False(t, plan.IsFatal(err))
}

func TestScaleSameSize(t *testing.T) {
	pool := testPool(t, 0, 5, nil)
	policy := NewScalePolicy(pool, testPicker(12), 3)

	curr := plan.ReplicaSet{3, 1, 2}
	desired, err := policy.Apply("test-topic", 0, curr)
	require.NoError(t, err)

	assert.Equal(t, curr, desired)

	// The result must be a fresh value, not the input.
	desired[0] = 9
	assert.Equal(t, plan.ReplicaSet{3, 1, 2}, curr)
}

func TestScaleToZero(t *testing.T) {
	pool := testPool(t, 0, 5, nil)
	policy := NewScalePolicy(pool, testPicker(12), 0)

	desired, err := policy.Apply("test-topic", 0, plan.ReplicaSet{3, 1, 2})
	require.NoError(t, err)
	require.NotNil(t, desired)
	assert.Equal(t, 0, len(desired))
}

func TestScaleDown(t *testing.T) {
	pool := testPool(t, 0, 5, nil)
	policy := NewScalePolicy(pool, testPicker(12), 2)

	curr := plan.ReplicaSet{3, 1, 2, 4}
	desired, err := policy.Apply("test-topic", 0, curr)
	require.NoError(t, err)

	require.Equal(t, 2, len(desired))
	assert.Equal(t, 3, desired.Leader())
	for _, replica := range desired[1:] {
		assert.True(t, curr.Contains(replica))
	}
	assert.NoError(t, desired.Validate())
}

func TestScaleDownSpreadsRemovals(t *testing.T) {
	pool := testPool(t, 0, 9, nil)
	policy := NewScalePolicy(pool, testPicker(34), 2)

	curr := plan.ReplicaSet{0, 1, 2, 3, 4}
	retainedCounts := map[int]int{}

	for i := 0; i < 1000; i++ {
		desired, err := policy.Apply("test-topic", 0, curr)
		require.NoError(t, err)
		retainedCounts[desired[1]]++
	}

	// Dropped replicas are chosen at random, so every follower should
	// survive at least once over many trials.
	for _, follower := range curr[1:] {
		assert.Greater(
			t,
			retainedCounts[follower],
			0,
			"follower %d never retained",
			follower,
		)
	}
}

func TestScaleInvariants(t *testing.T) {
	// Property-style check across pool sizes, exclusion lists, and targets.
	for seed := int64(0); seed < 50; seed++ {
		picker := testPicker(seed)

		for _, excluded := range [][]int{nil, {0}, {2, 4}} {
			pool := testPool(t, 0, 9, excluded)

			for target := 1; target <= pool.Size(); target++ {
				policy := NewScalePolicy(pool, picker, target)

				curr := plan.ReplicaSet{5, 7}
				desired, err := policy.Apply("test-topic", 0, curr)
				require.NoError(
					t,
					err,
					fmt.Sprintf("seed %d excluded %v target %d", seed, excluded, target),
				)

				assert.Equal(t, target, len(desired))
				assert.Equal(t, 5, desired.Leader())
				assert.NoError(t, desired.Validate())

				for _, replica := range desired {
					if curr.Contains(replica) {
						continue
					}
					assert.True(t, pool.Contains(replica))
					assert.NotContains(t, excluded, replica)
				}
			}
		}
	}
}

func TestScaleDoesNotMutateInput(t *testing.T) {
	pool := testPool(t, 0, 5, nil)
	policy := NewScalePolicy(pool, testPicker(12), 4)

	curr := plan.ReplicaSet{3, 1}
	original := util.CopyInts(curr)

	_, err := policy.Apply("test-topic", 0, curr)
	require.NoError(t, err)
	assert.Equal(t, original, []int(curr))
}
