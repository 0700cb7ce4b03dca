package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaderFirstReplicas(t *testing.T) {
	testCases := []struct {
		description string
		partition   PartitionInfo
		expected    []int
	}{
		{
			description: "Leader already first",
			partition: PartitionInfo{
				Leader:   3,
				Replicas: []int{3, 1, 2},
			},
			expected: []int{3, 1, 2},
		},
		{
			description: "Leader in the middle",
			partition: PartitionInfo{
				Leader:   3,
				Replicas: []int{1, 3, 2},
			},
			expected: []int{3, 1, 2},
		},
		{
			description: "Leader last",
			partition: PartitionInfo{
				Leader:   3,
				Replicas: []int{1, 2, 3},
			},
			expected: []int{3, 1, 2},
		},
		{
			description: "Leader not in replica list",
			partition: PartitionInfo{
				Leader:   9,
				Replicas: []int{1, 2, 3},
			},
			expected: []int{1, 2, 3},
		},
		{
			description: "Single replica",
			partition: PartitionInfo{
				Leader:   5,
				Replicas: []int{5},
			},
			expected: []int{5},
		},
	}

	for _, testCase := range testCases {
		original := make([]int, len(testCase.partition.Replicas))
		copy(original, testCase.partition.Replicas)

		assert.Equal(
			t,
			testCase.expected,
			testCase.partition.LeaderFirstReplicas(),
			testCase.description,
		)
		assert.Equal(
			t,
			original,
			testCase.partition.Replicas,
			testCase.description,
		)
	}
}

func TestTopicHelpers(t *testing.T) {
	topic := TopicInfo{
		Name: "test-topic",
		Partitions: []PartitionInfo{
			{
				ID:       0,
				Leader:   1,
				Replicas: []int{1, 2},
			},
			{
				ID:       1,
				Leader:   2,
				Replicas: []int{2, 3, 4},
			},
			{
				ID:       2,
				Leader:   3,
				Replicas: []int{3},
			},
		},
	}

	assert.Equal(t, []int{0, 1, 2}, topic.PartitionIDs())
	assert.Equal(t, 3, topic.MaxReplication())
}

func TestBrokerHelpers(t *testing.T) {
	brokers := []BrokerInfo{
		{
			ID:   1,
			Host: "broker-1",
			Port: 9092,
			Rack: "us-west-2a",
		},
		{
			ID:   2,
			Host: "broker-2",
			Port: 9092,
			Rack: "us-west-2b",
		},
		{
			ID:   3,
			Host: "broker-3",
			Port: 9092,
			Rack: "us-west-2a",
		},
	}

	assert.Equal(t, "broker-1:9092", brokers[0].Addr())
	assert.Equal(t, []int{1, 2, 3}, BrokerIDs(brokers))
	assert.Equal(
		t,
		map[string][]int{
			"us-west-2a": {1, 3},
			"us-west-2b": {2},
		},
		BrokersPerRack(brokers),
	)
	assert.Equal(t, []string{"us-west-2a", "us-west-2b"}, DistinctRacks(brokers))
}
