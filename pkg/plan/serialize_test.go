package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalPlan(t *testing.T) {
	contents, err := MarshalPlan(
		[]Entry{
			{
				Topic:     "topic-a",
				Partition: 0,
				Replicas:  ReplicaSet{3, 0, 2},
			},
			{
				Topic:     "topic-a",
				Partition: 1,
				Replicas:  ReplicaSet{1, 2, 4},
			},
			{
				Topic:     "topic-b",
				Partition: 0,
				Replicas:  ReplicaSet{5},
			},
		},
	)
	require.NoError(t, err)

	expected := `{
  "partitions": [
    {
      "topic": "topic-a",
      "partition": 0,
      "replicas": [
        3,
        0,
        2
      ]
    },
    {
      "topic": "topic-a",
      "partition": 1,
      "replicas": [
        1,
        2,
        4
      ]
    },
    {
      "topic": "topic-b",
      "partition": 0,
      "replicas": [
        5
      ]
    }
  ],
  "version": 1
}`
	assert.Equal(t, expected, string(contents))
}

func TestMarshalPlanEmpty(t *testing.T) {
	contents, err := MarshalPlan(nil)
	require.NoError(t, err)

	expected := `{
  "partitions": [],
  "version": 1
}`
	assert.Equal(t, expected, string(contents))
}
