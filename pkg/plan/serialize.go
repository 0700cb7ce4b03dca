package plan

import (
	"encoding/json"
)

// PlanVersion is the version field expected by the reassignment executor.
const PlanVersion = 1

type wirePartition struct {
	Topic     string `json:"topic"`
	Partition int    `json:"partition"`
	Replicas  []int  `json:"replicas"`
}

type wirePlan struct {
	Partitions []wirePartition `json:"partitions"`
	Version    int             `json:"version"`
}

// MarshalPlan renders the argument entries into the JSON reassignment format
// consumed by the executor. Replicas are in leader-first order and skipped
// partitions simply don't appear; a zero-entry plan serializes to an empty
// partitions array, not null.
func MarshalPlan(entries []Entry) ([]byte, error) {
	partitions := []wirePartition{}

	for _, entry := range entries {
		partitions = append(
			partitions,
			wirePartition{
				Topic:     entry.Topic,
				Partition: entry.Partition,
				Replicas:  []int(entry.Replicas),
			},
		)
	}

	return json.MarshalIndent(
		wirePlan{
			Partitions: partitions,
			Version:    PlanVersion,
		},
		"",
		"  ",
	)
}
