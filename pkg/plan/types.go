package plan

import (
	"fmt"

	"github.com/segmentio/reassignctl/pkg/util"
)

// ReplicaSet is the ordered list of broker IDs hosting a partition. By
// convention, the first element is the partition leader.
type ReplicaSet []int

// Leader returns the leader broker ID, i.e. the first element.
func (r ReplicaSet) Leader() int {
	return r[0]
}

// Index returns the position of the argument broker in this replica set, or
// -1 if it can't be found.
func (r ReplicaSet) Index(brokerID int) int {
	for i, replica := range r {
		if replica == brokerID {
			return i
		}
	}

	return -1
}

// Contains returns whether the argument broker appears in this replica set.
func (r ReplicaSet) Contains(brokerID int) bool {
	return r.Index(brokerID) != -1
}

// Copy returns a deep copy of this replica set.
func (r ReplicaSet) Copy() ReplicaSet {
	return ReplicaSet(util.CopyInts(r))
}

// Validate evaluates whether this replica set is structurally sound, i.e.
// non-empty and without repeated brokers.
func (r ReplicaSet) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("Replica set is empty")
	}

	seen := map[int]struct{}{}
	for _, replica := range r {
		if _, ok := seen[replica]; ok {
			return fmt.Errorf("Replica set %v repeats broker %d", []int(r), replica)
		}
		seen[replica] = struct{}{}
	}

	return nil
}

// PartitionKey identifies a single topic partition in the cluster.
type PartitionKey struct {
	Topic     string
	Partition int
}

func (k PartitionKey) String() string {
	return fmt.Sprintf("%s/%d", k.Topic, k.Partition)
}

// Entry is the desired replica set for a single partition in a reassignment
// plan.
type Entry struct {
	Topic     string
	Partition int
	Replicas  ReplicaSet
}

// Key returns the partition key for this entry.
func (e Entry) Key() PartitionKey {
	return PartitionKey{Topic: e.Topic, Partition: e.Partition}
}
