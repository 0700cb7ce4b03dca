package admin

import (
	"fmt"
	"sort"

	"github.com/segmentio/reassignctl/pkg/util"
)

// BrokerInfo represents the information stored about a broker in the
// cluster metadata.
type BrokerInfo struct {
	ID           int               `json:"id"`
	Host         string            `json:"host"`
	Port         int32             `json:"port"`
	Rack         string            `json:"rack"`
	InstanceID   string            `json:"instanceID"`
	InstanceType string            `json:"instanceType"`
	Config       map[string]string `json:"config"`
}

// Addr returns the address of the argument broker in host:port form.
func (b BrokerInfo) Addr() string {
	return fmt.Sprintf("%s:%d", b.Host, b.Port)
}

// TopicInfo represents the information stored about a topic in the cluster
// metadata.
type TopicInfo struct {
	Name       string          `json:"name"`
	Partitions []PartitionInfo `json:"partitions"`
}

// PartitionInfo represents the information stored about a topic partition in
// the cluster metadata.
type PartitionInfo struct {
	Topic    string `json:"topic"`
	ID       int    `json:"ID"`
	Leader   int    `json:"leader"`
	Replicas []int  `json:"replicas"`
	ISR      []int  `json:"isr"`
}

// LeaderFirstReplicas returns the partition's replicas with the current
// leader moved to the front; the relative order of the other replicas is
// preserved. If the reported leader isn't in the replica list (e.g. the
// partition is offline), the replicas are returned as reported.
func (p PartitionInfo) LeaderFirstReplicas() []int {
	replicas := util.CopyInts(p.Replicas)

	for i, replica := range replicas {
		if replica == p.Leader {
			copy(replicas[1:i+1], replicas[0:i])
			replicas[0] = p.Leader
			break
		}
	}

	return replicas
}

// PartitionIDs returns the IDs of the partitions in this topic.
func (t TopicInfo) PartitionIDs() []int {
	ids := []int{}

	for _, partition := range t.Partitions {
		ids = append(ids, partition.ID)
	}

	return ids
}

// MaxReplication returns the maximum replica count of any partition in this
// topic.
func (t TopicInfo) MaxReplication() int {
	maxReplication := 0

	for _, partition := range t.Partitions {
		if len(partition.Replicas) > maxReplication {
			maxReplication = len(partition.Replicas)
		}
	}

	return maxReplication
}

// BrokerIDs returns the IDs from the argument brokers.
func BrokerIDs(brokers []BrokerInfo) []int {
	ids := []int{}

	for _, broker := range brokers {
		ids = append(ids, broker.ID)
	}

	return ids
}

// BrokersPerRack returns a mapping of rack -> broker IDs.
func BrokersPerRack(brokers []BrokerInfo) map[string][]int {
	brokersPerRack := map[string][]int{}

	for _, broker := range brokers {
		brokersPerRack[broker.Rack] = append(
			brokersPerRack[broker.Rack],
			broker.ID,
		)
	}

	return brokersPerRack
}

// DistinctRacks returns the distinct racks among the argument brokers,
// sorted.
func DistinctRacks(brokers []BrokerInfo) []string {
	racksMap := map[string]struct{}{}

	for _, broker := range brokers {
		racksMap[broker.Rack] = struct{}{}
	}

	racks := []string{}
	for rack := range racksMap {
		racks = append(racks, rack)
	}

	sort.Strings(racks)
	return racks
}
