// Package policies implements the per-partition planning policies: scaling
// a topic's replication factor up or down, and decommissioning a broker.
package policies

import (
	"fmt"

	"github.com/segmentio/reassignctl/pkg/plan"
	"github.com/segmentio/reassignctl/pkg/plan/pickers"
	log "github.com/sirupsen/logrus"
)

// ScalePolicy changes a partition's replica count to a target replication
// factor. Scaling up appends brokers drawn from the pool; scaling down
// truncates randomly-ordered non-leader replicas so repeated shrinks don't
// systematically favor low-numbered brokers. The leader always keeps
// position 0.
type ScalePolicy struct {
	pool              *plan.BrokerPool
	picker            pickers.Picker
	targetReplication int
}

var _ plan.Policy = (*ScalePolicy)(nil)

// NewScalePolicy returns a ScalePolicy over the argument pool and picker.
func NewScalePolicy(
	pool *plan.BrokerPool,
	picker pickers.Picker,
	targetReplication int,
) *ScalePolicy {
	return &ScalePolicy{
		pool:              pool,
		picker:            picker,
		targetReplication: targetReplication,
	}
}

func (s *ScalePolicy) Name() string {
	return "scale"
}

func (s *ScalePolicy) Apply(
	topic string,
	partition int,
	curr plan.ReplicaSet,
) (plan.ReplicaSet, error) {
	if s.targetReplication == 0 {
		// Replication factor zero signals topic-deletion intent; the
		// caller issues a deletion request instead of a reassignment.
		return plan.ReplicaSet{}, nil
	}
	if s.targetReplication < 0 {
		return nil, fmt.Errorf(
			"%w: replication factor %d is negative",
			plan.ErrOutOfRange,
			s.targetReplication,
		)
	}
	if s.targetReplication > s.pool.Size() {
		// A target beyond the pool size can never be filled with distinct
		// brokers, so this is both out of range and a candidate shortage.
		return nil, fmt.Errorf(
			"%w: replication factor %d exceeds the %d-broker pool (%w)",
			plan.ErrOutOfRange,
			s.targetReplication,
			s.pool.Size(),
			plan.ErrNoCandidate,
		)
	}

	if s.targetReplication == len(curr) {
		return curr.Copy(), nil
	}

	if s.targetReplication > len(curr) {
		return s.scaleUp(topic, curr)
	}
	return s.scaleDown(topic, curr), nil
}

func (s *ScalePolicy) scaleUp(
	topic string,
	curr plan.ReplicaSet,
) (plan.ReplicaSet, error) {
	desired := curr.Copy()

	for len(desired) < s.targetReplication {
		brokerID, err := s.picker.Pick(topic, s.pool, desired)
		if err != nil {
			return nil, fmt.Errorf(
				"%w after %d of %d replicas",
				plan.ErrNoCandidate,
				len(desired),
				s.targetReplication,
			)
		}

		desired = append(desired, brokerID)
	}

	return desired, nil
}

func (s *ScalePolicy) scaleDown(
	topic string,
	curr plan.ReplicaSet,
) plan.ReplicaSet {
	// The leader is never a truncation candidate; only the followers are
	// reordered and trimmed.
	followers := curr[1:].Copy()
	s.picker.SortRemovals(topic, followers)

	desired := plan.ReplicaSet{curr.Leader()}
	desired = append(desired, followers[:s.targetReplication-1]...)

	log.Debugf(
		"Scaled down %s partition replicas from %v to %v",
		topic,
		curr,
		desired,
	)
	return desired
}
