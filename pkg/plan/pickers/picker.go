package pickers

import (
	"github.com/segmentio/reassignctl/pkg/plan"
)

// Picker is an interface that chooses a replacement broker for a single
// partition, subject to the constraint that the choice isn't already a
// replica. Keeping selection separate from the replica-list edit means the
// "no duplicate broker in this partition" invariant is enforced in exactly
// one place, regardless of which policy is calling.
type Picker interface {
	// Pick chooses a broker from the argument pool that doesn't appear in
	// used. Implementations return plan.ErrNoCandidate (or a mode-specific
	// error) when there is no feasible choice.
	Pick(topic string, pool *plan.BrokerPool, used plan.ReplicaSet) (int, error)

	// SortRemovals orders the argument non-leader replicas in place by
	// removal preference; callers drop from the tail when shrinking a
	// replica set.
	SortRemovals(topic string, replicas []int)
}
