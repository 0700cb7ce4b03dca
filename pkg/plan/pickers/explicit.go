package pickers

import (
	"github.com/segmentio/reassignctl/pkg/plan"
)

// ExplicitPicker always chooses a single, operator-supplied broker. The
// operator intent overrides pool bounds, so the choice isn't checked against
// the pool; it's only rejected if it already appears in the replica set
// being modified (self-replacement is operator error, not something to
// silently deduplicate).
type ExplicitPicker struct {
	brokerID int
}

var _ Picker = (*ExplicitPicker)(nil)

// NewExplicitPicker returns an ExplicitPicker that picks the argument
// broker.
func NewExplicitPicker(brokerID int) *ExplicitPicker {
	return &ExplicitPicker{brokerID: brokerID}
}

func (e *ExplicitPicker) Pick(
	topic string,
	pool *plan.BrokerPool,
	used plan.ReplicaSet,
) (int, error) {
	if used.Contains(e.brokerID) {
		return -1, plan.ErrInvalidExplicitTarget
	}

	return e.brokerID, nil
}

// SortRemovals keeps the argument ordering; explicit mode has no opinion on
// which replicas to drop.
func (e *ExplicitPicker) SortRemovals(topic string, replicas []int) {}
