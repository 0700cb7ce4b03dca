package policies

import (
	"errors"
	"fmt"

	"github.com/segmentio/reassignctl/pkg/plan"
	"github.com/segmentio/reassignctl/pkg/plan/pickers"
	log "github.com/sirupsen/logrus"
)

// DecommissionPolicy replaces one broker, wherever it appears, with another
// broker drawn from the pool or named explicitly by the operator. The
// replacement takes the vacated position, so decommissioning a leader
// designates its replacement as the new leader. Replacement is 1-for-1 and
// never changes the replica count.
type DecommissionPolicy struct {
	pool          *plan.BrokerPool
	picker        pickers.Picker
	subjectBroker int
	leaderOnly    bool
}

var _ plan.Policy = (*DecommissionPolicy)(nil)

// NewDecommissionPolicy returns a DecommissionPolicy that removes the
// argument subject broker. In explicit-replacement mode the pool may be nil.
func NewDecommissionPolicy(
	pool *plan.BrokerPool,
	picker pickers.Picker,
	subjectBroker int,
	leaderOnly bool,
) *DecommissionPolicy {
	return &DecommissionPolicy{
		pool:          pool,
		picker:        picker,
		subjectBroker: subjectBroker,
		leaderOnly:    leaderOnly,
	}
}

func (d *DecommissionPolicy) Name() string {
	return "decommission"
}

func (d *DecommissionPolicy) Apply(
	topic string,
	partition int,
	curr plan.ReplicaSet,
) (plan.ReplicaSet, error) {
	index := curr.Index(d.subjectBroker)
	if index == -1 {
		// The subject doesn't replicate this partition; nothing to do.
		return nil, nil
	}
	if d.leaderOnly && index != 0 {
		log.Debugf(
			"Broker %d is a non-leader replica of %s/%d, leaving partition untouched",
			d.subjectBroker,
			topic,
			partition,
		)
		return nil, nil
	}

	replacement, err := d.picker.Pick(topic, d.pool, curr)
	if err != nil {
		if errors.Is(err, plan.ErrNoCandidate) {
			// An incomplete decommission plan is operationally dangerous,
			// so this aborts the whole run rather than being recorded per
			// partition.
			return nil, fmt.Errorf(
				"%w for broker %d",
				plan.ErrNoReplacementFound,
				d.subjectBroker,
			)
		}
		return nil, err
	}

	desired := curr.Copy()
	desired[index] = replacement

	return desired, nil
}
