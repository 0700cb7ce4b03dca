package plan

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/segmentio/reassignctl/pkg/admin"
	log "github.com/sirupsen/logrus"
)

// Policy derives the desired replica set for a single partition from its
// current, leader-first replica set. A nil replica set with a nil error
// means the policy elected to skip the partition; skipped partitions are
// omitted from the plan.
type Policy interface {
	// Name returns a short name for the policy, for logging.
	Name() string

	// Apply returns the desired replica set for the argument partition.
	Apply(topic string, partition int, curr ReplicaSet) (ReplicaSet, error)
}

// Result is the outcome of one planning run: the desired replica set per
// partition, plus the partitions whose policy application failed
// recoverably.
type Result struct {
	Entries         []Entry
	PartitionErrors map[PartitionKey]error
}

// ErrorSummary aggregates the per-partition errors into a single error, or
// returns nil if every partition succeeded. Partitions are reported in
// sorted order so the summary is stable.
func (r *Result) ErrorSummary() error {
	if len(r.PartitionErrors) == 0 {
		return nil
	}

	keys := []PartitionKey{}
	for key := range r.PartitionErrors {
		keys = append(keys, key)
	}
	sort.Slice(
		keys,
		func(a, b int) bool {
			if keys[a].Topic != keys[b].Topic {
				return keys[a].Topic < keys[b].Topic
			}
			return keys[a].Partition < keys[b].Partition
		},
	)

	var err error
	for _, key := range keys {
		err = multierror.Append(
			err,
			fmt.Errorf("%s: %v", key, r.PartitionErrors[key]),
		)
	}

	return err
}

// Builder runs a policy over every partition reported by the metadata
// source, in the order received, and accumulates the results. Recoverable
// per-partition failures are recorded without halting the run; fatal
// failures abort immediately and discard anything already planned.
type Builder struct {
	policy Policy
}

// NewBuilder returns a Builder that applies the argument policy.
func NewBuilder(policy Policy) *Builder {
	return &Builder{policy: policy}
}

// Build folds the policy over the argument partitions and returns the
// accumulated plan.
func (b *Builder) Build(partitions []admin.PartitionInfo) (*Result, error) {
	result := &Result{
		Entries:         []Entry{},
		PartitionErrors: map[PartitionKey]error{},
	}

	for _, partition := range partitions {
		key := PartitionKey{Topic: partition.Topic, Partition: partition.ID}
		curr := ReplicaSet(partition.LeaderFirstReplicas())

		if err := curr.Validate(); err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrBadMetadata, key, err)
		}

		desired, err := b.policy.Apply(partition.Topic, partition.ID, curr)
		if err != nil {
			if IsFatal(err) {
				return nil, fmt.Errorf("%s policy failed for %s: %w", b.policy.Name(), key, err)
			}

			log.Debugf("Recording error for partition %s: %v", key, err)
			result.PartitionErrors[key] = err
			continue
		}
		if desired == nil {
			log.Debugf("Skipping partition %s", key)
			continue
		}

		result.Entries = append(
			result.Entries,
			Entry{
				Topic:     partition.Topic,
				Partition: partition.ID,
				Replicas:  desired,
			},
		)
	}

	return result, nil
}
