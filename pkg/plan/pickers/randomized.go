package pickers

import (
	"math/rand"
	"time"

	"github.com/segmentio/reassignctl/pkg/plan"
)

// RandomizedPicker chooses uniformly at random among all feasible brokers.
// Selection is over the full candidate set on every call, never a sequential
// scan, so choices aren't biased toward numeric proximity to brokers that
// are already in use.
type RandomizedPicker struct {
	random *rand.Rand
}

var _ Picker = (*RandomizedPicker)(nil)

// NewRandomizedPicker returns a RandomizedPicker seeded from the current
// time. The source is seeded once per process so that draws across many
// partitions are independent.
func NewRandomizedPicker() *RandomizedPicker {
	return NewRandomizedPickerWithSource(
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
}

// NewRandomizedPickerWithSource returns a RandomizedPicker that draws from
// the argument source. Used in tests to make choices deterministic.
func NewRandomizedPickerWithSource(random *rand.Rand) *RandomizedPicker {
	return &RandomizedPicker{random: random}
}

func (r *RandomizedPicker) Pick(
	topic string,
	pool *plan.BrokerPool,
	used plan.ReplicaSet,
) (int, error) {
	candidates, err := pool.Candidates(used)
	if err != nil {
		return -1, plan.ErrNoCandidate
	}

	return candidates[r.random.Intn(len(candidates))], nil
}

func (r *RandomizedPicker) SortRemovals(topic string, replicas []int) {
	r.random.Shuffle(
		len(replicas),
		func(i, j int) {
			replicas[i], replicas[j] = replicas[j], replicas[i]
		},
	)
}
