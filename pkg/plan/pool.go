package plan

import (
	"fmt"
	"sort"
)

// BrokerPool is an immutable description of the brokers that a planner is
// allowed to place replicas on. It's constructed once per invocation, either
// from an inclusive ID range or from an explicit ID set (e.g. the brokers
// currently registered in the cluster), minus a permanent exclusion list.
type BrokerPool struct {
	lowID   int
	highID  int
	members map[int]struct{}
}

// NewBrokerPool returns a pool over the inclusive broker ID range
// [lowID, highID], minus the argument exclusions.
func NewBrokerPool(lowID int, highID int, excluded []int) (*BrokerPool, error) {
	if lowID < 0 {
		return nil, fmt.Errorf("Broker IDs must be non-negative (got low %d)", lowID)
	}
	if lowID > highID {
		return nil, fmt.Errorf(
			"Broker range low %d exceeds high %d",
			lowID,
			highID,
		)
	}

	ids := []int{}
	for id := lowID; id <= highID; id++ {
		ids = append(ids, id)
	}

	pool := newPoolFromIDs(ids, excluded)
	pool.lowID = lowID
	pool.highID = highID
	return pool, nil
}

// NewStaticBrokerPool returns a pool over an explicit broker ID set, minus
// the argument exclusions. Used when the pool comes from cluster metadata
// rather than an operator-supplied range.
func NewStaticBrokerPool(ids []int, excluded []int) (*BrokerPool, error) {
	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("Broker IDs must be non-negative (got %d)", id)
		}
	}

	pool := newPoolFromIDs(ids, excluded)

	first := true
	for id := range pool.members {
		if first || id < pool.lowID {
			pool.lowID = id
		}
		if first || id > pool.highID {
			pool.highID = id
		}
		first = false
	}

	return pool, nil
}

func newPoolFromIDs(ids []int, excluded []int) *BrokerPool {
	excludedMap := map[int]struct{}{}
	for _, id := range excluded {
		excludedMap[id] = struct{}{}
	}

	members := map[int]struct{}{}
	for _, id := range ids {
		if _, ok := excludedMap[id]; ok {
			continue
		}
		members[id] = struct{}{}
	}

	return &BrokerPool{members: members}
}

// Contains returns whether the argument broker is selectable from this pool.
func (p *BrokerPool) Contains(brokerID int) bool {
	_, ok := p.members[brokerID]
	return ok
}

// Size returns the number of selectable brokers in this pool.
func (p *BrokerPool) Size() int {
	return len(p.members)
}

// IDs returns the selectable broker IDs in this pool, sorted ascending.
func (p *BrokerPool) IDs() []int {
	ids := []int{}
	for id := range p.members {
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids
}

// Candidates returns the selectable broker IDs that don't appear in the
// argument used list, sorted ascending for deterministic downstream
// iteration. Returns ErrEmptyPool if nothing is left; callers treat this as
// a per-partition condition, not a fatal one.
func (p *BrokerPool) Candidates(used []int) ([]int, error) {
	usedMap := map[int]struct{}{}
	for _, id := range used {
		usedMap[id] = struct{}{}
	}

	candidates := []int{}
	for id := range p.members {
		if _, ok := usedMap[id]; ok {
			continue
		}
		candidates = append(candidates, id)
	}

	if len(candidates) == 0 {
		return nil, ErrEmptyPool
	}

	sort.Ints(candidates)
	return candidates, nil
}
