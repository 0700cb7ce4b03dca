package policies

import (
	"math/rand"
	"testing"

	"github.com/segmentio/reassignctl/pkg/plan"
	"github.com/segmentio/reassignctl/pkg/plan/pickers"
	"github.com/stretchr/testify/require"
)

// testPool builds a broker pool over [lowID, highID] minus the argument
// exclusions, failing the test on error.
func testPool(t *testing.T, lowID int, highID int, excluded []int) *plan.BrokerPool {
	pool, err := plan.NewBrokerPool(lowID, highID, excluded)
	require.NoError(t, err)
	return pool
}

// testPicker returns a randomized picker with a deterministic source.
func testPicker(seed int64) *pickers.RandomizedPicker {
	return pickers.NewRandomizedPickerWithSource(rand.New(rand.NewSource(seed)))
}
