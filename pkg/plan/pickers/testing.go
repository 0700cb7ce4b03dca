package pickers

import (
	"testing"

	"github.com/segmentio/reassignctl/pkg/plan"
	"github.com/stretchr/testify/require"
)

// testPool builds a broker pool over [lowID, highID] minus the argument
// exclusions, failing the test on error.
func testPool(t *testing.T, lowID int, highID int, excluded []int) *plan.BrokerPool {
	pool, err := plan.NewBrokerPool(lowID, highID, excluded)
	require.NoError(t, err)
	return pool
}
