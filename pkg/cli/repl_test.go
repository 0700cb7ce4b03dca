package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplScaleConfigDefaults(t *testing.T) {
	defaults := PlanningDefaults{
		BrokerRangeLow:  2,
		BrokerRangeHigh: 8,
		ExcludedBrokers: []int{4},
	}

	testCases := []struct {
		description      string
		input            string
		expectedLow      int
		expectedHigh     int
		expectedExcluded []int
	}{
		{
			description:      "Cluster defaults fill unset settings",
			input:            "scale test-topic 3",
			expectedLow:      2,
			expectedHigh:     8,
			expectedExcluded: []int{4},
		},
		{
			description:      "Flags override the default range",
			input:            "scale test-topic 3 --low=10 --high=20",
			expectedLow:      10,
			expectedHigh:     20,
			expectedExcluded: []int{4},
		},
		{
			description:      "Flag exclusions merge with the cluster list",
			input:            "scale test-topic 3 --exclude=1,5",
			expectedLow:      2,
			expectedHigh:     8,
			expectedExcluded: []int{1, 4, 5},
		},
	}

	for _, testCase := range testCases {
		command := parseReplInputs(testCase.input)
		config, err := replScaleConfig(command, defaults)
		require.NoError(t, err, testCase.description)

		assert.Equal(t, "test-topic", config.Topic, testCase.description)
		assert.Equal(t, 3, config.TargetReplication, testCase.description)
		assert.Equal(t, testCase.expectedLow, config.BrokerRangeLow, testCase.description)
		assert.Equal(t, testCase.expectedHigh, config.BrokerRangeHigh, testCase.description)
		assert.Equal(
			t,
			testCase.expectedExcluded,
			config.ExcludedBrokers,
			testCase.description,
		)
	}
}

func TestReplScaleConfigNoDefaults(t *testing.T) {
	command := parseReplInputs("scale test-topic 3")
	config, err := replScaleConfig(command, PlanningDefaults{})
	require.NoError(t, err)

	// No range anywhere means the pool gets derived from the cluster.
	assert.Equal(t, 0, config.BrokerRangeLow)
	assert.Equal(t, 0, config.BrokerRangeHigh)
	assert.Equal(t, []int{}, config.ExcludedBrokers)
}

func TestReplDecommissionConfigDefaults(t *testing.T) {
	defaults := PlanningDefaults{
		BrokerRangeLow:  2,
		BrokerRangeHigh: 8,
		ExcludedBrokers: []int{4},
	}

	command := parseReplInputs("decommission 3 --exclude=6")
	config, err := replDecommissionConfig(command, defaults)
	require.NoError(t, err)

	assert.Equal(t, 3, config.SubjectBroker)
	assert.Equal(t, 2, config.BrokerRangeLow)
	assert.Equal(t, 8, config.BrokerRangeHigh)
	assert.Equal(t, []int{4, 6}, config.ExcludedBrokers)
	assert.Equal(t, -1, config.ExplicitReplacement)
}

func TestReplDecommissionConfigExplicitReplacement(t *testing.T) {
	defaults := PlanningDefaults{
		BrokerRangeLow:  2,
		BrokerRangeHigh: 8,
	}

	// An explicit replacement replaces the pool entirely, so the default
	// range must not conflict with it.
	command := parseReplInputs("decommission 3 --replacement=7")
	config, err := replDecommissionConfig(command, defaults)
	require.NoError(t, err)

	assert.Equal(t, 7, config.ExplicitReplacement)
	assert.Equal(t, 0, config.BrokerRangeLow)
	assert.Equal(t, 0, config.BrokerRangeHigh)

	// A range set on the command itself still conflicts.
	command = parseReplInputs("decommission 3 --replacement=7 --low=1 --high=5")
	_, err = replDecommissionConfig(command, defaults)
	require.Error(t, err)
}
