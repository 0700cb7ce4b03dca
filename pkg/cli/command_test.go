package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplInputs(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    replCommand
	}{
		{
			description: "Args only",
			input:       "get topics",
			expected: replCommand{
				args:  []string{"get", "topics"},
				flags: map[string]string{},
			},
		},
		{
			description: "Args with flags",
			input:       "scale test-topic 3 --broker-low=2 --broker-high=8",
			expected: replCommand{
				args: []string{"scale", "test-topic", "3"},
				flags: map[string]string{
					"broker-low":  "2",
					"broker-high": "8",
				},
			},
		},
		{
			description: "Valueless flag",
			input:       "decommission 4 --leader-only",
			expected: replCommand{
				args: []string{"decommission", "4"},
				flags: map[string]string{
					"leader-only": "",
				},
			},
		},
		{
			description: "Extra spaces",
			input:       "get  brokers   --aws",
			expected: replCommand{
				args: []string{"get", "brokers"},
				flags: map[string]string{
					"aws": "",
				},
			},
		},
		{
			description: "Leading token that looks like a flag stays an arg",
			input:       "--help",
			expected: replCommand{
				args:  []string{"--help"},
				flags: map[string]string{},
			},
		},
	}

	for _, testCase := range testCases {
		assert.Equal(
			t,
			testCase.expected,
			parseReplInputs(testCase.input),
			testCase.description,
		)
	}
}

func TestGetBoolValue(t *testing.T) {
	command := parseReplInputs(
		"decommission 4 --leader-only --aws=true --debug=false",
	)

	assert.True(t, command.getBoolValue("leader-only"))
	assert.True(t, command.getBoolValue("aws"))
	assert.False(t, command.getBoolValue("debug"))
	assert.False(t, command.getBoolValue("unset"))
}

func TestGetIntValue(t *testing.T) {
	command := parseReplInputs("scale test-topic --broker-low=3 --exclude=x")

	value, err := command.getIntValue("broker-low")
	require.NoError(t, err)
	assert.Equal(t, 3, value)

	value, err = command.getIntValue("unset")
	require.NoError(t, err)
	assert.Equal(t, 0, value)

	_, err = command.getIntValue("exclude")
	assert.Error(t, err)
}

func TestGetIntsValue(t *testing.T) {
	command := parseReplInputs(
		"scale test-topic --exclude=1,4,7 --bogus=1,x",
	)

	values, err := command.getIntsValue("exclude")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 7}, values)

	values, err = command.getIntsValue("unset")
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = command.getIntsValue("bogus")
	assert.Error(t, err)
}

func TestCheckArgs(t *testing.T) {
	command := parseReplInputs("scale test-topic 3 --broker-low=2")

	assert.NoError(
		t,
		command.checkArgs(3, 3, map[string]struct{}{"broker-low": {}}),
	)
	assert.Error(
		t,
		command.checkArgs(2, 2, map[string]struct{}{"broker-low": {}}),
	)
	assert.Error(t, command.checkArgs(3, 3, nil))
	assert.Error(
		t,
		command.checkArgs(3, 3, map[string]struct{}{"broker-high": {}}),
	)
	assert.NoError(
		t,
		command.checkArgs(1, 4, map[string]struct{}{"broker-low": {}}),
	)
}
