package admin

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestBrokerConfigsByID(t *testing.T) {
	configsByID := brokerConfigsByID(
		[]kafka.DescribeConfigResponseResource{
			{
				ResourceType: int8(kafka.ResourceTypeBroker),
				ResourceName: "1",
				ConfigEntries: []kafka.DescribeConfigResponseConfigEntry{
					{
						ConfigName:  "log.retention.hours",
						ConfigValue: "168",
					},
					{
						ConfigName:  "num.io.threads",
						ConfigValue: "8",
					},
				},
			},
			{
				ResourceType: int8(kafka.ResourceTypeBroker),
				ResourceName: "3",
				ConfigEntries: []kafka.DescribeConfigResponseConfigEntry{
					{
						ConfigName:  "log.retention.hours",
						ConfigValue: "24",
					},
				},
			},
			{
				ResourceType: int8(kafka.ResourceTypeTopic),
				ResourceName: "test-topic",
				ConfigEntries: []kafka.DescribeConfigResponseConfigEntry{
					{
						ConfigName:  "cleanup.policy",
						ConfigValue: "compact",
					},
				},
			},
			{
				ResourceType: int8(kafka.ResourceTypeBroker),
				ResourceName: "not-a-broker-id",
			},
		},
	)

	assert.Equal(
		t,
		map[int]map[string]string{
			1: {
				"log.retention.hours": "168",
				"num.io.threads":      "8",
			},
			3: {
				"log.retention.hours": "24",
			},
		},
		configsByID,
	)
}
