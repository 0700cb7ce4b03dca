package admin

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/segmentio/reassignctl/pkg/util"
)

// FormatBrokers creates a pretty table from a list of brokers. In full mode,
// each broker's non-default config overrides are shown too.
func FormatBrokers(brokers []BrokerInfo, full bool) string {
	buf := &bytes.Buffer{}

	var hasInstances bool
	for _, broker := range brokers {
		if broker.InstanceID != "" {
			hasInstances = true
			break
		}
	}

	headers := []string{
		"ID",
		"Host",
		"Port",
		"Rack",
	}
	if hasInstances {
		headers = append(headers, "Instance", "Instance\nType")
	}
	if full {
		headers = append(headers, "Config")
	}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	for _, broker := range brokers {
		row := []string{
			fmt.Sprintf("%d", broker.ID),
			broker.Host,
			fmt.Sprintf("%d", broker.Port),
			broker.Rack,
		}
		if hasInstances {
			row = append(row, broker.InstanceID, broker.InstanceType)
		}
		if full {
			row = append(row, formatConfig(broker.Config))
		}

		table.Append(row)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// formatConfig renders a config map as sorted key=value lines.
func formatConfig(config map[string]string) string {
	keys := []string{}
	for key := range config {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := []string{}
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", key, config[key]))
	}

	return strings.Join(lines, "\n")
}

// FormatBrokersPerRack creates a pretty table showing the number of brokers
// in each rack.
func FormatBrokersPerRack(brokers []BrokerInfo) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"Rack",
			"Num\nBrokers",
			"Broker\nIDs",
		},
	)
	table.SetAutoWrapText(false)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	brokersPerRack := BrokersPerRack(brokers)

	for _, rack := range util.SortedStringKeys(brokersPerRack) {
		ids := brokersPerRack[rack]

		table.Append(
			[]string{
				rack,
				fmt.Sprintf("%d", len(ids)),
				formatIDs(ids),
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// FormatTopicPartitions creates a pretty table from the argument topic's
// partitions.
func FormatTopicPartitions(topic TopicInfo) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"ID",
			"Leader",
			"Replicas",
			"ISR",
		},
	)
	table.SetAutoWrapText(false)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	for _, partition := range topic.Partitions {
		table.Append(
			[]string{
				fmt.Sprintf("%d", partition.ID),
				fmt.Sprintf("%d", partition.Leader),
				formatIDs(partition.Replicas),
				formatIDs(partition.ISR),
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// FormatTopics creates a pretty table from a list of topics.
func FormatTopics(topics []TopicInfo) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"Name",
			"Partitions",
			"Max\nReplication",
		},
	)
	table.SetAutoWrapText(false)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	for _, topic := range topics {
		table.Append(
			[]string{
				topic.Name,
				fmt.Sprintf("%d", len(topic.Partitions)),
				fmt.Sprintf("%d", topic.MaxReplication()),
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func formatIDs(ids []int) string {
	elements := []string{}
	for _, id := range ids {
		elements = append(elements, fmt.Sprintf("%d", id))
	}

	return strings.Join(elements, ", ")
}
