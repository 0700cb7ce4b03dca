package plan

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// FormatResult creates a pretty table from a plan result, showing the
// current and desired replicas side-by-side. The curr argument maps each
// partition to its (leader-first) replica set before planning; replicas that
// changed are highlighted if color is enabled.
func FormatResult(result *Result, curr map[PartitionKey]ReplicaSet) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"Topic",
			"Partition",
			"Current\nReplicas",
			"Desired\nReplicas",
		},
	)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(
		[]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
		},
	)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	for _, entry := range result.Entries {
		currReplicas := curr[entry.Key()]

		table.Append(
			[]string{
				entry.Topic,
				fmt.Sprintf("%d", entry.Partition),
				formatReplicas(currReplicas, nil),
				formatReplicas(entry.Replicas, currReplicas),
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// formatReplicas renders a replica list, highlighting members that don't
// appear in the reference set.
func formatReplicas(replicas ReplicaSet, reference ReplicaSet) string {
	elements := []string{}

	for _, replica := range replicas {
		element := strconv.Itoa(replica)

		if reference != nil && !reference.Contains(replica) {
			element = color.New(color.FgGreen, color.Bold).Sprint(element)
		}

		elements = append(elements, element)
	}

	return fmt.Sprintf("[%s]", strings.Join(elements, ", "))
}
