package subcmd

import (
	"context"
	"errors"
	"os"

	"github.com/segmentio/reassignctl/pkg/cli"
	"github.com/segmentio/reassignctl/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var decommissionCmd = &cobra.Command{
	Use:     "decommission [broker ID]",
	Short:   "plan the replacement of a broker across all of its partitions",
	Args:    cobra.ExactArgs(1),
	PreRunE: decommissionPreRun,
	RunE:    decommissionRun,
}

type decommissionCmdConfig struct {
	brokerRangeLow      int
	brokerRangeHigh     int
	explicitReplacement int
	excludedBrokers     []int
	leaderOnly          bool
	topics              []string
	output              string

	shared sharedOptions
}

var decommissionConfig decommissionCmdConfig

func init() {
	decommissionCmd.Flags().IntVar(
		&decommissionConfig.brokerRangeLow,
		"broker-low",
		0,
		"Lowest broker ID eligible as a replacement",
	)
	decommissionCmd.Flags().IntVar(
		&decommissionConfig.brokerRangeHigh,
		"broker-high",
		0,
		"Highest broker ID eligible as a replacement; if low and high are both unset, the pool is derived from the cluster",
	)
	decommissionCmd.Flags().IntVar(
		&decommissionConfig.explicitReplacement,
		"replacement",
		-1,
		"Use this broker as the replacement instead of drawing from a pool",
	)
	decommissionCmd.Flags().IntSliceVar(
		&decommissionConfig.excludedBrokers,
		"exclude",
		[]int{},
		"Broker IDs that must never be selected",
	)
	decommissionCmd.Flags().BoolVar(
		&decommissionConfig.leaderOnly,
		"leader-only",
		false,
		"Only touch partitions where the broker is currently leader",
	)
	decommissionCmd.Flags().StringSliceVar(
		&decommissionConfig.topics,
		"topic",
		[]string{},
		"Restrict planning to these topics (default: all topics)",
	)
	decommissionCmd.Flags().StringVarP(
		&decommissionConfig.output,
		"output",
		"o",
		"",
		"Write the plan to this path instead of stdout",
	)

	addSharedFlags(decommissionCmd, &decommissionConfig.shared)
	RootCmd.AddCommand(decommissionCmd)
}

func decommissionPreRun(cmd *cobra.Command, args []string) error {
	if decommissionConfig.explicitReplacement >= 0 &&
		(decommissionConfig.brokerRangeLow > 0 || decommissionConfig.brokerRangeHigh > 0) {
		return errors.New("Cannot set both a broker range and an explicit replacement")
	}

	return decommissionConfig.shared.validate()
}

func decommissionRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	subjectBroker, err := parseBrokerID(args[0])
	if err != nil {
		return err
	}

	adminClient, err := decommissionConfig.shared.getAdminClient(ctx)
	if err != nil {
		return err
	}
	defer adminClient.Close()

	low, high, excluded := decommissionConfig.shared.getClusterDefaults(
		decommissionConfig.brokerRangeLow,
		decommissionConfig.brokerRangeHigh,
		decommissionConfig.excludedBrokers,
	)

	output := os.Stdout
	if decommissionConfig.output != "" {
		output, err = os.Create(decommissionConfig.output)
		if err != nil {
			return err
		}
		defer output.Close()
	}

	cliRunner := cli.NewCLIRunner(
		adminClient,
		log.Infof,
		!noSpinner && util.InTerminal(),
	)
	return cliRunner.Decommission(
		ctx,
		cli.DecommissionConfig{
			SubjectBroker:       subjectBroker,
			Topics:              decommissionConfig.topics,
			BrokerRangeLow:      low,
			BrokerRangeHigh:     high,
			ExplicitReplacement: decommissionConfig.explicitReplacement,
			ExcludedBrokers:     excluded,
			LeaderOnly:          decommissionConfig.leaderOnly,
			Output:              output,
		},
	)
}
