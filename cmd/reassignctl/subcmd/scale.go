package subcmd

import (
	"context"
	"os"

	"github.com/segmentio/reassignctl/pkg/cli"
	"github.com/segmentio/reassignctl/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var scaleCmd = &cobra.Command{
	Use:     "scale [topic]",
	Short:   "plan a replication factor change for a topic",
	Args:    cobra.ExactArgs(1),
	PreRunE: scalePreRun,
	RunE:    scaleRun,
}

type scaleCmdConfig struct {
	replicationFactor int
	brokerRangeLow    int
	brokerRangeHigh   int
	excludedBrokers   []int
	output            string

	shared sharedOptions
}

var scaleConfig scaleCmdConfig

func init() {
	scaleCmd.Flags().IntVarP(
		&scaleConfig.replicationFactor,
		"replication-factor",
		"r",
		-1,
		"Target replication factor (0 signals topic deletion)",
	)
	scaleCmd.Flags().IntVar(
		&scaleConfig.brokerRangeLow,
		"broker-low",
		0,
		"Lowest broker ID eligible for new replicas",
	)
	scaleCmd.Flags().IntVar(
		&scaleConfig.brokerRangeHigh,
		"broker-high",
		0,
		"Highest broker ID eligible for new replicas; if low and high are both unset, the pool is derived from the cluster",
	)
	scaleCmd.Flags().IntSliceVar(
		&scaleConfig.excludedBrokers,
		"exclude",
		[]int{},
		"Broker IDs that must never be selected",
	)
	scaleCmd.Flags().StringVarP(
		&scaleConfig.output,
		"output",
		"o",
		"",
		"Write the plan to this path instead of stdout",
	)

	if err := scaleCmd.MarkFlagRequired("replication-factor"); err != nil {
		log.Fatal(err)
	}

	addSharedFlags(scaleCmd, &scaleConfig.shared)
	RootCmd.AddCommand(scaleCmd)
}

func scalePreRun(cmd *cobra.Command, args []string) error {
	return scaleConfig.shared.validate()
}

func scaleRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	adminClient, err := scaleConfig.shared.getAdminClient(ctx)
	if err != nil {
		return err
	}
	defer adminClient.Close()

	low, high, excluded := scaleConfig.shared.getClusterDefaults(
		scaleConfig.brokerRangeLow,
		scaleConfig.brokerRangeHigh,
		scaleConfig.excludedBrokers,
	)

	output := os.Stdout
	if scaleConfig.output != "" {
		output, err = os.Create(scaleConfig.output)
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
	return cliRunner.Scale(
		ctx,
		cli.ScaleConfig{
			Topic:             args[0],
			TargetReplication: scaleConfig.replicationFactor,
			BrokerRangeLow:    low,
			BrokerRangeHigh:   high,
			ExcludedBrokers:   excluded,
			Output:            output,
		},
	)
}
