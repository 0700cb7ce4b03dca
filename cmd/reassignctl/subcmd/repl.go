package subcmd

import (
	"context"

	"github.com/segmentio/reassignctl/pkg/cli"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Short:   "repl allows interactively planning against a cluster",
	PreRunE: replPreRun,
	RunE:    replRun,
}

type replCmdConfig struct {
	shared sharedOptions
}

var replConfig replCmdConfig

func init() {
	addSharedFlags(replCmd, &replConfig.shared)
	RootCmd.AddCommand(replCmd)
}

func replPreRun(cmd *cobra.Command, args []string) error {
	return replConfig.shared.validate()
}

func replRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	adminClient, err := replConfig.shared.getAdminClient(ctx)
	if err != nil {
		return err
	}
	defer adminClient.Close()

	low, high, excluded := replConfig.shared.getClusterDefaults(0, 0, nil)
	repl, err := cli.NewRepl(ctx, adminClient, cli.PlanningDefaults{
		BrokerRangeLow:  low,
		BrokerRangeHigh: high,
		ExcludedBrokers: excluded,
	})
	if err != nil {
		return err
	}

	repl.Run()
	return nil
}
