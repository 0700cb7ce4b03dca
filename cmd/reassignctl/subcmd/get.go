package subcmd

import (
	"context"
	"fmt"

	"github.com/segmentio/reassignctl/pkg/cli"
	"github.com/segmentio/reassignctl/pkg/util"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:               "get [resource type]",
	Short:             "get information about cluster resources",
	PersistentPreRunE: getPreRun,
}

type getCmdConfig struct {
	full         bool
	awsInstances bool

	shared sharedOptions
}

var getConfig getCmdConfig

func init() {
	addSharedFlags(getCmd, &getConfig.shared)
	getCmd.AddCommand(
		brokersCmd(),
		partitionsCmd(),
		topicsCmd(),
	)
	RootCmd.AddCommand(getCmd)
}

func getPreRun(cmd *cobra.Command, args []string) error {
	if err := RootCmd.PersistentPreRunE(cmd, args); err != nil {
		return err
	}
	return getConfig.shared.validate()
}

func getCliRunner(ctx context.Context) (*cli.CLIRunner, error) {
	adminClient, err := getConfig.shared.getAdminClient(ctx)
	if err != nil {
		return nil, err
	}

	return cli.NewCLIRunner(
		adminClient,
		func(f string, a ...interface{}) {
			fmt.Printf(f, a...)
			fmt.Printf("\n")
		},
		!noSpinner && util.InTerminal(),
	), nil
}

func brokersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brokers",
		Short: "Displays descriptions of each broker in the cluster.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cliRunner, err := getCliRunner(ctx)
			if err != nil {
				return err
			}
			return cliRunner.GetBrokers(ctx, getConfig.full, getConfig.awsInstances)
		},
		PreRunE: getPreRun,
	}
	cmd.Flags().BoolVar(
		&getConfig.full,
		"full",
		false,
		"Show each broker's config overrides",
	)
	cmd.Flags().BoolVar(
		&getConfig.awsInstances,
		"aws-instances",
		false,
		"Look up EC2 instance details for each broker",
	)

	return cmd
}

func partitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "partitions [topic]",
		Short: "Displays the partition layout of a topic.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cliRunner, err := getCliRunner(ctx)
			if err != nil {
				return err
			}
			return cliRunner.GetPartitions(ctx, args[0])
		},
		PreRunE: getPreRun,
	}
}

func topicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "Displays descriptions of each topic in the cluster.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cliRunner, err := getCliRunner(ctx)
			if err != nil {
				return err
			}
			return cliRunner.GetTopics(ctx)
		},
		PreRunE: getPreRun,
	}
}
