package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/segmentio/reassignctl/pkg/admin"
	"github.com/segmentio/reassignctl/pkg/plan"
	"github.com/segmentio/reassignctl/pkg/plan/pickers"
	"github.com/segmentio/reassignctl/pkg/plan/policies"
	log "github.com/sirupsen/logrus"
)

const (
	spinnerCharSet  = 36
	spinnerDuration = 200 * time.Millisecond
)

// CLIRunner is a utility that runs planning workflows from either the
// command-line or the repl.
type CLIRunner struct {
	adminClient admin.Client
	printer     func(f string, a ...interface{})
	spinnerObj  *spinner.Spinner
}

// NewCLIRunner creates and returns a new CLIRunner instance.
func NewCLIRunner(
	adminClient admin.Client,
	printer func(f string, a ...interface{}),
	showSpinner bool,
) *CLIRunner {
	var spinnerObj *spinner.Spinner

	if showSpinner {
		spinnerObj = spinner.New(
			spinner.CharSets[spinnerCharSet],
			spinnerDuration,
			spinner.WithWriter(os.Stderr),
			spinner.WithHiddenCursor(true),
		)
		spinnerObj.Prefix = "Loading: "
	}

	return &CLIRunner{
		adminClient: adminClient,
		printer:     printer,
		spinnerObj:  spinnerObj,
	}
}

// GetBrokers fetches the brokers in the cluster and prints them out in table
// form.
func (c *CLIRunner) GetBrokers(ctx context.Context, full bool, awsInstances bool) error {
	c.startSpinner()

	brokers, err := c.adminClient.GetBrokers(ctx, nil)
	if err != nil {
		c.stopSpinner()
		return err
	}

	if awsInstances {
		brokers, err = admin.EnrichBrokerInstances(ctx, brokers)
		if err != nil {
			c.stopSpinner()
			return err
		}
	}
	c.stopSpinner()

	c.printer(
		"Cluster has %d broker(s) across %d rack(s)",
		len(brokers),
		len(admin.DistinctRacks(brokers)),
	)
	c.printer("Brokers:\n%s", admin.FormatBrokers(brokers, full))
	c.printer("Brokers per rack:\n%s", admin.FormatBrokersPerRack(brokers))

	return nil
}

// GetTopics fetches the topics in the cluster and prints them out in table
// form.
func (c *CLIRunner) GetTopics(ctx context.Context) error {
	c.startSpinner()

	topics, err := c.adminClient.GetTopics(ctx, nil)
	c.stopSpinner()
	if err != nil {
		return err
	}

	c.printer("Topics:\n%s", admin.FormatTopics(topics))
	return nil
}

// GetPartitions fetches the partition layout of a single topic and prints it
// out in table form.
func (c *CLIRunner) GetPartitions(ctx context.Context, topic string) error {
	c.startSpinner()

	topicInfo, err := c.adminClient.GetTopic(ctx, topic)
	c.stopSpinner()
	if err != nil {
		return err
	}

	c.printer("Partitions for topic %s:\n%s", topic, admin.FormatTopicPartitions(topicInfo))
	return nil
}

// ScaleConfig contains the parameters for a scale planning run.
type ScaleConfig struct {
	Topic             string
	TargetReplication int

	// BrokerRangeLow and BrokerRangeHigh bound the broker pool. If high is
	// zero and low is zero, the pool is derived from the brokers registered
	// in the cluster.
	BrokerRangeLow  int
	BrokerRangeHigh int
	ExcludedBrokers []int

	// Picker overrides the default randomized picker. Used in tests.
	Picker pickers.Picker

	// Output receives the serialized plan.
	Output io.Writer
}

// Scale plans a replication-factor change for every partition of a topic and
// writes the resulting plan to the configured output. Per-partition failures
// are reported as diagnostics and don't block the rest of the plan.
func (c *CLIRunner) Scale(ctx context.Context, config ScaleConfig) error {
	pool, err := c.buildPool(
		ctx,
		config.BrokerRangeLow,
		config.BrokerRangeHigh,
		config.ExcludedBrokers,
	)
	if err != nil {
		return err
	}

	c.startSpinner()
	topicInfo, err := c.adminClient.GetTopic(ctx, config.Topic)
	c.stopSpinner()
	if err != nil {
		return err
	}

	picker := config.Picker
	if picker == nil {
		picker = pickers.NewRandomizedPicker()
	}

	log.Debugf(
		"Planning over partitions %v of topic %s",
		topicInfo.PartitionIDs(),
		config.Topic,
	)

	builder := plan.NewBuilder(
		policies.NewScalePolicy(pool, picker, config.TargetReplication),
	)

	result, err := builder.Build(topicInfo.Partitions)
	if err != nil {
		return err
	}

	if config.TargetReplication == 0 {
		// An empty replica list is a deletion sentinel, not an assignment;
		// emitting it as a reassignment would be destructive if applied.
		log.Warnf(
			"Target replication factor 0 signals deletion of topic %s (%d partitions); submit a topic deletion request instead of a reassignment. No plan emitted.",
			config.Topic,
			len(result.Entries),
		)
		return nil
	}

	return c.emitPlan(result, topicInfo.Partitions, config.Output)
}

// DecommissionConfig contains the parameters for a decommission planning
// run.
type DecommissionConfig struct {
	SubjectBroker int

	// Topics restricts planning to the named topics; if empty, every topic
	// in the cluster is planned.
	Topics []string

	// BrokerRangeLow and BrokerRangeHigh bound the replacement pool. If
	// both are zero the pool is derived from the brokers registered in the
	// cluster. Mutually exclusive with ExplicitReplacement.
	BrokerRangeLow  int
	BrokerRangeHigh int

	// ExplicitReplacement names the replacement broker directly; -1 means
	// unset.
	ExplicitReplacement int

	ExcludedBrokers []int
	LeaderOnly      bool

	// Picker overrides the default picker. Used in tests.
	Picker pickers.Picker

	// Output receives the serialized plan.
	Output io.Writer
}

// Decommission plans the replacement of one broker across every partition
// that it replicates. Unlike Scale, a partition with no feasible
// replacement aborts the whole run; a partial decommission plan would leave
// the broker looking evacuated when it isn't.
func (c *CLIRunner) Decommission(ctx context.Context, config DecommissionConfig) error {
	var picker pickers.Picker
	var pool *plan.BrokerPool
	var err error

	switch {
	case config.Picker != nil:
		picker = config.Picker
	case config.ExplicitReplacement >= 0:
		picker = pickers.NewExplicitPicker(config.ExplicitReplacement)
	default:
		picker = pickers.NewRandomizedPicker()
	}

	if config.ExplicitReplacement < 0 {
		pool, err = c.buildPool(
			ctx,
			config.BrokerRangeLow,
			config.BrokerRangeHigh,
			config.ExcludedBrokers,
		)
		if err != nil {
			return err
		}
	}

	c.startSpinner()
	topics, err := c.adminClient.GetTopics(ctx, config.Topics)
	c.stopSpinner()
	if err != nil {
		return err
	}

	partitions := []admin.PartitionInfo{}
	for _, topic := range topics {
		partitions = append(partitions, topic.Partitions...)
	}

	builder := plan.NewBuilder(
		policies.NewDecommissionPolicy(
			pool,
			picker,
			config.SubjectBroker,
			config.LeaderOnly,
		),
	)

	result, err := builder.Build(partitions)
	if err != nil {
		return err
	}

	return c.emitPlan(result, partitions, config.Output)
}

// emitPlan prints the human-readable summary and diagnostics, then writes
// the serialized plan to the output. Diagnostics go through the logger so
// they can never corrupt the plan JSON.
func (c *CLIRunner) emitPlan(
	result *plan.Result,
	partitions []admin.PartitionInfo,
	output io.Writer,
) error {
	currs := map[plan.PartitionKey]plan.ReplicaSet{}
	for _, partition := range partitions {
		key := plan.PartitionKey{Topic: partition.Topic, Partition: partition.ID}
		currs[key] = plan.ReplicaSet(partition.LeaderFirstReplicas())
	}

	c.printer(
		"Planned %d partition(s):\n%s",
		len(result.Entries),
		plan.FormatResult(result, currs),
	)

	if summary := result.ErrorSummary(); summary != nil {
		log.Warnf(
			"Skipped %d partition(s) with errors: %+v",
			len(result.PartitionErrors),
			summary,
		)
	}

	serialized, err := plan.MarshalPlan(result.Entries)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(output, "%s\n", serialized); err != nil {
		return err
	}

	return nil
}

// buildPool constructs the broker pool for a planning run, either from the
// operator-supplied range or, if no range was given, from the brokers
// currently registered in the cluster.
func (c *CLIRunner) buildPool(
	ctx context.Context,
	lowID int,
	highID int,
	excluded []int,
) (*plan.BrokerPool, error) {
	if lowID == 0 && highID == 0 {
		c.startSpinner()
		brokerIDs, err := c.adminClient.GetBrokerIDs(ctx)
		c.stopSpinner()
		if err != nil {
			return nil, err
		}

		log.Debugf("Deriving broker pool from cluster brokers: %v", brokerIDs)
		return plan.NewStaticBrokerPool(brokerIDs, excluded)
	}

	return plan.NewBrokerPool(lowID, highID, excluded)
}

func (c *CLIRunner) startSpinner() {
	if c.spinnerObj != nil {
		c.spinnerObj.Start()
	}
}

func (c *CLIRunner) stopSpinner() {
	if c.spinnerObj != nil && c.spinnerObj.Active() {
		c.spinnerObj.Stop()
	}
}
