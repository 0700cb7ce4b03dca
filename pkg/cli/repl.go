package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/olekukonko/tablewriter"
	"github.com/segmentio/reassignctl/pkg/admin"
	"github.com/segmentio/reassignctl/pkg/util"
	log "github.com/sirupsen/logrus"
)

var (
	commandSuggestions = []prompt.Suggest{
		{
			Text:        "get",
			Description: "Get information about one or more resources in the cluster",
		},
		{
			Text:        "scale",
			Description: "Plan a replication factor change for a topic",
		},
		{
			Text:        "decommission",
			Description: "Plan the replacement of a broker",
		},
		{
			Text:        "help",
			Description: "Show all commands",
		},
		{
			Text:        "exit",
			Description: "Quit the repl",
		},
	}

	getSuggestions = []prompt.Suggest{
		{
			Text:        "brokers",
			Description: "Get all brokers",
		},
		{
			Text:        "partitions",
			Description: "Get all partitions for a topic",
		},
		{
			Text:        "topics",
			Description: "Get all topics",
		},
	}

	helpTableStr = helpTable()
)

// PlanningDefaults carries the cluster-level planning settings applied when a
// command doesn't override them: the default broker pool range and the
// permanent exclusion list.
type PlanningDefaults struct {
	BrokerRangeLow  int
	BrokerRangeHigh int
	ExcludedBrokers []int
}

// Repl manages the repl mode for reassignctl.
type Repl struct {
	cliRunner         *CLIRunner
	defaults          PlanningDefaults
	topicSuggestions  []prompt.Suggest
	brokerSuggestions []prompt.Suggest
}

// NewRepl initializes and returns a Repl instance.
func NewRepl(
	ctx context.Context,
	adminClient admin.Client,
	defaults PlanningDefaults,
) (*Repl, error) {
	cliRunner := NewCLIRunner(
		adminClient,
		func(f string, a ...interface{}) {
			fmt.Printf("> ")
			fmt.Printf(f, a...)
			// Add newline since printf doesn't do this automatically
			fmt.Printf("\n")
		},
		true,
	)

	log.Debug("Loading topic names for auto-complete")
	topicNames, err := adminClient.GetTopicNames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(topicNames)

	topicSuggestions := []prompt.Suggest{}
	for _, topicName := range topicNames {
		topicSuggestions = append(
			topicSuggestions,
			prompt.Suggest{
				Text:        topicName,
				Description: fmt.Sprintf("Topic %s", topicName),
			},
		)
	}

	log.Debug("Loading brokers for auto-complete")
	brokerIDs, err := adminClient.GetBrokerIDs(ctx)
	if err != nil {
		return nil, err
	}

	brokerSuggestions := []prompt.Suggest{}
	for _, brokerID := range brokerIDs {
		brokerSuggestions = append(
			brokerSuggestions,
			prompt.Suggest{
				Text:        fmt.Sprintf("%d", brokerID),
				Description: fmt.Sprintf("Broker %d", brokerID),
			},
		)
	}

	return &Repl{
		cliRunner:         cliRunner,
		defaults:          defaults,
		topicSuggestions:  topicSuggestions,
		brokerSuggestions: brokerSuggestions,
	}, nil
}

// Run starts the repl main loop.
func (r *Repl) Run() {
	fmt.Println("Welcome to the reassignctl repl. Type 'help' for available commands.")

	promptObj := prompt.New(
		r.executor,
		r.completer,
		prompt.OptionPrefix(">>> "),
	)
	promptObj.Run()
}

func (r *Repl) executor(in string) {
	in = strings.TrimSpace(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()
	defer signal.Stop(sigChan)

	command := parseReplInputs(in)
	if len(command.args) == 0 {
		return
	}

	switch command.args[0] {
	case "exit":
		fmt.Println("Bye!")
		os.Exit(0)
	case "get":
		if len(command.args) == 1 {
			log.Error("Unrecognized input. Run 'help' for details on available commands.")
			return
		}

		switch command.args[1] {
		case "brokers":
			if err := command.checkArgs(
				2,
				2,
				map[string]struct{}{"aws": {}, "full": {}},
			); err != nil {
				log.Errorf("Error: %+v", err)
				return
			}
			if err := r.cliRunner.GetBrokers(
				ctx,
				command.getBoolValue("full"),
				command.getBoolValue("aws"),
			); err != nil {
				log.Errorf("Error: %+v", err)
				return
			}
		case "partitions":
			if err := command.checkArgs(3, 3, nil); err != nil {
				log.Errorf("Error: %+v", err)
				return
			}
			if err := r.cliRunner.GetPartitions(ctx, command.args[2]); err != nil {
				log.Errorf("Error: %+v", err)
				return
			}
		case "topics":
			if err := command.checkArgs(2, 2, nil); err != nil {
				log.Errorf("Error: %+v", err)
				return
			}
			if err := r.cliRunner.GetTopics(ctx); err != nil {
				log.Errorf("Error: %+v", err)
				return
			}
		default:
			log.Error("Unrecognized input. Run 'help' for details on available commands.")
		}
	case "scale":
		if err := command.checkArgs(
			3,
			3,
			map[string]struct{}{"low": {}, "high": {}, "exclude": {}},
		); err != nil {
			log.Errorf("Error: %+v", err)
			return
		}

		scaleConfig, err := replScaleConfig(command, r.defaults)
		if err != nil {
			log.Errorf("Error: %+v", err)
			return
		}

		if err := r.cliRunner.Scale(ctx, scaleConfig); err != nil {
			log.Errorf("Error: %+v", err)
		}
	case "decommission":
		if err := command.checkArgs(
			2,
			2,
			map[string]struct{}{
				"low":         {},
				"high":        {},
				"exclude":     {},
				"replacement": {},
				"leader-only": {},
				"topic":       {},
			},
		); err != nil {
			log.Errorf("Error: %+v", err)
			return
		}

		decommissionConfig, err := replDecommissionConfig(command, r.defaults)
		if err != nil {
			log.Errorf("Error: %+v", err)
			return
		}

		if err := r.cliRunner.Decommission(ctx, decommissionConfig); err != nil {
			log.Errorf("Error: %+v", err)
		}
	case "help":
		if err := command.checkArgs(1, 1, nil); err != nil {
			log.Errorf("Error: %+v", err)
			return
		}

		fmt.Printf("> Commands:\n%s\n", helpTableStr)
	default:
		if len(in) > 0 {
			log.Error("Unrecognized input. Run 'help' for details on available commands.")
		}
	}
}

func replScaleConfig(
	command replCommand,
	defaults PlanningDefaults,
) (ScaleConfig, error) {
	targetReplication, err := strconv.Atoi(command.args[2])
	if err != nil {
		return ScaleConfig{}, fmt.Errorf("Invalid replication factor: %s", command.args[2])
	}

	low, high, excluded, err := replPoolSettings(command, defaults)
	if err != nil {
		return ScaleConfig{}, err
	}

	return ScaleConfig{
		Topic:             command.args[1],
		TargetReplication: targetReplication,
		BrokerRangeLow:    low,
		BrokerRangeHigh:   high,
		ExcludedBrokers:   excluded,
		Output:            os.Stdout,
	}, nil
}

func replDecommissionConfig(
	command replCommand,
	defaults PlanningDefaults,
) (DecommissionConfig, error) {
	subjectBroker, err := strconv.Atoi(command.args[1])
	if err != nil {
		return DecommissionConfig{}, fmt.Errorf("Invalid broker ID: %s", command.args[1])
	}

	explicitReplacement := -1
	if value, ok := command.flags["replacement"]; ok {
		explicitReplacement, err = strconv.Atoi(value)
		if err != nil {
			return DecommissionConfig{}, fmt.Errorf("Invalid replacement broker: %s", value)
		}
	}
	if explicitReplacement >= 0 {
		// An explicit replacement takes the place of the pool, so the
		// default range doesn't apply to it.
		defaults.BrokerRangeLow = 0
		defaults.BrokerRangeHigh = 0
	}

	low, high, excluded, err := replPoolSettings(command, defaults)
	if err != nil {
		return DecommissionConfig{}, err
	}
	if explicitReplacement >= 0 && (low > 0 || high > 0) {
		return DecommissionConfig{}, fmt.Errorf(
			"Cannot set both a broker range and an explicit replacement",
		)
	}

	config := DecommissionConfig{
		SubjectBroker:       subjectBroker,
		BrokerRangeLow:      low,
		BrokerRangeHigh:     high,
		ExplicitReplacement: explicitReplacement,
		ExcludedBrokers:     excluded,
		LeaderOnly:          command.getBoolValue("leader-only"),
		Output:              os.Stdout,
	}
	if topic, ok := command.flags["topic"]; ok && topic != "" {
		config.Topics = []string{topic}
	}

	return config, nil
}

// replPoolSettings resolves the broker pool settings for a repl command. The
// cluster defaults supply the range when the command doesn't set one; the
// cluster exclusion list is permanent and always merged in.
func replPoolSettings(
	command replCommand,
	defaults PlanningDefaults,
) (int, int, []int, error) {
	low, err := command.getIntValue("low")
	if err != nil {
		return 0, 0, nil, err
	}
	high, err := command.getIntValue("high")
	if err != nil {
		return 0, 0, nil, err
	}
	excluded, err := command.getIntsValue("exclude")
	if err != nil {
		return 0, 0, nil, err
	}

	if low == 0 && high == 0 {
		low = defaults.BrokerRangeLow
		high = defaults.BrokerRangeHigh
	}
	excluded = util.UnionInts(excluded, defaults.ExcludedBrokers)

	return low, high, excluded, nil
}

func (r *Repl) completer(doc prompt.Document) []prompt.Suggest {
	var suggestions []prompt.Suggest
	text := doc.TextBeforeCursor()

	if text != "" {
		words := strings.Split(text, " ")
		if len(words) == 1 {
			suggestions = commandSuggestions
		} else if len(words) == 2 && words[0] == "get" {
			suggestions = getSuggestions
		} else if len(words) == 3 && words[0] == "get" && words[1] == "partitions" {
			suggestions = r.topicSuggestions
		} else if len(words) == 2 && words[0] == "scale" {
			suggestions = r.topicSuggestions
		} else if len(words) == 2 && words[0] == "decommission" {
			suggestions = r.brokerSuggestions
		}
	}

	return prompt.FilterHasPrefix(
		suggestions,
		doc.GetWordBeforeCursor(),
		true,
	)
}

func helpTable() string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(
		[]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
		},
	)
	table.SetColumnSeparator("")
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    false,
			Right:  false,
			Bottom: false,
		},
	)

	table.AppendBulk(
		[][]string{
			{
				"  get brokers [--aws] [--full]",
				"Get all brokers",
			},
			{
				"  get partitions [topic]",
				"Get all partitions for a topic",
			},
			{
				"  get topics",
				"Get all topics",
			},
			{
				"  scale [topic] [factor] [--low=N] [--high=N] [--exclude=N,M]",
				"Plan a replication factor change for a topic",
			},
			{
				"  decommission [broker] [--low=N] [--high=N] [--replacement=N] [--leader-only] [--topic=name]",
				"Plan the replacement of a broker",
			},
			{
				"  exit",
				"Exit the repl",
			},
		},
	)

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
