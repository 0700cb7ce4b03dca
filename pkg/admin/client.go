package admin

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// ErrTopicDoesNotExist is returned by GetTopic when the argument topic isn't
// in the cluster metadata.
var ErrTopicDoesNotExist = errors.New("Topic does not exist")

// Client is an interface for reading cluster state for planning purposes.
// The planner only consumes metadata; it never alters the cluster.
type Client interface {
	// GetClusterID gets the ID of the cluster.
	GetClusterID(ctx context.Context) (string, error)

	// GetBrokers gets information about all brokers in the cluster.
	GetBrokers(ctx context.Context, ids []int) ([]BrokerInfo, error)

	// GetBrokerIDs gets the IDs of all brokers in the cluster.
	GetBrokerIDs(ctx context.Context) ([]int, error)

	// GetTopics gets the partition layout of each named topic; if names is
	// empty, all topics in the cluster are returned.
	GetTopics(ctx context.Context, names []string) ([]TopicInfo, error)

	// GetTopicNames gets just the names of each topic in the cluster.
	GetTopicNames(ctx context.Context) ([]string, error)

	// GetTopic gets the details of a single topic in the cluster.
	GetTopic(ctx context.Context, name string) (TopicInfo, error)

	// GetConnector gets the Connector instance for this cluster.
	GetConnector() *Connector

	// Close closes the client.
	Close() error
}

// BrokerAdminClientConfig contains the configuration settings to construct a
// BrokerAdminClient instance.
type BrokerAdminClientConfig struct {
	ConnectorConfig
}

// BrokerAdminClient is a Client implementation that uses broker APIs only,
// via the kafka-go metadata calls.
type BrokerAdminClient struct {
	config    BrokerAdminClientConfig
	connector *Connector
	client    *kafka.Client
}

var _ Client = (*BrokerAdminClient)(nil)

// NewBrokerAdminClient constructs a new BrokerAdminClient instance.
func NewBrokerAdminClient(
	ctx context.Context,
	config BrokerAdminClientConfig,
) (*BrokerAdminClient, error) {
	connector, err := NewConnector(ctx, config.ConnectorConfig)
	if err != nil {
		return nil, err
	}

	client := &BrokerAdminClient{
		config:    config,
		connector: connector,
		client:    connector.KafkaClient,
	}

	// Check that the cluster is reachable before doing anything else.
	clusterID, err := client.GetClusterID(ctx)
	if err != nil {
		return nil, err
	}
	log.Debugf("Connected to cluster %s", clusterID)

	return client, nil
}

func (c *BrokerAdminClient) GetClusterID(ctx context.Context) (string, error) {
	resp, err := c.client.Metadata(ctx, &kafka.MetadataRequest{Topics: []string{}})
	if err != nil {
		return "", err
	}
	return resp.ClusterID, nil
}

func (c *BrokerAdminClient) GetBrokers(ctx context.Context, ids []int) (
	[]BrokerInfo,
	error,
) {
	resp, err := c.client.Metadata(
		ctx,
		&kafka.MetadataRequest{
			Topics: []string{},
		},
	)
	if err != nil {
		return nil, err
	}

	idsMap := map[int]struct{}{}
	for _, id := range ids {
		idsMap[id] = struct{}{}
	}

	brokerInfos := []BrokerInfo{}
	brokerIDs := []int{}

	for _, broker := range resp.Brokers {
		if _, ok := idsMap[broker.ID]; !ok && len(idsMap) > 0 {
			continue
		}

		brokerInfos = append(
			brokerInfos,
			BrokerInfo{
				ID:   broker.ID,
				Host: broker.Host,
				Port: int32(broker.Port),
				Rack: broker.Rack,
			},
		)
		brokerIDs = append(brokerIDs, broker.ID)
	}

	resources := []kafka.DescribeConfigRequestResource{}
	for _, brokerID := range brokerIDs {
		resources = append(
			resources,
			kafka.DescribeConfigRequestResource{
				ResourceType: kafka.ResourceTypeBroker,
				ResourceName: strconv.Itoa(brokerID),
			},
		)
	}

	configsResp, err := c.client.DescribeConfigs(
		ctx,
		&kafka.DescribeConfigsRequest{
			Resources: resources,
		},
	)
	if err != nil {
		return nil, err
	}

	configsByID := brokerConfigsByID(configsResp.Resources)
	for b := range brokerInfos {
		brokerInfos[b].Config = configsByID[brokerInfos[b].ID]
	}

	sort.Slice(
		brokerInfos,
		func(a, b int) bool {
			return brokerInfos[a].ID < brokerInfos[b].ID
		},
	)
	return brokerInfos, nil
}

// brokerConfigsByID converts broker config resources from a DescribeConfigs
// response into a mapping of broker ID -> config key/values. Resource names
// that aren't broker IDs are skipped.
func brokerConfigsByID(
	resources []kafka.DescribeConfigResponseResource,
) map[int]map[string]string {
	configsByID := map[int]map[string]string{}

	for _, resource := range resources {
		if kafka.ResourceType(resource.ResourceType) != kafka.ResourceTypeBroker {
			continue
		}
		brokerID, err := strconv.Atoi(resource.ResourceName)
		if err != nil {
			log.Debugf("Skipping config resource with name %q", resource.ResourceName)
			continue
		}

		config := map[string]string{}
		for _, entry := range resource.ConfigEntries {
			config[entry.ConfigName] = entry.ConfigValue
		}
		configsByID[brokerID] = config
	}

	return configsByID
}

func (c *BrokerAdminClient) GetBrokerIDs(ctx context.Context) ([]int, error) {
	resp, err := c.client.Metadata(
		ctx,
		&kafka.MetadataRequest{
			Topics: []string{},
		},
	)
	if err != nil {
		return nil, err
	}

	brokerIDs := []int{}
	for _, broker := range resp.Brokers {
		brokerIDs = append(brokerIDs, broker.ID)
	}

	sort.Ints(brokerIDs)
	return brokerIDs, nil
}

func (c *BrokerAdminClient) GetTopics(
	ctx context.Context,
	names []string,
) ([]TopicInfo, error) {
	var topicNames []string
	if len(names) > 0 {
		topicNames = names
	}

	resp, err := c.client.Metadata(
		ctx,
		&kafka.MetadataRequest{
			Topics: topicNames,
		},
	)
	if err != nil {
		return nil, err
	}

	topicInfos := []TopicInfo{}

	for _, topic := range resp.Topics {
		if topic.Error != nil {
			return nil, topic.Error
		}

		topicInfos = append(topicInfos, metadataToTopicInfo(topic))
	}

	return topicInfos, nil
}

func (c *BrokerAdminClient) GetTopicNames(ctx context.Context) ([]string, error) {
	resp, err := c.client.Metadata(ctx, &kafka.MetadataRequest{})
	if err != nil {
		return nil, err
	}

	topicNames := []string{}
	for _, topic := range resp.Topics {
		topicNames = append(topicNames, topic.Name)
	}

	sort.Strings(topicNames)
	return topicNames, nil
}

func (c *BrokerAdminClient) GetTopic(
	ctx context.Context,
	name string,
) (TopicInfo, error) {
	resp, err := c.client.Metadata(
		ctx,
		&kafka.MetadataRequest{
			Topics: []string{name},
		},
	)
	if err != nil {
		return TopicInfo{}, err
	}

	for _, topic := range resp.Topics {
		if topic.Name != name {
			continue
		}
		if topic.Error != nil {
			return TopicInfo{}, topic.Error
		}

		return metadataToTopicInfo(topic), nil
	}

	return TopicInfo{}, ErrTopicDoesNotExist
}

func (c *BrokerAdminClient) GetConnector() *Connector {
	return c.connector
}

func (c *BrokerAdminClient) Close() error {
	return nil
}

// metadataToTopicInfo converts a kafka-go metadata topic into a TopicInfo.
// Partitions are sorted by ID so that downstream iteration order matches
// what operators see in other tooling.
func metadataToTopicInfo(topic kafka.Topic) TopicInfo {
	partitionInfos := []PartitionInfo{}

	for _, partition := range topic.Partitions {
		isr := []int{}
		for _, broker := range partition.Isr {
			isr = append(isr, broker.ID)
		}

		replicas := []int{}
		for _, broker := range partition.Replicas {
			replicas = append(replicas, broker.ID)
		}

		partitionInfos = append(
			partitionInfos,
			PartitionInfo{
				Topic:    topic.Name,
				ID:       partition.ID,
				Leader:   partition.Leader.ID,
				Replicas: replicas,
				ISR:      isr,
			},
		)
	}

	sort.Slice(
		partitionInfos,
		func(a, b int) bool {
			return partitionInfos[a].ID < partitionInfos[b].ID
		},
	)

	return TopicInfo{
		Name:       topic.Name,
		Partitions: partitionInfos,
	}
}
