package admin

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	log "github.com/sirupsen/logrus"
)

// EnrichBrokerInstances fills in the EC2 instance ID and type for each
// argument broker by looking up its host as a private DNS name. Brokers
// whose hosts can't be matched to an instance are returned unmodified; this
// is display-only information and never affects planning.
func EnrichBrokerInstances(
	ctx context.Context,
	brokers []BrokerInfo,
) ([]BrokerInfo, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	ec2Client := ec2.NewFromConfig(awsCfg)

	hosts := []string{}
	for _, broker := range brokers {
		hosts = append(hosts, broker.Host)
	}

	instancesByHost := map[string]ec2types.Instance{}

	paginator := ec2.NewDescribeInstancesPaginator(
		ec2Client,
		&ec2.DescribeInstancesInput{
			Filters: []ec2types.Filter{
				{
					Name:   aws.String("private-dns-name"),
					Values: hosts,
				},
			},
		},
	)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				instancesByHost[aws.ToString(instance.PrivateDnsName)] = instance
			}
		}
	}

	enriched := []BrokerInfo{}

	for _, broker := range brokers {
		instance, ok := instancesByHost[broker.Host]
		if !ok {
			log.Debugf("No EC2 instance found for broker host %s", broker.Host)
			enriched = append(enriched, broker)
			continue
		}

		broker.InstanceID = aws.ToString(instance.InstanceId)
		broker.InstanceType = string(instance.InstanceType)
		enriched = append(enriched, broker)
	}

	return enriched, nil
}
