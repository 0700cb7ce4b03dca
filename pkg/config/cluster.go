package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/segmentio/reassignctl/pkg/admin"
)

// ClusterConfig stores the information needed to plan reassignments against
// a single cluster: how to reach it, and the default broker pool used when
// the operator doesn't supply a range on the command line.
type ClusterConfig struct {
	Meta ClusterMeta `json:"meta"`
	Spec ClusterSpec `json:"spec"`

	// RootDir is the directory the config was loaded from. Not set in the
	// YAML itself.
	RootDir string `json:"-"`
}

// ClusterMeta contains (mostly immutable) metadata about the cluster.
// Inspired by the meta fields in Kubernetes objects.
type ClusterMeta struct {
	Name        string `json:"name"`
	Region      string `json:"region"`
	Environment string `json:"environment"`
	Description string `json:"description"`
}

// ClusterSpec contains the details necessary to communicate with a kafka
// cluster and the planning defaults for it.
type ClusterSpec struct {
	// BootstrapAddrs is a list of one or more broker bootstrap addresses.
	// These can use IPs or DNS names.
	BootstrapAddrs []string `json:"bootstrapAddrs"`

	// BrokerRangeLow and BrokerRangeHigh bound the default broker pool for
	// planning. If both are zero, the pool is derived from the brokers
	// registered in the cluster instead.
	BrokerRangeLow  int `json:"brokerRangeLow"`
	BrokerRangeHigh int `json:"brokerRangeHigh"`

	// ExcludedBrokers are never selected as replica placements, in any
	// policy or mode.
	ExcludedBrokers []int `json:"excludedBrokers"`

	// ClusterID is checked against the metadata-reported cluster ID if
	// set, to validate that we're talking to the right cluster.
	ClusterID string `json:"clusterID"`

	TLS  TLSConfig  `json:"tls"`
	SASL SASLConfig `json:"sasl"`
}

// TLSConfig stores the TLS settings for cluster access.
type TLSConfig struct {
	Enabled    bool   `json:"enabled"`
	CACertPath string `json:"caCertPath"`
	CertPath   string `json:"certPath"`
	KeyPath    string `json:"keyPath"`
	ServerName string `json:"serverName"`
	SkipVerify bool   `json:"skipVerify"`
}

// SASLConfig stores the SASL settings for cluster access. The password can
// be set directly or pulled from AWS Secrets Manager via SecretsManagerArn.
type SASLConfig struct {
	Enabled           bool   `json:"enabled"`
	Mechanism         string `json:"mechanism"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	SecretsManagerArn string `json:"secretsManagerArn"`
}

// Validate evaluates whether the cluster config is valid. Configuration
// errors are reported before any metadata fetch.
func (c ClusterConfig) Validate() error {
	var err error

	if c.Meta.Name == "" {
		err = multierror.Append(err, errors.New("Name must be set"))
	}
	if c.Meta.Environment == "" {
		err = multierror.Append(err, errors.New("Environment must be set"))
	}
	if len(c.Spec.BootstrapAddrs) == 0 {
		err = multierror.Append(
			err,
			errors.New("At least one bootstrap broker address must be set"),
		)
	}

	if c.Spec.BrokerRangeLow < 0 || c.Spec.BrokerRangeHigh < 0 {
		err = multierror.Append(err, errors.New("Broker range bounds must be non-negative"))
	}
	if c.Spec.BrokerRangeLow > c.Spec.BrokerRangeHigh {
		err = multierror.Append(
			err,
			fmt.Errorf(
				"Broker range low %d exceeds high %d",
				c.Spec.BrokerRangeLow,
				c.Spec.BrokerRangeHigh,
			),
		)
	}
	for _, id := range c.Spec.ExcludedBrokers {
		if id < 0 {
			err = multierror.Append(
				err,
				fmt.Errorf("Excluded broker ID %d is negative", id),
			)
		}
	}

	if c.Spec.SASL.Enabled {
		if _, saslErr := admin.SASLNameToMechanism(c.Spec.SASL.Mechanism); saslErr != nil {
			err = multierror.Append(err, saslErr)
		}
		if c.Spec.SASL.Password != "" && c.Spec.SASL.SecretsManagerArn != "" {
			err = multierror.Append(
				err,
				errors.New("Cannot set both password and secretsManagerArn"),
			)
		}
	}

	return err
}

// NewAdminClient returns a new admin client using the parameters in the
// current cluster config.
func (c ClusterConfig) NewAdminClient(ctx context.Context) (admin.Client, error) {
	saslConfig := admin.SASLConfig{
		Enabled:  c.Spec.SASL.Enabled,
		Username: c.Spec.SASL.Username,
		Password: c.Spec.SASL.Password,
	}

	if c.Spec.SASL.Enabled {
		mechanism, err := admin.SASLNameToMechanism(c.Spec.SASL.Mechanism)
		if err != nil {
			return nil, err
		}
		saslConfig.Mechanism = mechanism

		if c.Spec.SASL.SecretsManagerArn != "" {
			password, err := GetSecretsManagerPassword(ctx, c.Spec.SASL.SecretsManagerArn)
			if err != nil {
				return nil, err
			}
			saslConfig.Password = password
		}
	}

	return admin.NewBrokerAdminClient(
		ctx,
		admin.BrokerAdminClientConfig{
			ConnectorConfig: admin.ConnectorConfig{
				BrokerAddr: c.Spec.BootstrapAddrs[0],
				TLS: admin.TLSConfig{
					Enabled:    c.Spec.TLS.Enabled,
					CACertPath: c.Spec.TLS.CACertPath,
					CertPath:   c.Spec.TLS.CertPath,
					KeyPath:    c.Spec.TLS.KeyPath,
					ServerName: c.Spec.TLS.ServerName,
					SkipVerify: c.Spec.TLS.SkipVerify,
				},
				SASL: saslConfig,
			},
		},
	)
}
