package subcmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/segmentio/reassignctl/pkg/admin"
	"github.com/segmentio/reassignctl/pkg/config"
	"github.com/segmentio/reassignctl/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type sharedOptions struct {
	brokerAddr            string
	clusterConfig         string
	expandEnv             bool
	saslMechanism         string
	saslPassword          string
	saslUsername          string
	saslSecretsManagerArn string
	tlsCACert             string
	tlsCert               string
	tlsEnabled            bool
	tlsKey                string
	tlsServerName         string
	tlsSkipVerify         bool
}

func (s sharedOptions) validate() error {
	var err error

	if s.clusterConfig == "" && s.brokerAddr == "" {
		err = multierror.Append(
			err,
			errors.New("Must set either broker-addr or cluster-config"),
		)
	}

	if s.clusterConfig != "" {
		clusterConfig, clusterConfigErr := config.LoadClusterFile(s.clusterConfig, s.expandEnv)
		if clusterConfigErr != nil {
			err = multierror.Append(err, clusterConfigErr)
		} else if validateErr := clusterConfig.Validate(); validateErr != nil {
			err = multierror.Append(err, validateErr)
		}

		if s.brokerAddr != "" || s.tlsCACert != "" || s.tlsCert != "" ||
			s.tlsKey != "" || s.tlsServerName != "" || s.saslMechanism != "" {
			log.Warn("Broker and TLS flags are ignored when using cluster-config")
		}

		return err
	}

	useTLS := s.tlsEnabled || s.tlsCACert != "" || s.tlsCert != "" || s.tlsKey != ""
	useSASL := s.saslMechanism != "" || s.saslPassword != "" || s.saslUsername != "" ||
		s.saslSecretsManagerArn != ""

	if useTLS && (s.tlsCert != "" || s.tlsKey != "") &&
		(s.tlsCert == "" || s.tlsKey == "") {
		err = multierror.Append(
			err,
			errors.New("Must set both tls-cert and tls-key if using client certs"),
		)
	}

	if useSASL {
		saslMechanism, saslErr := admin.SASLNameToMechanism(s.saslMechanism)
		if saslErr != nil {
			err = multierror.Append(err, saslErr)
		}

		if saslMechanism == admin.SASLMechanismAWSMSKIAM &&
			(s.saslUsername != "" || s.saslPassword != "") {
			log.Warn("Username and password are ignored if using SASL AWS-MSK-IAM")
		}

		if (s.saslPassword != "" || s.saslUsername != "") && s.saslSecretsManagerArn != "" {
			err = multierror.Append(
				err,
				errors.New(
					"Cannot set both sasl-username or sasl-password and sasl-secrets-manager-arn",
				),
			)
		}
	}

	return err
}

func (s sharedOptions) getAdminClient(ctx context.Context) (admin.Client, error) {
	if s.clusterConfig != "" {
		clusterConfig, err := config.LoadClusterFile(s.clusterConfig, s.expandEnv)
		if err != nil {
			return nil, err
		}
		return clusterConfig.NewAdminClient(ctx)
	}

	var saslMechanism admin.SASLMechanism
	var err error

	if s.saslMechanism != "" {
		saslMechanism, err = admin.SASLNameToMechanism(s.saslMechanism)
		if err != nil {
			return nil, err
		}
	}

	saslPassword := s.saslPassword
	if s.saslSecretsManagerArn != "" {
		saslPassword, err = config.GetSecretsManagerPassword(ctx, s.saslSecretsManagerArn)
		if err != nil {
			return nil, err
		}
	}

	tlsEnabled := s.tlsEnabled || s.tlsCACert != "" || s.tlsCert != "" || s.tlsKey != ""
	saslEnabled := s.saslMechanism != ""

	return admin.NewBrokerAdminClient(
		ctx,
		admin.BrokerAdminClientConfig{
			ConnectorConfig: admin.ConnectorConfig{
				BrokerAddr: s.brokerAddr,
				TLS: admin.TLSConfig{
					Enabled:    tlsEnabled,
					CACertPath: s.tlsCACert,
					CertPath:   s.tlsCert,
					KeyPath:    s.tlsKey,
					ServerName: s.tlsServerName,
					SkipVerify: s.tlsSkipVerify,
				},
				SASL: admin.SASLConfig{
					Enabled:   saslEnabled,
					Mechanism: saslMechanism,
					Username:  s.saslUsername,
					Password:  saslPassword,
				},
			},
		},
	)
}

// getClusterDefaults pulls the default broker pool settings from the cluster
// config if one is in use. A flag-set range takes precedence over the config
// range; the config exclusion list is permanent and gets merged with any
// brokers excluded on the command line.
func (s sharedOptions) getClusterDefaults(
	brokerRangeLow int,
	brokerRangeHigh int,
	excludedBrokers []int,
) (int, int, []int) {
	if s.clusterConfig == "" {
		return brokerRangeLow, brokerRangeHigh, excludedBrokers
	}

	clusterConfig, err := config.LoadClusterFile(s.clusterConfig, s.expandEnv)
	if err != nil {
		// Validation has already reported this; fall back to the flags.
		return brokerRangeLow, brokerRangeHigh, excludedBrokers
	}

	if brokerRangeLow == 0 && brokerRangeHigh == 0 {
		brokerRangeLow = clusterConfig.Spec.BrokerRangeLow
		brokerRangeHigh = clusterConfig.Spec.BrokerRangeHigh
	}
	excludedBrokers = util.UnionInts(excludedBrokers, clusterConfig.Spec.ExcludedBrokers)

	return brokerRangeLow, brokerRangeHigh, excludedBrokers
}

func parseBrokerID(arg string) (int, error) {
	brokerID, err := strconv.Atoi(arg)
	if err != nil || brokerID < 0 {
		return 0, fmt.Errorf("Broker ID must be a non-negative integer, got %q", arg)
	}

	return brokerID, nil
}

func addSharedFlags(cmd *cobra.Command, options *sharedOptions) {
	cmd.PersistentFlags().StringVarP(
		&options.brokerAddr,
		"broker-addr",
		"b",
		"",
		"Broker address",
	)
	cmd.PersistentFlags().StringVar(
		&options.clusterConfig,
		"cluster-config",
		"",
		"Cluster config path",
	)
	cmd.PersistentFlags().BoolVar(
		&options.expandEnv,
		"expand-env",
		false,
		"Expand environment in cluster config",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslMechanism,
		"sasl-mechanism",
		"",
		"SASL mechanism if using SASL (choices: AWS-MSK-IAM, PLAIN, SCRAM-SHA-256, or SCRAM-SHA-512)",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslPassword,
		"sasl-password",
		"",
		"SASL password if using SASL",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslSecretsManagerArn,
		"sasl-secrets-manager-arn",
		"",
		"Secrets Manager ARN to use for fetching SASL password if using SASL",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslUsername,
		"sasl-username",
		"",
		"SASL username if using SASL",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsCACert,
		"tls-ca-cert",
		"",
		"Path to client CA cert PEM file if using TLS",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsCert,
		"tls-cert",
		"",
		"Path to client cert PEM file if using TLS",
	)
	cmd.PersistentFlags().BoolVar(
		&options.tlsEnabled,
		"tls-enabled",
		false,
		"Use TLS for communication with brokers",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsKey,
		"tls-key",
		"",
		"Path to client private key PEM file if using TLS",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsServerName,
		"tls-server-name",
		"",
		"Server name to use for TLS cert verification",
	)
	cmd.PersistentFlags().BoolVar(
		&options.tlsSkipVerify,
		"tls-skip-verify",
		false,
		"Skip hostname verification when using TLS",
	)
}
