package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// GetSecretsManagerPassword fetches a SASL password from AWS Secrets
// Manager. The secret value can either be a plain string or a JSON object
// with a "password" key.
func GetSecretsManagerPassword(ctx context.Context, arn string) (string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", err
	}

	client := secretsmanager.NewFromConfig(awsCfg)

	resp, err := client.GetSecretValue(
		ctx,
		&secretsmanager.GetSecretValueInput{
			SecretId: aws.String(arn),
		},
	)
	if err != nil {
		return "", fmt.Errorf("Error fetching secret %s: %w", arn, err)
	}

	secretString := aws.ToString(resp.SecretString)

	fields := map[string]string{}
	if err := json.Unmarshal([]byte(secretString), &fields); err == nil {
		if password, ok := fields["password"]; ok {
			return password, nil
		}
		return "", fmt.Errorf("Secret %s has no password field", arn)
	}

	return secretString, nil
}
