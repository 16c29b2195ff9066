package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/civicworks/ecrctl/internal/models"
)

// LoadConfig loads the caller's default AWS config pinned to a region.
// Credential resolution (env, shared config, SSO) is delegated entirely to
// the SDK.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for region %s: %w", region, err)
	}
	return cfg, nil
}

// ConfigWithCredentials returns a copy of base that authenticates with the
// given session credentials instead of the caller's own. Used to scope ECR
// calls to the production account after role assumption.
func ConfigWithCredentials(base aws.Config, creds models.SessionCredentials) aws.Config {
	cfg := base.Copy()
	cfg.Credentials = credentials.NewStaticCredentialsProvider(
		creds.AccessKeyID,
		creds.SecretAccessKey,
		creds.SessionToken,
	)
	return cfg
}
