package aws

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"

	"github.com/civicworks/ecrctl/internal/models"
)

// ECRAPI is the subset of the ECR API this tool calls. Narrowing the
// surface keeps the client mockable in tests.
type ECRAPI interface {
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	CreateRepository(ctx context.Context, params *ecr.CreateRepositoryInput, optFns ...func(*ecr.Options)) (*ecr.CreateRepositoryOutput, error)
	GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
	DescribeImages(ctx context.Context, params *ecr.DescribeImagesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error)
}

// ECRClient wraps the ECR API calls for one registry account.
type ECRClient struct {
	api    ECRAPI
	region string
}

// NewECRClient creates an ECR client from an AWS config. The config decides
// which registry account the client talks to: the caller's own account, or
// the production account when built from assumed-role credentials.
func NewECRClient(cfg aws.Config) *ECRClient {
	return &ECRClient{
		api:    ecr.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

func newECRClientWithAPI(api ECRAPI, region string) *ECRClient {
	return &ECRClient{api: api, region: region}
}

// EnsureRepository makes sure the named repository exists, creating it when
// the registry reports it missing. Returns true when a create call was
// issued. A repository created concurrently by someone else is treated as
// already existing.
func (c *ECRClient) EnsureRepository(ctx context.Context, name string) (bool, error) {
	_, err := c.api.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err == nil {
		return false, nil
	}

	var notFound *types.RepositoryNotFoundException
	if !errors.As(err, &notFound) {
		return false, fmt.Errorf("failed to describe repository %s: %w", name, err)
	}

	_, err = c.api.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(name),
	})
	if err != nil {
		var exists *types.RepositoryAlreadyExistsException
		if errors.As(err, &exists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create repository %s: %w", name, err)
	}
	return true, nil
}

// RegistryCredentials obtains a registry auth token and decodes it into
// basic credentials usable by a container engine or registry client.
func (c *ECRClient) RegistryCredentials(ctx context.Context) (models.RegistryAuth, error) {
	out, err := c.api.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return models.RegistryAuth{}, fmt.Errorf("failed to get registry authorization token: %w", err)
	}
	if len(out.AuthorizationData) == 0 {
		return models.RegistryAuth{}, fmt.Errorf("registry returned no authorization data")
	}

	data := out.AuthorizationData[0]
	decoded, err := base64.StdEncoding.DecodeString(aws.ToString(data.AuthorizationToken))
	if err != nil {
		return models.RegistryAuth{}, fmt.Errorf("failed to decode authorization token: %w", err)
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return models.RegistryAuth{}, fmt.Errorf("authorization token is not in user:password form")
	}

	return models.RegistryAuth{
		Host:      strings.TrimPrefix(aws.ToString(data.ProxyEndpoint), "https://"),
		Username:  username,
		Password:  password,
		ExpiresAt: data.ExpiresAt,
	}, nil
}

// ImageByTag returns details of the image currently behind a tag.
func (c *ECRClient) ImageByTag(ctx context.Context, repository, tag string) (models.ImageInfo, error) {
	out, err := c.api.DescribeImages(ctx, &ecr.DescribeImagesInput{
		RepositoryName: aws.String(repository),
		ImageIds: []types.ImageIdentifier{
			{ImageTag: aws.String(tag)},
		},
	})
	if err != nil {
		return models.ImageInfo{}, fmt.Errorf("failed to describe image %s:%s: %w", repository, tag, err)
	}
	if len(out.ImageDetails) == 0 {
		return models.ImageInfo{}, fmt.Errorf("image %s:%s not found in registry", repository, tag)
	}

	detail := out.ImageDetails[0]
	info := models.ImageInfo{
		Repository: repository,
		Tag:        tag,
		Digest:     aws.ToString(detail.ImageDigest),
		PushedAt:   detail.ImagePushedAt,
	}
	if detail.RegistryId != nil {
		info.Registry = fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com", aws.ToString(detail.RegistryId), c.region)
	}
	if detail.ImageSizeInBytes != nil {
		info.SizeBytes = *detail.ImageSizeInBytes
	}
	return info, nil
}
