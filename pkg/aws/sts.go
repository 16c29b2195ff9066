package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/civicworks/ecrctl/internal/models"
)

const (
	promoteSessionName = "ecrctl-promote"

	// Session duration for promotions. Long enough for a large multi-arch
	// copy, short enough that a leaked session is of limited use.
	sessionDurationSeconds = 3600
)

// STSAPI is the subset of the STS API used for MFA-gated role assumption.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// STSClient wraps the STS calls needed to open a promotion session.
type STSClient struct {
	api STSAPI
}

// NewSTSClient creates an STS client from an AWS config.
func NewSTSClient(cfg aws.Config) *STSClient {
	return &STSClient{api: sts.NewFromConfig(cfg)}
}

func newSTSClientWithAPI(api STSAPI) *STSClient {
	return &STSClient{api: api}
}

// MFADeviceSerial derives the caller's virtual MFA device ARN from their
// identity. Only plain IAM users carry an MFA device this tool can name;
// already-assumed roles must start a promotion from their user identity.
func (c *STSClient) MFADeviceSerial(ctx context.Context) (string, error) {
	out, err := c.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	callerARN := aws.ToString(out.Arn)
	account := aws.ToString(out.Account)

	// arn:aws:iam::123456789012:user/path/alice -> alice
	_, resource, ok := strings.Cut(callerARN, ":user/")
	if !ok {
		return "", fmt.Errorf("caller %s is not an IAM user; run the promotion from a user identity with an MFA device", callerARN)
	}
	parts := strings.Split(resource, "/")
	username := parts[len(parts)-1]

	return fmt.Sprintf("arn:aws:iam::%s:mfa/%s", account, username), nil
}

// AssumeRoleWithMFA exchanges an MFA code for short-lived credentials in the
// target role. The credentials live only in memory for the duration of the
// promotion.
func (c *STSClient) AssumeRoleWithMFA(ctx context.Context, roleARN, mfaSerial, mfaToken string) (models.SessionCredentials, error) {
	out, err := c.api.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(promoteSessionName),
		SerialNumber:    aws.String(mfaSerial),
		TokenCode:       aws.String(mfaToken),
		DurationSeconds: aws.Int32(sessionDurationSeconds),
	})
	if err != nil {
		return models.SessionCredentials{}, fmt.Errorf("failed to assume role %s: %w", roleARN, err)
	}
	if out.Credentials == nil {
		return models.SessionCredentials{}, fmt.Errorf("role assumption for %s returned no credentials", roleARN)
	}

	creds := models.SessionCredentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
	}
	if out.Credentials.Expiration != nil {
		creds.Expires = *out.Credentials.Expiration
	}
	return creds, nil
}

// RoleARN builds the ARN of a promotion role in the given account.
func RoleARN(accountID, roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)
}
