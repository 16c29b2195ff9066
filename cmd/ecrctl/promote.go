package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicworks/ecrctl/internal/models"
	"github.com/civicworks/ecrctl/pkg/aws"
	"github.com/civicworks/ecrctl/pkg/formatter"
	"github.com/civicworks/ecrctl/pkg/registry"
)

const defaultPromoteRole = "civic-elevated"

func newPromoteCmd() *cobra.Command {
	var roleName string
	var mfaToken string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Copy the image from the dev registry to the prod registry",
		Long: `promote opens an MFA-gated assumed-role session in the production
account, authenticates to both registries, ensures the destination
repository exists, and copies the image from dev to prod without a local
build step. The multi-architecture index is preserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runPromote(cmd, roleName, mfaToken)
		},
	}

	cmd.Flags().StringVar(&roleName, "role", defaultPromoteRole,
		"IAM role in the production account to assume")
	cmd.Flags().StringVar(&mfaToken, "mfa-token", "",
		"Current code from the caller's MFA device (required)")
	_ = cmd.MarkFlagRequired("mfa-token")

	return cmd
}

func runPromote(cmd *cobra.Command, roleName, mfaToken string) error {
	ctx := cmd.Context()

	baseCfg, err := aws.LoadConfig(ctx, region)
	if err != nil {
		return err
	}

	stsClient := aws.NewSTSClient(baseCfg)
	mfaSerial, err := stsClient.MFADeviceSerial(ctx)
	if err != nil {
		return err
	}

	roleARN := aws.RoleARN(registry.ProdAccountID, roleName)
	creds, err := stsClient.AssumeRoleWithMFA(ctx, roleARN, mfaSerial, mfaToken)
	if err != nil {
		return err
	}
	formatter.PrintSessionInfo(cmd.OutOrStdout(), models.SessionInfo{
		RoleARN:   roleARN,
		MFASerial: mfaSerial,
		Expires:   creds.Expires,
	})

	prodCfg := aws.ConfigWithCredentials(baseCfg, creds)
	srcECR := aws.NewECRClient(baseCfg)
	dstECR := aws.NewECRClient(prodCfg)

	srcAuth, err := srcECR.RegistryCredentials(ctx)
	if err != nil {
		return fmt.Errorf("source registry: %w", err)
	}
	dstAuth, err := dstECR.RegistryCredentials(ctx)
	if err != nil {
		return fmt.Errorf("destination registry: %w", err)
	}

	created, err := dstECR.EnsureRepository(ctx, repository)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created repository %s in %s\n", repository, registry.ProdRegistryHost)
	}

	src := registry.ImageRef(registry.DevRegistryHost, repository, imageTag)
	dst := registry.ImageRef(registry.ProdRegistryHost, repository, imageTag)

	s := startStepSpinner(fmt.Sprintf("Copying %s to prod", repository))
	err = registry.Copy(ctx, src, dst, registry.NewKeychain(srcAuth, dstAuth))
	if err != nil {
		s.FinalMSG = fmt.Sprintf("✗ Promotion of %s failed\n", repository)
		s.Stop()
		return err
	}
	s.FinalMSG = fmt.Sprintf("✓ Promoted %s to prod\n\n", repository)
	s.Stop()

	image, err := dstECR.ImageByTag(ctx, repository, imageTag)
	if err != nil {
		return err
	}
	formatter.PrintImageTable(cmd.OutOrStdout(), []models.ImageInfo{image})
	return nil
}
