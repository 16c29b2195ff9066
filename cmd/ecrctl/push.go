package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicworks/ecrctl/internal/models"
	"github.com/civicworks/ecrctl/pkg/aws"
	"github.com/civicworks/ecrctl/pkg/docker"
	"github.com/civicworks/ecrctl/pkg/formatter"
	"github.com/civicworks/ecrctl/pkg/registry"
)

func newPushCmd() *cobra.Command {
	var contextDir string

	cmd := &cobra.Command{
		Use:   "push [dev|prod]",
		Short: "Build a multi-arch image and push it to an environment registry",
		Long: `push resolves the registry for the given environment (default dev),
authenticates the container engine to it, ensures the buildx builder and the
target repository exist, then runs a no-cache multi-architecture build that
pushes the image directly to the registry.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envArg := ""
			if len(args) == 1 {
				envArg = args[0]
			}
			env, err := registry.ParseEnvironment(envArg)
			if err != nil {
				return err
			}

			// Past this point failures are operational, not usage errors.
			cmd.SilenceUsage = true
			return runPush(cmd, env, contextDir)
		},
	}

	cmd.Flags().StringVar(&contextDir, "context", ".", "Docker build context directory")

	return cmd
}

func runPush(cmd *cobra.Command, env registry.Environment, contextDir string) error {
	ctx := cmd.Context()
	host := env.Host()

	if err := docker.Available(); err != nil {
		return err
	}

	cfg, err := aws.LoadConfig(ctx, region)
	if err != nil {
		return err
	}
	ecrClient := aws.NewECRClient(cfg)

	auth, err := ecrClient.RegistryCredentials(ctx)
	if err != nil {
		return err
	}

	runner := docker.ExecRunner{}
	if err := docker.Login(ctx, runner, host, auth.Username, auth.Password); err != nil {
		return err
	}

	if err := docker.EnsureBuilder(ctx, runner, docker.BuilderName); err != nil {
		return err
	}

	created, err := ecrClient.EnsureRepository(ctx, repository)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created repository %s in %s\n", repository, host)
	}

	imageRef := registry.ImageRef(host, repository, imageTag)
	fmt.Printf("Building and pushing %s (%s)\n", imageRef, docker.Platforms)

	if err := docker.BuildAndPush(ctx, runner, docker.BuildOptions{
		ImageRef:   imageRef,
		ContextDir: contextDir,
	}); err != nil {
		return err
	}

	// Build output is streamed by docker itself; the summary below is what
	// actually landed in the registry.
	image, err := ecrClient.ImageByTag(ctx, repository, imageTag)
	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Pushed %s to %s\n\n", repository, host)
	formatter.PrintImageTable(cmd.OutOrStdout(), []models.ImageInfo{image})
	return nil
}
