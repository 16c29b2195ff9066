package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/civicworks/ecrctl/internal/version"
	"github.com/civicworks/ecrctl/pkg/registry"
	"github.com/civicworks/ecrctl/pkg/utils"
)

var (
	region     string
	repository string
	imageTag   string
)

// startStepSpinner creates and starts a spinner with a message for a
// long-running step.
func startStepSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = fmt.Sprintf(" %s ...", message)
	s.Start()
	return s
}

func newRootCmd() *cobra.Command {
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "ecrctl",
		Short: "Build, push and promote container images across ECR registries",
		Long: `ecrctl orchestrates container image publishing against Amazon ECR:
it builds and pushes multi-architecture images to the dev or prod registry,
and promotes already-pushed images from dev to prod under an MFA-gated
assumed-role session.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !utils.IsValidRegion(region) {
				return fmt.Errorf("invalid region %q", region)
			}
			if err := registry.ValidRepositoryName(repository); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(version.Get())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.PersistentFlags().StringVar(&region, "region", registry.DefaultRegion,
		fmt.Sprintf("AWS region of the registries (default: %s, %s)", registry.DefaultRegion, utils.GetRegionDescriptiveName(registry.DefaultRegion)))
	rootCmd.PersistentFlags().StringVar(&repository, "repository", registry.DefaultRepository,
		fmt.Sprintf("Repository to operate on (must start with %q)", registry.RepositoryPrefix))
	rootCmd.PersistentFlags().StringVar(&imageTag, "tag", registry.DefaultTag,
		"Image tag to build or promote")

	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newPromoteCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
