package docker

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// BuilderName is the buildx builder used for multi-architecture builds.
	BuilderName = "civic-multiarch"

	// Platforms are the architectures every published image carries.
	Platforms = "linux/amd64,linux/arm64"
)

// BuildOptions configures a multi-architecture build that pushes directly
// to a registry.
type BuildOptions struct {
	ImageRef   string // fully qualified registry/repository:tag
	ContextDir string // build context, "." when empty
	Builder    string // buildx builder, BuilderName when empty
	Platforms  string // Platforms when empty
}

// Available checks that the docker binary is on PATH. The error carries an
// install hint because there is nothing the tool can do without it.
func Available() error {
	if _, err := exec.LookPath("docker"); err != nil {
		return fmt.Errorf("docker not found in PATH; install it from https://docs.docker.com/engine/install/")
	}
	return nil
}

// Login authenticates the container engine to a registry. The password goes
// through stdin so it never appears in the process list.
func Login(ctx context.Context, runner CommandRunner, host, username, password string) error {
	err := runner.RunInput(ctx, strings.NewReader(password),
		"docker", "login", "--username", username, "--password-stdin", host)
	if err != nil {
		return fmt.Errorf("failed to authenticate to %s: %w", host, err)
	}
	return nil
}

// EnsureBuilder makes sure a buildx builder capable of multi-architecture
// builds exists and is selected, creating it on first use.
func EnsureBuilder(ctx context.Context, runner CommandRunner, name string) error {
	if name == "" {
		name = BuilderName
	}
	if _, err := runner.RunOutput(ctx, "docker", "buildx", "inspect", name); err == nil {
		if err := runner.Run(ctx, "docker", "buildx", "use", name); err != nil {
			return fmt.Errorf("failed to select buildx builder %s: %w", name, err)
		}
		return nil
	}
	if err := runner.Run(ctx, "docker", "buildx", "create", "--name", name, "--driver", "docker-container", "--use"); err != nil {
		return fmt.Errorf("failed to create buildx builder %s: %w", name, err)
	}
	return nil
}

// BuildAndPush runs a no-cache multi-architecture build that pushes the
// result directly to the registry in the image reference.
func BuildAndPush(ctx context.Context, runner CommandRunner, opts BuildOptions) error {
	if opts.ImageRef == "" {
		return fmt.Errorf("image reference is required")
	}
	contextDir := opts.ContextDir
	if contextDir == "" {
		contextDir = "."
	}
	builder := opts.Builder
	if builder == "" {
		builder = BuilderName
	}
	platforms := opts.Platforms
	if platforms == "" {
		platforms = Platforms
	}

	args := []string{
		"buildx", "build",
		"--builder", builder,
		"--platform", platforms,
		"--no-cache",
		"--push",
		"-t", opts.ImageRef,
		contextDir,
	}
	if err := runner.Run(ctx, "docker", args...); err != nil {
		return fmt.Errorf("failed to build and push %s: %w", opts.ImageRef, err)
	}
	return nil
}
