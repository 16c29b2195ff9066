package registry

import (
	"fmt"
	"strings"
)

// Environment selects which ECR registry an operation targets.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Fixed constants for the registries this tool manages.
const (
	// DefaultRegion is the region both registries live in.
	DefaultRegion = "us-east-1"

	// RepositoryPrefix namespaces every repository managed by this tool.
	RepositoryPrefix = "civic/"

	// DefaultRepository and DefaultTag identify the image being shipped.
	DefaultRepository = "civic/platform"
	DefaultTag        = "latest"

	// ProdAccountID owns the production registry. Promotion assumes a role
	// in this account.
	ProdAccountID = "590183752049"

	// DevRegistryHost and ProdRegistryHost are the two registry endpoints.
	DevRegistryHost  = "824917158299.dkr.ecr.us-east-1.amazonaws.com"
	ProdRegistryHost = "590183752049.dkr.ecr.us-east-1.amazonaws.com"
)

// ParseEnvironment validates an environment selector. An empty string
// selects dev; anything other than dev or prod is rejected rather than
// silently treated as dev.
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "", string(EnvDev):
		return EnvDev, nil
	case string(EnvProd):
		return EnvProd, nil
	default:
		return "", fmt.Errorf("unknown environment %q (expected dev or prod)", s)
	}
}

// Host returns the registry endpoint for the environment.
func (e Environment) Host() string {
	if e == EnvProd {
		return ProdRegistryHost
	}
	return DevRegistryHost
}

// ImageRef builds a fully qualified image reference for a registry host.
func ImageRef(host, repository, tag string) string {
	return fmt.Sprintf("%s/%s:%s", host, repository, tag)
}

// ValidRepositoryName checks that a repository name carries the managed
// prefix so a typo cannot create repositories outside the civic namespace.
func ValidRepositoryName(name string) error {
	if !strings.HasPrefix(name, RepositoryPrefix) {
		return fmt.Errorf("repository %q must start with %q", name, RepositoryPrefix)
	}
	if strings.HasSuffix(name, "/") {
		return fmt.Errorf("repository %q must name an image, not a namespace", name)
	}
	return nil
}
