package utils

import "github.com/civicworks/ecrctl/pkg/registry"

// regionDescriptiveNames maps the region codes ecrctl accepts to
// descriptive names. ECR is regional; the managed registries live in
// us-east-1, but the flag accepts any commercial region so the tool keeps
// working if a registry is ever relocated.
var regionDescriptiveNames = map[string]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-northeast-2": "Asia Pacific (Seoul)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"ca-central-1":   "Canada (Central)",
	"eu-central-1":   "EU (Frankfurt)",
	"eu-west-1":      "EU (Ireland)",
	"eu-west-2":      "EU (London)",
	"eu-west-3":      "EU (Paris)",
	"eu-north-1":     "EU (Stockholm)",
	"sa-east-1":      "South America (Sao Paulo)",
}

// GetRegionDescriptiveName returns the human-readable region name.
func GetRegionDescriptiveName(region string) string {
	if name, ok := regionDescriptiveNames[region]; ok {
		return name
	}
	return region
}

// IsValidRegion checks if a region is one ecrctl accepts.
func IsValidRegion(region string) bool {
	_, ok := regionDescriptiveNames[region]
	return ok
}

// GetDefaultRegion returns the region the managed registries live in.
func GetDefaultRegion() string {
	return registry.DefaultRegion
}
