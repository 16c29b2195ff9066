package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civicworks/ecrctl/pkg/registry"
)

func TestIsValidRegion(t *testing.T) {
	assert.True(t, IsValidRegion("us-east-1"))
	assert.True(t, IsValidRegion("eu-west-2"))
	assert.False(t, IsValidRegion("mars-north-1"))
	assert.False(t, IsValidRegion(""))
}

func TestGetDefaultRegion(t *testing.T) {
	assert.Equal(t, registry.DefaultRegion, GetDefaultRegion())
	assert.True(t, IsValidRegion(GetDefaultRegion()), "default region must be accepted")
}

func TestGetRegionDescriptiveName(t *testing.T) {
	assert.Equal(t, "US East (N. Virginia)", GetRegionDescriptiveName("us-east-1"))
	// Unknown regions echo back rather than guessing.
	assert.Equal(t, "xx-unknown-1", GetRegionDescriptiveName("xx-unknown-1"))
}
