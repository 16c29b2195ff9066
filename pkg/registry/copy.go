package registry

import (
	"context"
	"fmt"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/crane"

	"github.com/civicworks/ecrctl/internal/models"
)

// Keychain resolves registry hosts to the ECR basic credentials obtained
// for them. Hosts without an entry resolve to anonymous access.
type Keychain struct {
	auths map[string]authn.AuthConfig
}

// NewKeychain builds a keychain from decoded registry credentials.
func NewKeychain(auths ...models.RegistryAuth) *Keychain {
	kc := &Keychain{auths: make(map[string]authn.AuthConfig, len(auths))}
	for _, a := range auths {
		kc.auths[a.Host] = authn.AuthConfig{
			Username: a.Username,
			Password: a.Password,
		}
	}
	return kc
}

// Resolve implements authn.Keychain.
func (k *Keychain) Resolve(target authn.Resource) (authn.Authenticator, error) {
	if cfg, ok := k.auths[target.RegistryStr()]; ok {
		return authn.FromConfig(cfg), nil
	}
	return authn.Anonymous, nil
}

// Copy transfers an image from src to dst without a local build step,
// preserving a multi-architecture index when the source has one. Both
// references must be fully qualified.
func Copy(ctx context.Context, src, dst string, kc authn.Keychain) error {
	if err := crane.Copy(src, dst, crane.WithContext(ctx), crane.WithAuthFromKeychain(kc)); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}
