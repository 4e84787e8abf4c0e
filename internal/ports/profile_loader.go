package ports

import "github.com/Yumouqianxia/predprobe/internal/domain"

// ProfileLoader resolves and loads a probing profile.
type ProfileLoader interface {
	// LoadProfile loads the profile at path, applying secrets and
	// environment overlays and validating the result.
	LoadProfile(path string) (domain.Profile, error)
}
