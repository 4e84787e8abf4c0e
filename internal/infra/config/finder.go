package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

// ProfileFile is the profile file name searched for upward from the
// working directory.
const ProfileFile = "predprobe.yaml"

// Finder locates a probing profile by searching for predprobe.yaml upward.
type Finder struct {
	ProfileFileName string
}

func NewFinder() *Finder {
	return &Finder{ProfileFileName: ProfileFile}
}

// FindProfile returns the path of the nearest profile file at or above
// startDir.
func (f *Finder) FindProfile(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "config.findprofile",
			Kind: domain.KindInvalidProfile,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "config.findprofile",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If caller passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		p := filepath.Join(cur, f.ProfileFileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", &domain.OpError{
				Op:   "config.findprofile",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
