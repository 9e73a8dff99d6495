package pkg

import "github.com/Masterminds/semver/v3"

// ValidSemver reports whether version is a strict semantic version:
// MAJOR.MINOR.PATCH with optional pre-release and build metadata, no "v"
// prefix and no leading zeros.
func ValidSemver(version string) bool {
	_, err := semver.StrictNewVersion(version)
	return err == nil
}
