// Package apiversion implements discovery and comparison of the numeric API versions
// the Cloud Director endpoint advertises. Versions are plain 'major.minor' decimals
// ('30.0', '36.1'), not semantic versions, and have to be compared numerically:
// '31.0' is greater than '9.0' even though it sorts before it lexicographically.
package apiversion

import (
	"fmt"
	"strconv"
	"strings"
)

// Version represents a numeric API version
type Version struct {
	Major int
	Minor int
}

// Feature gate thresholds of the branding API
var (
	// Baseline is the lowest version exposing the branding and theme endpoints
	Baseline = Version{Major: 30}
	// TenantFeatures is required for per-tenant branding and the portal icon endpoints
	TenantFeatures = Version{Major: 32}
	// BrandingThemesPath is the version at which the system branding read moved
	// from '/cloudapi/branding' to '/cloudapi/branding/themes'
	BrandingThemesPath = Version{Major: 35}
)

// Parse parses a 'major' or 'major.minor' version string into a Version
func Parse(raw string) (Version, error) {
	parts := strings.SplitN(raw, ".", 2)

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("invalid API version '%s'", raw)
	}

	minor := 0
	if len(parts) == 2 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil || minor < 0 {
			return Version{}, fmt.Errorf("invalid API version '%s'", raw)
		}
	}

	return Version{Major: major, Minor: minor}, nil
}

// String renders the version in the 'major.minor' form used on the wire
func (version Version) String() string {
	return fmt.Sprintf("%d.%d", version.Major, version.Minor)
}

// Compare returns -1, 0 or 1 depending on whether version is lower than, equal to
// or higher than other
func (version Version) Compare(other Version) int {
	if version.Major != other.Major {
		if version.Major < other.Major {
			return -1
		}
		return 1
	}
	if version.Minor != other.Minor {
		if version.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// AtLeast checks whether version is greater than or equal to other
func (version Version) AtLeast(other Version) bool {
	return version.Compare(other) >= 0
}
