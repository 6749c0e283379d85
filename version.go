// Package rsigserver provides version information for the subsetting tools.
package rsigserver

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of the tools.
	VersionMajor = 1
	// VersionMinor represents the current minor version of the tools.
	VersionMinor = 0
	// VersionPatch represents the current patch version of the tools.
	VersionPatch = 0
)

// Version is the full version string.
var Version string

func init() {
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
