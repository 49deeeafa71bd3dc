package fixtures

import (
	"github.com/kolkov/racefixtures/internal/fixture/syncprim"
	"github.com/kolkov/racefixtures/internal/raceinfo"
)

// Version information for the concurrency fixture catalogue.
const (
	// Version is the current version of the fixture catalogue.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides build information about the fixture catalogue.
type Info struct {
	// Version is the catalogue version string.
	Version string

	// RaceDetector indicates whether the binary carries the Go race
	// detector; the racy half's demonstrations skip themselves when it
	// does.
	RaceDetector bool

	// DeadlockDetector indicates whether the deadlock-detecting mutexes
	// are built in (the deadlock build tag).
	DeadlockDetector bool
}

// GetInfo returns build information about the fixture catalogue.
//
// Example:
//
//	info := fixtures.GetInfo()
//	fmt.Printf("racefixtures %s (race detector: %v)\n", info.Version, info.RaceDetector)
func GetInfo() Info {
	return Info{
		Version:          Version,
		RaceDetector:     raceinfo.Enabled,
		DeadlockDetector: syncprim.DeadlockEnabled,
	}
}
