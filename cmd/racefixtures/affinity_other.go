//go:build !linux

package main

import "errors"

// pinAcrossCPUs reports that affinity control is unavailable; sched_setaffinity
// is Linux-only and -pin degrades to a warning elsewhere.
func pinAcrossCPUs() error {
	return errors.New("cpu pinning requires linux")
}
