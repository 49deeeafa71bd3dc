//go:build linux

package main

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinAcrossCPUs widens the process affinity mask to every CPU the machine
// has. Fixtures that need true parallelism to interleave fire far more
// often when workers land on distinct cores than when a constrained mask
// inherited from a container or taskset serializes them.
func pinAcrossCPUs() error {
	var set unix.CPUSet
	for cpu := 0; cpu < runtime.NumCPU(); cpu++ {
		set.Set(cpu)
	}
	return unix.SchedSetaffinity(0, &set)
}
