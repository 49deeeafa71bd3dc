// Copyright 2025 The racefixtures Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

//go:build race

// Package raceinfo reports whether the build carries the Go race detector.
//
// The racy half of the fixture catalogue contains genuine data races. Under
// `go test -race` those races are found (that is the whole point of the
// catalogue), which makes the test binary fail. Demonstration tests consult
// Enabled and skip themselves so the safe half can still be verified in an
// instrumented run.
package raceinfo

// Enabled reports if the race detector is compiled in.
const Enabled = true
