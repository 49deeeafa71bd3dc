// Copyright 2025 The racefixtures Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

//go:build !race

package raceinfo

// Enabled reports if the race detector is compiled in.
const Enabled = false
