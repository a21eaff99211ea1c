// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package driver

import (
	"errors"
	"os/exec"
)

type sysStats struct{}

func initSysStats(n uint64) sysStats {
	return sysStats{}
}

func (sysStats) collect(res *Result) {
}

func setProcessAffinity(v int) {
}

func PerfCommand(perfFlags string, argv ...string) (*exec.Cmd, error) {
	return nil, errors.New("perf profiling requires Linux")
}
