// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package driver

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strconv"

	shellquote "github.com/kballard/go-shellquote"
	"golang.org/x/sys/unix"
)

// Maxrss is reported in KB on Linux.
const rssMultiplier = 1 << 10

type sysStats struct {
	n      uint64
	rusage unix.Rusage
}

func initSysStats(n uint64) sysStats {
	ss := sysStats{n: n}
	if err := unix.Getrusage(0, &ss.rusage); err != nil {
		log.Printf("Getrusage failed: %v", err)
		ss.n = 0
		// Deliberately ignore the error.
	}
	return ss
}

func (ss sysStats) collect(res *Result) {
	if ss.n == 0 {
		return
	}
	if vm := getVMPeak(); vm != 0 {
		res.Metrics["peak-VM-bytes"] = vm
	}
	usage := new(unix.Rusage)
	if err := unix.Getrusage(0, usage); err != nil {
		log.Printf("Getrusage failed: %v", err)
		// Deliberately ignore the error.
		return
	}
	res.Metrics["peak-RSS-bytes"] = uint64(usage.Maxrss) * rssMultiplier
	res.Metrics["user+sys-ns/op"] = (cpuTime(usage) - cpuTime(&ss.rusage)) / ss.n
}

func cpuTime(usage *unix.Rusage) uint64 {
	return uint64(usage.Utime.Sec)*1e9 + uint64(usage.Utime.Usec*1e3) +
		uint64(usage.Stime.Sec)*1e9 + uint64(usage.Stime.Usec)*1e3
}

var reVMPeak = regexp.MustCompile(`VmPeak:\s*(\d+) kB`)

func getVMPeak() uint64 {
	data, err := os.ReadFile("/proc/self/status")
	if err != nil {
		log.Printf("failed to read /proc/self/status: %v", err)
		return 0
	}
	m := reVMPeak.FindSubmatch(data)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseUint(string(m[1]), 10, 64)
	if err != nil {
		log.Printf("failed to parse VmPeak %q: %v", string(m[1]), err)
		return 0
	}
	return v * 1024
}

func setProcessAffinity(v int) {
	var set unix.CPUSet
	for i := 0; i < 64; i++ {
		if v&(1<<uint(i)) != 0 {
			set.Set(i)
		}
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		log.Printf("failed to set affinity to %#x: %v", v, err)
	}
}

// PerfCommand builds a Linux perf-record invocation around argv. perfFlags
// holds extra perf arguments in shell syntax.
func PerfCommand(perfFlags string, argv ...string) (*exec.Cmd, error) {
	extra, err := shellquote.Split(perfFlags)
	if err != nil {
		return nil, fmt.Errorf("invalid perf flags %q: %v", perfFlags, err)
	}
	args := append([]string{"record", "-o", "perf.data"}, extra...)
	args = append(args, argv...)
	return exec.Command("perf", args...), nil
}
