// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver contains the benchmarking logic behind the medbench
// command. A benchmark is a function of the iteration count; the driver runs
// it with increasing counts until a run lasts long enough, repeats that
// benchnum times, keeps the fastest run, and reports metrics in a
// machine-readable form. CPU profiles of the individual runs are merged into
// a single profile per benchmark.
package driver

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
)

var (
	benchNum      = 5
	benchTime     = time.Second
	affinity      = 0
	tmpDir        = os.TempDir()
	cpuProfileDir = ""
	memProfileDir = ""
)

// SetFlags registers the driver's flags on f.
func SetFlags(f *flag.FlagSet) {
	f.IntVar(&benchNum, "benchnum", 5, "number of benchmark runs")
	f.DurationVar(&benchTime, "benchtime", time.Second, "run enough iterations of each benchmark to take the specified time")
	f.IntVar(&affinity, "affinity", 0, "process affinity mask (Linux only)")
	f.StringVar(&tmpDir, "tmpdir", os.TempDir(), "dir for temporary files")
	f.StringVar(&cpuProfileDir, "cpuprofile", "", "write a merged CPU profile per benchmark to the given directory")
	f.StringVar(&memProfileDir, "memprofile", "", "write a heap profile per benchmark to the given directory")
}

// Result contains all the interesting data about benchmark execution.
type Result struct {
	N        uint64        // number of iterations
	Duration time.Duration // total run duration
	RunTime  uint64        // ns/op
	Metrics  map[string]uint64
}

func MakeResult() Result {
	return Result{Metrics: make(map[string]uint64)}
}

var setupOnce sync.Once

// Benchmark runs f several times, collects stats, chooses the best run and
// writes the requested profiles. name labels the profile files.
func Benchmark(name string, f func(uint64)) Result {
	setupOnce.Do(func() {
		if affinity != 0 {
			setProcessAffinity(affinity)
		}
	})
	resetWatchdog()

	res := MakeResult()
	var profiles []*profile.Profile
	for i := 0; i < benchNum; i++ {
		res1, prof := runBenchmark(f)
		if res.N == 0 || res.RunTime > res1.RunTime {
			res = res1
		}
		// Always take RSS and sys memory metrics from the last run.
		// They only grow, and seem to converge to some eigen value.
		for k, v := range res1.Metrics {
			if k == "peak-RSS-bytes" || k == "peak-VM-bytes" || strings.HasPrefix(k, "sys-") {
				res.Metrics[k] = v
			}
		}
		if prof != nil {
			profiles = append(profiles, prof)
		}
	}

	if cpuProfileDir != "" && len(profiles) > 0 {
		merged, err := profile.Merge(profiles)
		if err != nil {
			log.Printf("failed to merge CPU profiles: %v", err)
		} else if err := writeProfile(filepath.Join(cpuProfileDir, name+".cpu.pprof"), merged); err != nil {
			log.Printf("%v", err)
		}
	}
	if memProfileDir != "" {
		writeHeapProfile(filepath.Join(memProfileDir, name+".mem.pprof"))
	}
	return res
}

// Report prints the metrics of res, one sorted machine-readable line each.
func Report(name string, res Result) {
	keys := make([]string, 0, len(res.Metrics))
	for k := range res.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("MEDBENCH-METRIC:%v/%v=%v\n", name, k, res.Metrics[k])
	}
}

// runBenchmark runs f with increasing numbers of iterations until execution
// time reaches the requested duration.
func runBenchmark(f func(uint64)) (Result, *profile.Profile) {
	res := MakeResult()
	var prof *profile.Profile
	for chooseN(&res) {
		log.Printf("benchmarking %v iterations", res.N)
		res, prof = runBenchmarkOnce(f, res.N)
	}
	return res, prof
}

// runBenchmarkOnce runs f once and collects all performance metrics.
func runBenchmarkOnce(f func(uint64), n uint64) (Result, *profile.Profile) {
	runtime.GC()
	mstats0 := new(runtime.MemStats)
	runtime.ReadMemStats(mstats0)
	ss := initSysStats(n)

	res := MakeResult()
	res.N = n

	var cpuprofName string
	var cpuprofFile *os.File
	if cpuProfileDir != "" {
		cpuprofName = tempFilename("cpuprof")
		fp, err := os.Create(cpuprofName)
		if err != nil {
			log.Fatalf("failed to create profile file %v: %v", cpuprofName, err)
		}
		cpuprofFile = fp
		pprof.StartCPUProfile(fp)
	}

	t0 := time.Now()
	f(n)
	res.Duration = time.Since(t0)
	res.RunTime = uint64(res.Duration) / n
	res.Metrics["time"] = res.RunTime

	var prof *profile.Profile
	if cpuprofFile != nil {
		pprof.StopCPUProfile()
		cpuprofFile.Close()
		p, err := readProfile(cpuprofName)
		if err != nil {
			log.Printf("%v", err)
		} else {
			prof = p
		}
		os.Remove(cpuprofName)
	}

	ss.collect(&res)
	mstats1 := new(runtime.MemStats)
	runtime.ReadMemStats(mstats1)
	res.Metrics["allocated"] = (mstats1.TotalAlloc - mstats0.TotalAlloc) / n
	res.Metrics["allocs"] = (mstats1.Mallocs - mstats0.Mallocs) / n
	res.Metrics["sys-total"] = mstats1.Sys
	res.Metrics["sys-heap"] = mstats1.HeapSys
	res.Metrics["gc-pause-total"] = (mstats1.PauseTotalNs - mstats0.PauseTotalNs) / n
	return res, prof
}

var watchdog *time.Timer

// resetWatchdog rearms the process watchdog with enough time for one
// benchmark including iteration auto-tuning.
func resetWatchdog() {
	t := benchTime
	if t < time.Minute {
		t = time.Minute
	}
	t *= time.Duration(benchNum)
	t *= 2 // to account for iteration number auto-tuning
	if watchdog == nil {
		watchdog = time.AfterFunc(t, func() {
			panic(fmt.Sprintf("timed out after %v", t))
		})
		return
	}
	watchdog.Reset(t)
}

// chooseN chooses the next number of iterations for a benchmark.
func chooseN(res *Result) bool {
	const maxN = 1e12
	last := res.N
	if last == 0 {
		res.N = 1
		return true
	} else if res.Duration >= benchTime || last >= maxN {
		return false
	}
	nsPerOp := max(1, res.RunTime)
	res.N = uint64(benchTime) / nsPerOp
	res.N = max(min(res.N+res.N/2, 100*last), last+1)
	res.N = roundUp(res.N)
	return true
}

// roundUp rounds the number of iterations to a nice value.
func roundUp(n uint64) uint64 {
	tmp := n
	base := uint64(1)
	for tmp >= 10 {
		tmp /= 10
		base *= 10
	}
	switch {
	case n <= base:
		return base
	case n <= 2*base:
		return 2 * base
	case n <= 5*base:
		return 5 * base
	default:
		return 10 * base
	}
}

var tmpSeq = 0

func tempFilename(ext string) string {
	tmpSeq++
	return filepath.Join(tmpDir, fmt.Sprintf("%v.%v", tmpSeq, ext))
}
