// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Medbench benchmarks the sliding-median engines on generated inputs.
//
// Usage:
//
//	medbench [flags] length nNaN nInf loBound hiBound windowSize steps ignoreNaNWindows
//
// The eight positional arguments describe one input sequence and window:
// length values drawn uniformly from [loBound, hiBound), nNaN of them
// replaced by NaN and nInf by infinities (half +Inf, the rest -Inf) at
// positions picked by a Fisher-Yates shuffle under a fixed seed, so runs are
// reproducible. loBound and hiBound are integers and may be negative; all
// other counts are unsigned; ignoreNaNWindows is the literal "true" or
// "false". Alternatively -suite runs every scenario of a TOML file.
//
// The process exits 0 on success and 1 otherwise.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"golang.org/x/medianwindow/driver"
)

const underPerfEnv = "MEDBENCH_UNDER_PERF"

var (
	suiteFile = flag.String("suite", "", "run the scenarios of the given TOML file instead of positional arguments")
	perf      = flag.Bool("perf", false, "re-run the benchmark under Linux perf")
	perfFlags = flag.String("perf-flags", "", "additional flags for perf record")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"usage: medbench [flags] length nNaN nInf loBound hiBound windowSize steps ignoreNaNWindows\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("medbench: ")
	driver.SetFlags(flag.CommandLine)
	flag.Usage = usage
	flag.Parse()

	if *perf && os.Getenv(underPerfEnv) == "" {
		os.Exit(runUnderPerf())
	}

	var scenarios []Scenario
	switch {
	case *suiteFile != "":
		if flag.NArg() != 0 {
			usage()
			os.Exit(1)
		}
		list, err := readSuite(*suiteFile)
		if err != nil {
			log.Print(err)
			os.Exit(1)
		}
		scenarios = list
	case flag.NArg() == 8:
		sc, err := parseScenario(flag.Args())
		if err != nil {
			log.Print(err)
			os.Exit(1)
		}
		scenarios = []Scenario{sc}
	default:
		usage()
		os.Exit(1)
	}

	if err := runSuite(scenarios); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// runUnderPerf re-executes the current invocation under perf record and
// returns the exit code to use.
func runUnderPerf() int {
	cmd, err := driver.PerfCommand(*perfFlags, os.Args...)
	if err != nil {
		log.Print(err)
		return 1
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), underPerfEnv+"=1")
	if err := cmd.Run(); err != nil {
		log.Printf("perf run failed: %v", err)
		return 1
	}
	return 0
}

// parseScenario validates the eight positional arguments with the same
// strictness as the original grammar: counts are plain digit strings, the
// bounds are integers with an optional leading minus, and the policy is the
// literal "true" or "false".
func parseScenario(args []string) (Scenario, error) {
	var sc Scenario
	var err error
	if sc.Length, err = parseCount(args[0]); err != nil {
		return sc, fmt.Errorf("length: %v", err)
	}
	if sc.NaN, err = parseCount(args[1]); err != nil {
		return sc, fmt.Errorf("nNaN: %v", err)
	}
	if sc.Inf, err = parseCount(args[2]); err != nil {
		return sc, fmt.Errorf("nInf: %v", err)
	}
	if sc.Low, err = strconv.ParseInt(args[3], 10, 64); err != nil {
		return sc, fmt.Errorf("loBound: invalid integer %q", args[3])
	}
	if sc.High, err = strconv.ParseInt(args[4], 10, 64); err != nil {
		return sc, fmt.Errorf("hiBound: invalid integer %q", args[4])
	}
	if sc.Window, err = parseCount(args[5]); err != nil {
		return sc, fmt.Errorf("windowSize: %v", err)
	}
	if sc.Steps, err = parseCount(args[6]); err != nil {
		return sc, fmt.Errorf("steps: %v", err)
	}
	switch args[7] {
	case "true":
		sc.IgnoreNaNWindows = true
	case "false":
		sc.IgnoreNaNWindows = false
	default:
		return sc, fmt.Errorf("ignoreNaNWindows must be \"true\" or \"false\", got %q", args[7])
	}
	return sc, sc.validate()
}

// parseCount parses an unsigned decimal with no sign or whitespace allowed.
func parseCount(s string) (int, error) {
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid count %q", s)
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v > int64(int(^uint(0)>>1)) {
		return 0, fmt.Errorf("count %q out of range", s)
	}
	return int(v), nil
}
