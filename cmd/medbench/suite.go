// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"golang.org/x/medianwindow/driver"
	"golang.org/x/medianwindow/internal/medtest"
	"golang.org/x/medianwindow/window"
)

// Scenario describes one benchmark input, mirroring the positional argument
// grammar of the command line. Scenarios are read from a .toml file in suite
// mode.
type Scenario struct {
	Name             string // optional label, derived from the shape if empty
	Length           int
	NaN              int
	Inf              int
	Low              int64
	High             int64
	Window           int
	Steps            int
	IgnoreNaNWindows bool
}

type suiteConfig struct {
	Scenario []Scenario
}

func (sc *Scenario) validate() error {
	switch {
	case sc.Length <= 0:
		return fmt.Errorf("length must be positive, got %d", sc.Length)
	case sc.Window < 2:
		return fmt.Errorf("window size must be at least 2, got %d", sc.Window)
	case sc.Steps < 1:
		return fmt.Errorf("steps must be at least 1, got %d", sc.Steps)
	case sc.Length < sc.Window:
		return fmt.Errorf("length %d is shorter than window %d", sc.Length, sc.Window)
	case sc.NaN+sc.Inf > sc.Length:
		return fmt.Errorf("%d special values do not fit a sequence of %d", sc.NaN+sc.Inf, sc.Length)
	case sc.Low >= sc.High:
		return fmt.Errorf("bounds [%d, %d) are empty", sc.Low, sc.High)
	}
	return nil
}

func (sc *Scenario) label() string {
	if sc.Name != "" {
		return sc.Name
	}
	policy := "exclude"
	if sc.IgnoreNaNWindows {
		policy = "poison"
	}
	return fmt.Sprintf("l%d-w%d-s%d-%s", sc.Length, sc.Window, sc.Steps, policy)
}

func readSuite(filename string) ([]Scenario, error) {
	var cfg suiteConfig
	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		return nil, fmt.Errorf("reading suite %s: %v", filename, err)
	}
	if len(cfg.Scenario) == 0 {
		return nil, fmt.Errorf("suite %s defines no scenarios", filename)
	}
	return cfg.Scenario, nil
}

// runSuite validates and generates every scenario input concurrently, then
// benchmarks the scenarios one at a time so the timings stay undisturbed.
func runSuite(scenarios []Scenario) error {
	inputs := make([][]float64, len(scenarios))
	var g errgroup.Group
	for i := range scenarios {
		sc := &scenarios[i]
		g.Go(func() error {
			if err := sc.validate(); err != nil {
				return fmt.Errorf("scenario %s: %v", sc.label(), err)
			}
			rng := rand.New(rand.NewSource(medtest.Seed))
			inputs[i] = medtest.Generate(rng, sc.Length, sc.NaN, sc.Inf, float64(sc.Low), float64(sc.High))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range scenarios {
		sc := &scenarios[i]
		name := sc.label()
		x := inputs[i]
		y := make([]float64, window.OutputLen(sc.Length, sc.Window, sc.Steps))
		res := driver.Benchmark(name, func(n uint64) {
			for j := uint64(0); j < n; j++ {
				if !window.SlidingMedian(x, sc.Window, sc.Steps, sc.IgnoreNaNWindows, y) {
					log.Fatalf("sliding median rejected scenario %s", name)
				}
			}
		})
		driver.Report(name, res)
	}
	return nil
}
