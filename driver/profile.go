// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/google/pprof/profile"
)

func readProfile(filename string) (*profile.Profile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := profile.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing profile %s: %v", filename, err)
	}
	return p, nil
}

func writeProfile(filename string, p *profile.Profile) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	err = p.Write(f)
	if err == nil {
		err = f.Close()
	}
	if err != nil {
		return fmt.Errorf("error writing profile %s: %v", filename, err)
	}
	return nil
}

func writeHeapProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("failed to create profile file %v: %v", filename, err)
		return
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("failed to write heap profile: %v", err)
	}
}
