// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/robbie6shaw/bvmap/bvdb"
	"github.com/robbie6shaw/bvmap/bvse"
	"github.com/robbie6shaw/bvmap/bvsm"
	"github.com/robbie6shaw/bvmap/config"
	"github.com/robbie6shaw/bvmap/export"
	"github.com/robbie6shaw/bvmap/fieldmap"
	"github.com/robbie6shaw/bvmap/input"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\nbvmap -- bond-valence field mapper\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a config filename. Ex.: run.json")
	}
	cfgPath := flag.Arg(0)

	cfg, err := config.Read(cfgPath)
	if err != nil {
		chk.Panic("cannot read config %q: %v", cfgPath, err)
	}

	desc, err := input.ReadFile(cfg.InputFile)
	if err != nil {
		chk.Panic("cannot read structure %q: %v", cfg.InputFile, err)
	}

	store := bvdb.NewTable()
	useBVSE := cfg.Kernel == "bvse"
	st, err := desc.BuildStructure(store, useBVSE)
	if err != nil {
		chk.Panic("cannot build structure: %v", err)
	}

	start := time.Now()

	driver := fieldmap.NewDriver(st)
	driver.InitializeMap(cfg.Resolution)
	driver.SynthesizeLonePairs(cfg.LonePairDistance)

	switch cfg.Kernel {
	case "bvsm":
		form := bvsm.Linear
		if cfg.PenaltyType == "quadratic" {
			form = bvsm.Quadratic
		}
		driver.PopulateBVSM(bvsm.Mode(cfg.Mode), form, cfg.PenaltyK)
	case "bvse":
		if err := driver.PopulateBVSE(bvse.Mode(cfg.Mode), cfg.EffectiveCharge); err != nil {
			chk.Panic("bvse: %v", err)
		}
	default:
		chk.Panic("unknown kernel %q; expected \"bvsm\" or \"bvse\"", cfg.Kernel)
	}

	elapsed := time.Since(start)

	if err := export.Write(cfg.ExportFile, st, driver.Grid); err != nil {
		chk.Panic("cannot export %q: %v", cfg.ExportFile, err)
	}

	if mpi.Rank() == 0 {
		n := driver.Grid.Nh * driver.Grid.Nk * driver.Grid.Nl
		io.Pf("populated %d voxels in %v (%.0f voxels/s)\n", n, elapsed, float64(n)/elapsed.Seconds())
	}
}
