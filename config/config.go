// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config holds the JSON-tagged run configuration (C11): grid
// resolution, kernel choice and mode, penalty and effective-charge
// settings, lone-pair offset, and the export path, modeled on the
// teacher's inp.Data/inp.SolverData JSON configuration structs.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/io"
)

// Data is one run's configuration, decoded from a .json config file the
// same way inp.ReadSim decodes a .sim file.
type Data struct {
	InputFile  string `json:"inputfile"`  // structure description path
	ExportFile string `json:"exportfile"` // output path; extension selects .grd/.cube/.cif

	Kernel string `json:"kernel"` // "bvsm" or "bvse"
	Mode   int    `json:"mode"`   // kernel-specific {0,1,2}, spec.md §4.6/§4.7

	Resolution float64 `json:"resolution"` // Å, rounded up to a multiple of 12 voxels per axis

	PenaltyK    float64 `json:"penalty_k"`    // BVSM penalty strength; 0 disables it
	PenaltyType string  `json:"penalty_type"` // BVSM: "linear" or "quadratic"

	EffectiveCharge bool `json:"effective_charge"` // BVSE: use C9 charges instead of formal oxidation states

	LonePairDistance float64 `json:"lone_pair_distance"` // Å offset of synthesized dummy sites

	Extra string `json:"extra"` // keycode-style overrides, read with io.Keycode/io.Atob/io.Atof
}

// SetDefault applies the same defaults the reference tool ships with,
// before the JSON file is decoded over them (inp.SolverData.SetDefault
// idiom: defaults first, decode second, so an absent JSON field keeps its
// default rather than zeroing out).
func (o *Data) SetDefault() {
	o.Kernel = "bvsm"
	o.Mode = 0
	o.Resolution = 0.5
	o.PenaltyK = 0.05
	o.PenaltyType = "linear"
	o.EffectiveCharge = false
	o.LonePairDistance = 1.0
}

// Read loads and decodes a .json config file, applying defaults first.
func Read(path string) (*Data, error) {
	var o Data
	o.SetDefault()
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, malformedInput("cannot read config %q: %v", path, err)
	}
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, malformedInput("cannot parse config %q: %v", path, err)
	}
	o.applyExtra()
	return &o, nil
}

// applyExtra lets a handful of settings be overridden by keycode-style
// tokens in Extra, the same pattern GetSolidFlags applies to an element's
// .Extra string ("!key1:val1 !key2:val2 ...").
func (o *Data) applyExtra() {
	if s, found := io.Keycode(o.Extra, "res"); found {
		o.Resolution = io.Atof(s)
	}
	if s, found := io.Keycode(o.Extra, "mode"); found {
		o.Mode = io.Atoi(s)
	}
	if s, found := io.Keycode(o.Extra, "penk"); found {
		o.PenaltyK = io.Atof(s)
	}
	if s, found := io.Keycode(o.Extra, "effchg"); found {
		o.EffectiveCharge = io.Atob(s)
	}
	if s, found := io.Keycode(o.Extra, "lpdist"); found {
		o.LonePairDistance = io.Atof(s)
	}
}
