// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bvse implements the per-voxel bond-valence site energy kernel
// (C7): a Morse-like bonding term over attractive-pair images plus a
// screened Coulomb repulsion term over repulsive-pair images, including
// synthesized lone-pair dummies.
package bvse

import (
	"math"

	"github.com/robbie6shaw/bvmap/bvdb"
	"github.com/robbie6shaw/bvmap/buffer"
	"github.com/robbie6shaw/bvmap/geom"
	"github.com/robbie6shaw/bvmap/voxel"
	"github.com/robbie6shaw/bvmap/xtal"
)

// Mode selects which terms populate the grid.
type Mode int

const (
	ModeBondOnly Mode = 0
	ModeBoth     Mode = 1
	ModeCoulOnly Mode = 2
)

// screeningFactor is the Coulomb-term screening constant f (spec.md §4.7).
const screeningFactor = 0.75

// lonePairCharge and lonePairRadius stand in for a lone-pair dummy's missing
// bond-valence parameters when it appears as a repulsive-pair image.
const (
	lonePairCharge = -2.0
	lonePairRadius = 1.0
)

// BondRow is one attractive-pair buffered image staged for the Morse
// bonding term.
type BondRow struct {
	pos          [3]float64
	d0, rmin, ib float64
}

// CoulRow is one repulsive-pair (or lone-pair dummy) buffered image staged
// for the screened Coulomb term.
type CoulRow struct {
	pos    [3]float64
	q1, q2 float64
	r1, r2 float64
}

func dbIon(ion xtal.Ion) bvdb.Ion {
	return bvdb.Ion{Element: ion.Element, OxState: ion.OxState}
}

// BuildArrays partitions the buffered set into the bonding and Coulomb
// compact arrays (mirroring _create_bond_site_array / _create_coul_site_array
// in the source this is distilled from). effectiveCharge selects whether the
// Coulomb charges come from st.Charges or from formal oxidation states.
// Unlike bvsm, a missing attractive-pair record is fatal (spec.md §7:
// MissingParameter is fatal for BVSE, since the Morse parameters are
// non-optional), not silently skipped.
//
// Every parameter lookup happens here, in one pass; callers populating a
// grid across several goroutines must call BuildArrays exactly once and
// pass its result into every PopulateRange call, since st.Params is not
// safe for concurrent lookups that miss the cache (spec.md §5 and §10:
// compact arrays are built once and are read-only during voxel evaluation).
func BuildArrays(set *buffer.Set, st *xtal.Structure, effectiveCharge bool) (bonds []BondRow, couls []CoulRow, err error) {
	condRadius := radiusOf(st, st.Conductor)
	for _, img := range set.Images {
		if img.Ion == st.Conductor {
			continue
		}
		switch {
		case xtal.Opposite(st.Conductor, img.Ion):
			rec, ok := st.Params.Get(dbIon(st.Conductor), dbIon(img.Ion), true)
			if !ok {
				return nil, nil, missingParameter("no BVSE bonding parameters for (%v, %v)", st.Conductor, img.Ion)
			}
			bonds = append(bonds, BondRow{
				pos: [3]float64{img.Coords[0], img.Coords[1], img.Coords[2]},
				d0:  rec.D0, rmin: rec.Rmin, ib: rec.Ib,
			})
		case xtal.SameSign(st.Conductor, img.Ion):
			if img.Ion.IsLonePair() {
				q1 := chargeOf(st, st.Conductor, effectiveCharge)
				couls = append(couls, CoulRow{
					pos: [3]float64{img.Coords[0], img.Coords[1], img.Coords[2]},
					q1:  q1, q2: lonePairCharge,
					r1: condRadius, r2: lonePairRadius,
				})
				continue
			}
			rec, ok := st.Params.Get(dbIon(st.Conductor), dbIon(img.Ion), true)
			if !ok {
				continue
			}
			q1 := chargeOf(st, st.Conductor, effectiveCharge)
			q2 := chargeOf(st, img.Ion, effectiveCharge)
			couls = append(couls, CoulRow{
				pos: [3]float64{img.Coords[0], img.Coords[1], img.Coords[2]},
				q1:  q1, q2: q2,
				r1: rec.I1r, r2: rec.I2r,
			})
		}
	}
	return
}

// chargeOf returns either the effective charge (solved by the C9 charge
// balancer) or the formal oxidation state, by ion.
func chargeOf(st *xtal.Structure, ion xtal.Ion, effectiveCharge bool) float64 {
	if effectiveCharge {
		if c, ok := st.Charges[ion.String()]; ok {
			return c
		}
	}
	return float64(ion.OxState)
}

// radiusOf looks up the conductor's own ionic radius via any attractive-pair
// record it participates in (the store has no standalone per-element radius
// accessor; the radius travels alongside the pair record it was measured
// with).
func radiusOf(st *xtal.Structure, ion xtal.Ion) float64 {
	for _, s := range st.Sites {
		if xtal.Opposite(ion, s.Ion) {
			if rec, ok := st.Params.Get(dbIon(ion), dbIon(s.Ion), true); ok {
				return rec.I1r
			}
		}
	}
	return 0
}

func bondEnergy(rmin, d0, r, ib float64) float64 {
	x := math.Exp((rmin-r)*ib) - 1
	return d0*x*x - d0
}

func coulEnergy(q1, q2, r, r1, r2, f float64) float64 {
	return (q1 * q2 / r) * math.Erfc(r/(f*(r1+r2)))
}

func voxelValue(pos []float64, rc float64, mode Mode, bonds []BondRow, couls []CoulRow) float64 {
	ebond, ecoul := 0.0, 0.0
	if mode != ModeCoulOnly {
		for _, b := range bonds {
			r := geom.Distance(pos, b.pos[:], rc)
			if r > rc {
				continue
			}
			ebond += bondEnergy(b.rmin, b.d0, r, b.ib)
		}
	}
	if mode != ModeBondOnly {
		for _, c := range couls {
			r := geom.Distance(pos, c.pos[:], rc)
			if r > rc {
				continue
			}
			ecoul += coulEnergy(c.q1, c.q2, r, c.r1, c.r2, screeningFactor)
		}
	}
	return ebond + ecoul
}

// Populate fills every voxel of g with the BVSE energy value, in g's
// row-major (h,k,l) order. It returns a MissingParameter error (fatal, per
// spec.md §7) if any attractive pair lacks a Morse bonding record.
func Populate(g *voxel.Grid, set *buffer.Set, st *xtal.Structure, mode Mode, effectiveCharge bool) error {
	bonds, couls, err := BuildArrays(set, st, effectiveCharge)
	if err != nil {
		return err
	}
	PopulateRange(g, bonds, couls, st, mode, 0, g.Nh)
	return nil
}

// PopulateRange fills only voxel planes [hStart,hEnd) of g from the already
// built bonds/couls compact arrays (see BuildArrays); see bvsm.PopulateRange
// for the concurrency rationale. Callers fanning this out across goroutines
// must call BuildArrays once up front and share its result — this function
// only reads bonds/couls, never the parameter store.
func PopulateRange(g *voxel.Grid, bonds []BondRow, couls []CoulRow, st *xtal.Structure, mode Mode, hStart, hEnd int) {
	for h := hStart; h < hEnd; h++ {
		for k := 0; k < g.Nk; k++ {
			for l := 0; l < g.Nl; l++ {
				pos := g.Position(h, k, l)
				g.Values[h][k][l] = voxelValue(pos, st.RC, mode, bonds, couls)
			}
		}
	}
}
