// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bvse

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/robbie6shaw/bvmap/bvdb"
	"github.com/robbie6shaw/bvmap/buffer"
	"github.com/robbie6shaw/bvmap/voxel"
	"github.com/robbie6shaw/bvmap/xtal"
)

func TestBondEnergyAnchoredAtRmin(tst *testing.T) {
	chk.PrintTitle("bvse01")
	// spec.md §4.7: the Morse-like anchor subtracts d0 so E_bond(rmin) = -d0.
	got := bondEnergy(2.03, 0.58, 2.03, 1/0.37)
	chk.Scalar(tst, "bond energy at rmin", 1e-12, got, -0.58)
}

func TestCoulEnergySignMatchesChargeProduct(tst *testing.T) {
	chk.PrintTitle("bvse02")
	likeSign := coulEnergy(2, 2, 3, 1.2, 1.3, 0.75)
	oppositeSign := coulEnergy(2, -1, 3, 1.2, 1.3, 0.75)
	if likeSign <= 0 {
		tst.Fatalf("expected a positive repulsion energy for like charges, got %g", likeSign)
	}
	if oppositeSign >= 0 {
		tst.Fatalf("expected a negative energy for opposite charges, got %g", oppositeSign)
	}
}

func pbf2Fixture(tst *testing.T) (*xtal.Cell, *xtal.Structure, *buffer.Set) {
	cell, err := xtal.NewCell([]float64{5.9306, 0, 0}, []float64{0, 5.9306, 0}, []float64{0, 0, 5.9306}, 208.591160224616)
	if err != nil {
		tst.Fatal(err)
	}
	pb := xtal.Ion{Element: "Pb", OxState: 2}
	f := xtal.Ion{Element: "F", OxState: -1}
	sites := []xtal.Site{
		xtal.NewSite("Pb1-0", pb, true, []float64{0, 0, 0}),
		xtal.NewSite("F1-0", f, false, []float64{2.9653, 2.9653, 0}),
		xtal.NewSite("F1-1", f, false, []float64{2.9653, 0, 2.9653}),
		xtal.NewSite("F1-2", f, false, []float64{0, 2.9653, 2.9653}),
	}
	store := bvdb.NewTable()
	st, err := xtal.NewStructure(cell, sites, pb, store, true)
	if err != nil {
		tst.Fatal(err)
	}
	set := buffer.Build(cell, sites, st.RC)
	return cell, st, set
}

func TestModeBothEqualsBondPlusCoulomb(tst *testing.T) {
	chk.PrintTitle("bvse03")
	cell, st, set := pbf2Fixture(tst)
	g := voxel.NewGrid(cell, 1.5)
	gBond := voxel.NewGrid(cell, 1.5)
	gCoul := voxel.NewGrid(cell, 1.5)
	if err := Populate(g, set, st, ModeBoth, true); err != nil {
		tst.Fatal(err)
	}
	if err := Populate(gBond, set, st, ModeBondOnly, true); err != nil {
		tst.Fatal(err)
	}
	if err := Populate(gCoul, set, st, ModeCoulOnly, true); err != nil {
		tst.Fatal(err)
	}
	for h := 0; h < g.Nh; h++ {
		for k := 0; k < g.Nk; k++ {
			for l := 0; l < g.Nl; l++ {
				want := gBond.Values[h][k][l] + gCoul.Values[h][k][l]
				chk.Scalar(tst, "mode1 == mode0 + mode2", 1e-9, g.Values[h][k][l], want)
			}
		}
	}
}

func TestPopulateFailsWhenBondingParametersMissing(tst *testing.T) {
	chk.PrintTitle("bvse05")
	// spec.md §7: BVSE treats a missing attractive-pair record as fatal,
	// unlike bvsm which silently skips it.
	cell, err := xtal.NewCell([]float64{5.9306, 0, 0}, []float64{0, 5.9306, 0}, []float64{0, 0, 5.9306}, 208.591160224616)
	if err != nil {
		tst.Fatal(err)
	}
	k := xtal.Ion{Element: "K", OxState: 1}
	f := xtal.Ion{Element: "F", OxState: -1}
	sites := []xtal.Site{
		xtal.NewSite("K1-0", k, true, []float64{0, 0, 0}),
		xtal.NewSite("F1-0", f, false, []float64{2.9653, 2.9653, 0}),
	}
	store := bvdb.NewTable()
	st, err := xtal.NewStructure(cell, sites, k, store, true)
	if err != nil {
		tst.Fatal(err)
	}
	set := buffer.Build(cell, sites, st.RC)
	g := voxel.NewGrid(cell, 1.5)
	if err := Populate(g, set, st, ModeBoth, true); err == nil {
		tst.Fatal("expected a MissingParameter error for an unparameterized (K, F) pair")
	}
}

func TestBuildArraysStagedOnceFeedsMultiplePopulateRangeCalls(tst *testing.T) {
	chk.PrintTitle("bvse06")
	// A same-sign, non-lone-pair partner (a K+ cation alongside the Pb2+
	// conductor) exercises the repulsive-pair parameter lookup in
	// BuildArrays. This must run exactly once, up front: PopulateRange
	// itself never touches the parameter store, so splitting the h axis
	// across goroutines and calling PopulateRange concurrently with the
	// same staged bonds/couls is safe (spec.md §5/§10).
	cell, err := xtal.NewCell([]float64{5.9306, 0, 0}, []float64{0, 5.9306, 0}, []float64{0, 0, 5.9306}, 208.591160224616)
	if err != nil {
		tst.Fatal(err)
	}
	pb := xtal.Ion{Element: "Pb", OxState: 2}
	f := xtal.Ion{Element: "F", OxState: -1}
	kIon := xtal.Ion{Element: "K", OxState: 1}
	sites := []xtal.Site{
		xtal.NewSite("Pb1-0", pb, false, []float64{0, 0, 0}),
		xtal.NewSite("F1-0", f, false, []float64{2.9653, 2.9653, 0}),
		xtal.NewSite("F1-1", f, false, []float64{2.9653, 0, 2.9653}),
		xtal.NewSite("F1-2", f, false, []float64{0, 2.9653, 2.9653}),
		xtal.NewSite("K1-0", kIon, false, []float64{2.9653, 2.9653, 2.9653}),
	}
	store := bvdb.NewTable()
	store.Put(bvdb.Ion{Element: "Pb", OxState: 2}, bvdb.Ion{Element: "K", OxState: 1}, bvdb.Record{
		R0: 3.0, Ib: 1 / 0.37, RCutoff: 6.0, D0: 0.5, Rmin: 3.5, I1r: 1.19, I2r: 1.33, HasBVSE: true,
	})
	st, err := xtal.NewStructure(cell, sites, pb, store, true)
	if err != nil {
		tst.Fatal(err)
	}
	set := buffer.Build(cell, sites, st.RC)

	bonds, couls, err := BuildArrays(set, st, false)
	if err != nil {
		tst.Fatal(err)
	}
	if len(bonds) == 0 {
		tst.Fatal("expected at least one attractive-pair bond row")
	}
	if len(couls) == 0 {
		tst.Fatal("expected at least one repulsive-pair Coulomb row from the Pb-K partner")
	}

	g1 := voxel.NewGrid(cell, 1.5)
	g2 := voxel.NewGrid(cell, 1.5)
	half := g1.Nh / 2
	PopulateRange(g1, bonds, couls, st, ModeBoth, 0, half)
	PopulateRange(g1, bonds, couls, st, ModeBoth, half, g1.Nh)
	PopulateRange(g2, bonds, couls, st, ModeBoth, 0, g2.Nh)
	for h := 0; h < g1.Nh; h++ {
		for k := 0; k < g1.Nk; k++ {
			for l := 0; l < g1.Nl; l++ {
				chk.Scalar(tst, "split range matches whole range", 1e-12, g1.Values[h][k][l], g2.Values[h][k][l])
			}
		}
	}
}

func TestValuesAreFinite(tst *testing.T) {
	chk.PrintTitle("bvse04")
	cell, st, set := pbf2Fixture(tst)
	g := voxel.NewGrid(cell, 0.5)
	if err := Populate(g, set, st, ModeBoth, false); err != nil {
		tst.Fatal(err)
	}
	for h := 0; h < g.Nh; h++ {
		for k := 0; k < g.Nk; k++ {
			for l := 0; l < g.Nl; l++ {
				v := g.Values[h][k][l]
				if math.IsNaN(v) || math.IsInf(v, 0) {
					tst.Fatalf("non-finite BVSE value at (%d,%d,%d): %g", h, k, l, v)
				}
			}
		}
	}
}
