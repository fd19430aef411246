// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charge

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSolveChargeBalanced(tst *testing.T) {
	chk.PrintTitle("charge01")
	// beta-PbF2: one Pb(2+), period 6; three F(-1), period 2.
	ions := []IonInfo{
		{Key: "Pb.2", OxState: 2, Period: 6, Count: 1},
		{Key: "F.-1", OxState: -1, Period: 2, Count: 3},
	}
	out := Solve(ions)
	sum := out["Pb.2"]*1 + out["F.-1"]*3
	chk.Scalar(tst, "formally charge-balanced sum of effective charges", 1e-9, sum, 0)
}

func TestSolveSignsPreserved(tst *testing.T) {
	chk.PrintTitle("charge02")
	ions := []IonInfo{
		{Key: "Pb.2", OxState: 2, Period: 6, Count: 1},
		{Key: "F.-1", OxState: -1, Period: 2, Count: 3},
	}
	out := Solve(ions)
	if out["Pb.2"] <= 0 {
		tst.Fatalf("cation should keep a positive effective charge, got %g", out["Pb.2"])
	}
	if out["F.-1"] >= 0 {
		tst.Fatalf("anion should keep a negative effective charge, got %g", out["F.-1"])
	}
}

func TestSolveZeroOxStateIgnored(tst *testing.T) {
	chk.PrintTitle("charge03")
	ions := []IonInfo{
		{Key: "Pb.2", OxState: 2, Period: 6, Count: 1},
		{Key: "F.-1", OxState: -1, Period: 2, Count: 2},
		{Key: "LP.-2", OxState: 0, Period: 1, Count: 1},
	}
	out := Solve(ions)
	if _, found := out["LP.-2"]; found {
		tst.Fatal("zero-oxidation-state ion should not receive an effective charge")
	}
}

func TestSolveUnbalancedStillScalesByPeriod(tst *testing.T) {
	chk.PrintTitle("charge04")
	ions := []IonInfo{
		{Key: "A", OxState: 1, Period: 4, Count: 1},
		{Key: "B", OxState: -2, Period: 9, Count: 1},
	}
	out := Solve(ions)
	if math.Signbit(out["A"]) {
		tst.Fatal("cation A should be positive")
	}
	if !math.Signbit(out["B"]) {
		tst.Fatal("anion B should be negative")
	}
}
