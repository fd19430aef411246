// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bvdb

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestTableLookupBothOrderings(tst *testing.T) {
	chk.PrintTitle("bvdb01")
	tbl := NewTable()
	f := Ion{"F", -1}
	pb := Ion{"Pb", 2}

	rec, ok := tbl.BondValence(f, pb, false)
	if !ok {
		tst.Fatal("expected F.Pb record")
	}
	chk.Scalar(tst, "r0", 1e-6, rec.R0, 1.90916)
	chk.Scalar(tst, "rCutoff", 1e-15, rec.RCutoff, 6.0)

	recRev, ok := tbl.BondValence(pb, f, false)
	if !ok {
		tst.Fatal("expected reverse-order lookup to succeed")
	}
	chk.Scalar(tst, "r0 (reversed)", 1e-15, recRev.R0, rec.R0)
}

func TestTableMissingPair(tst *testing.T) {
	chk.PrintTitle("bvdb02")
	tbl := NewTable()
	_, ok := tbl.BondValence(Ion{"K", 1}, Ion{"Sb", 5}, false)
	if ok {
		tst.Fatal("expected K.Sb to be absent from the built-in table")
	}
}

func TestCacheTriesBothOrderingsBeforeBackingStore(tst *testing.T) {
	chk.PrintTitle("bvdb03")
	tbl := NewTable()
	cache := NewCache(tbl)
	f, pb := Ion{"F", -1}, Ion{"Pb", 2}

	rec, ok := cache.Get(f, pb, false)
	if !ok {
		tst.Fatal("expected cache hit via backing store")
	}
	chk.Scalar(tst, "r0", 1e-15, rec.R0, 1.90916)

	// seed a miss so the cache itself is exercised, not just the backing store
	_, ok = cache.Get(Ion{"K", 1}, Ion{"Sb", 5}, false)
	if ok {
		tst.Fatal("expected a cached miss to stay a miss")
	}
}

func TestBondValenceHonorsBVSEFlag(tst *testing.T) {
	chk.PrintTitle("bvdb05")
	tbl := NewTable()
	f, pb := Ion{"F", -1}, Ion{"Pb", 2}
	tbl.Put(Ion{"F", -1}, Ion{"K", 1}, Record{R0: 2.0, Ib: 1 / 0.37, RCutoff: 6.0})

	if _, ok := tbl.BondValence(f, pb, true); !ok {
		tst.Fatal("expected F.Pb to satisfy a BVSE request (HasBVSE true)")
	}
	if _, ok := tbl.BondValence(f, Ion{"K", 1}, true); ok {
		tst.Fatal("expected F.K to miss a BVSE request: its record has HasBVSE false")
	}
	if _, ok := tbl.BondValence(f, Ion{"K", 1}, false); !ok {
		tst.Fatal("expected F.K to still satisfy a BV-only request")
	}
}

func TestAtomicNumberAndPeriod(tst *testing.T) {
	chk.PrintTitle("bvdb04")
	tbl := NewTable()
	if tbl.AtomicNumber("Pb") != 82 {
		tst.Fatal("wrong atomic number for Pb")
	}
	if tbl.Period("F") != 2 {
		tst.Fatal("wrong period for F")
	}
}
