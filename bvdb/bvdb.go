// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bvdb defines the bond-valence parameter store contract (C2): the
// external key/value service that returns a parameter record for an ordered
// ion pair, plus a small in-memory reference table and a read-through cache
// that tries both orderings of the pair before calling through to the
// store, matching BVStructure.get_bv_param in the source this was distilled
// from.
package bvdb

import "github.com/cpmech/gosl/io"

// Ion is the minimal ion identity the store keys on: an (element,
// oxidation state) pair. It mirrors xtal.Ion field-for-field but is defined
// independently so this package never depends on the crystal data model —
// the parameter store is an external collaborator to the structure
// container, not the other way around.
type Ion struct {
	Element string
	OxState int
}

// String renders the ion the way the reference Python implementation keys
// its parameter dictionary, e.g. "Pb.2" or "F.-1".
func (o Ion) String() string {
	return io.Sf("%s.%d", o.Element, o.OxState)
}

// Record holds the bond-valence (and, where admissible, BVSE) parameters
// for one ordered ion pair.
type Record struct {
	R0      float64 // equilibrium radius, Angstrom
	Ib      float64 // inverse softness, 1/Angstrom
	RCutoff float64 // per-pair cutoff, Angstrom
	D0      float64 // bond dissociation energy (BVSE); 0 if not admissible
	Rmin    float64 // equilibrium distance (BVSE)
	I1r     float64 // ionic radius of ion1, used in screening (BVSE)
	I2r     float64 // ionic radius of ion2, used in screening (BVSE)
	HasBVSE bool    // true iff D0/Rmin/I1r/I2r were supplied by the store
}

// Store is the external parameter-store contract. A conforming
// implementation need not be in-process; bvdb.Table here is a reference
// implementation standing in for the networked service spec.md treats as an
// external collaborator.
type Store interface {
	// BondValence returns the parameter record for the ordered pair
	// (ion1, ion2), or ok=false if the store holds nothing for it.
	// bvse requests the BVSE-only fields in addition to the BV fields.
	BondValence(ion1, ion2 Ion, bvse bool) (rec Record, ok bool)

	// AtomicNumber returns the atomic number of an element symbol.
	AtomicNumber(element string) int

	// Period returns the principal quantum number (period) of an element.
	Period(element string) int
}

// key formats the ordered pair the way the source keys bvParams: "ion1.ion2".
func key(ion1, ion2 Ion) string {
	return ion1.String() + "." + ion2.String()
}
