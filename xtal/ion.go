// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package xtal holds the crystallographic data model: ion identity, sites,
// the cell and the structure container built from them (C3).
package xtal

import "github.com/cpmech/gosl/io"

// LonePairElement and LonePairOxState identify synthesized lone-pair dummy
// sites (spec.md §3: sentinel element "LP", oxidation state -2).
const (
	LonePairElement = "LP"
	LonePairOxState = -2
)

// Ion is a (element, oxidation state) pair. Equality is over both fields.
type Ion struct {
	Element string
	OxState int
}

// String renders the ion the way the parameter-store cache keys it, e.g.
// "Pb.2" or "F.-1".
func (o Ion) String() string {
	return io.Sf("%s.%d", o.Element, o.OxState)
}

// IsLonePair reports whether this ion identifies a synthesized lone-pair
// dummy site.
func (o Ion) IsLonePair() bool {
	return o.Element == LonePairElement
}

// Opposite reports whether a and b carry opposite-signed oxidation
// states (one strictly positive, the other strictly negative) — the
// attractive-pair test used throughout C3/C6/C7.
func Opposite(a, b Ion) bool {
	return a.OxState*b.OxState < 0
}

// SameSign reports whether a and b carry same-signed, both nonzero
// oxidation states — the repulsive-pair test.
func SameSign(a, b Ion) bool {
	return a.OxState*b.OxState > 0
}

// LonePairIon is the canonical ion identity used for every synthesized
// lone-pair dummy.
var LonePairIon = Ion{Element: LonePairElement, OxState: LonePairOxState}
