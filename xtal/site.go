// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xtal

// Site is a single position in the core (P1-expanded) unit cell. Sites are
// immutable after construction.
type Site struct {
	Label  string    // unique label within the cell, e.g. "Pb1-0"
	Ion    Ion       // ion identity
	LPFlag bool      // does this site carry a stereochemically active lone pair?
	Coords []float64 // Cartesian coordinates, length 3
}

// NewSite builds an immutable Site; Coords is copied so later mutation of
// the caller's slice cannot leak into the site table.
func NewSite(label string, ion Ion, lpFlag bool, coords []float64) Site {
	c := make([]float64, 3)
	copy(c, coords)
	return Site{Label: label, Ion: ion, LPFlag: lpFlag, Coords: c}
}
