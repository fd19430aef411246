// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/robbie6shaw/bvmap/voxel"
	"github.com/robbie6shaw/bvmap/xtal"
)

// bohrInAngstrom and chargeConversion are the Gaussian cube conversion
// constants named in spec.md §6. WriteCube applies only bohrInAngstrom;
// chargeConversion is not applied, and per-atom charges are written
// unscaled.
const (
	bohrInAngstrom  = 0.5291772
	chargeConversion = 0.594445
)

// WriteCube writes path in the Gaussian cube format (spec.md §6): atom
// count, origin, three voxel vectors scaled to Bohr, one (Z,
// effective_charge, x/Bohr, y/Bohr, z/Bohr) line per site, then the grid
// values one per line.
func WriteCube(path string, st *xtal.Structure, g *voxel.Grid) error {
	var buf bytes.Buffer
	order, counts := ionCounts(st.Sites)
	total := 0
	atomicNo := make(map[string]int, len(order))
	for _, ion := range order {
		buf.WriteString(io.Sf("%s:%d ", ion.String(), counts[ion]))
		total += counts[ion]
		atomicNo[ion.Element] = st.Params.AtomicNumber(ion.Element)
	}
	buf.WriteString(io.Sf("\nConducting = %s ; sf = 0.750000;\n", st.Conductor.String()))
	buf.WriteString(io.Sf("%d  0.000000   0.000000   0.000000\n", total))

	voxelCounts := [3]int{g.Nh, g.Nk, g.Nl}
	for i := 0; i < 3; i++ {
		v := st.Cell.V[i]
		buf.WriteString(io.Sf("%d  %7.6f   %7.6f   %7.6f\n", voxelCounts[i],
			v[0]/(float64(voxelCounts[i])*bohrInAngstrom),
			v[1]/(float64(voxelCounts[i])*bohrInAngstrom),
			v[2]/(float64(voxelCounts[i])*bohrInAngstrom)))
	}

	for _, s := range st.Sites {
		charge := chargeOf(st, s.Ion)
		buf.WriteString(io.Sf("%d %7.6f    %7.6f   %7.6f   %7.6f\n",
			atomicNo[s.Ion.Element], charge,
			s.Coords[0]/bohrInAngstrom, s.Coords[1]/bohrInAngstrom, s.Coords[2]/bohrInAngstrom))
	}

	for h := 0; h < g.Nh; h++ {
		for k := 0; k < g.Nk; k++ {
			for l := 0; l < g.Nl; l++ {
				buf.WriteString(io.Sf("%g\n", g.Values[h][k][l]))
			}
		}
	}

	return io.WriteFile(path, &buf)
}

// chargeOf prefers the C9 effective charge and falls back to the formal
// oxidation state, matching the source's chargeList lookup.
func chargeOf(st *xtal.Structure, ion xtal.Ion) float64 {
	if c, ok := st.Charges[ion.String()]; ok {
		return c
	}
	return float64(ion.OxState)
}
