// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/robbie6shaw/bvmap/buffer"
	"github.com/robbie6shaw/bvmap/xtal"
)

// cifCellParams names the six _cell_length_*/_cell_angle_* tags written in
// order, matching original_source/bv2.py's export_cif.
var cifCellParams = []string{
	"_cell_length_a", "_cell_length_b", "_cell_length_c",
	"_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma",
}

// lpDisplayElement is the element symbol lpSwap substitutes for a lone-pair
// dummy's "LP", since "LP" is not a real element symbol (matches the
// source's lpSwap, which substitutes "He").
const lpDisplayElement = "He"

func lpSwap(element string) string {
	if element == xtal.LonePairElement {
		return lpDisplayElement
	}
	return element
}

// WriteCIF writes path as a minimal P1 CIF: the six cell parameters, then
// every buffered image whose fractional coordinate folds back inside
// [0,1)^3, one atom-site loop row each. The buffer is rebuilt here from the
// core site table, so lone-pair dummies synthesized into a driver's
// buffered set are not written.
func WriteCIF(path string, st *xtal.Structure) error {
	var buf bytes.Buffer
	buf.WriteString("bv-project-export\n")

	params := []float64{st.Cell.LenA, st.Cell.LenB, st.Cell.LenC, st.Cell.AlphaDeg, st.Cell.BetaDeg, st.Cell.GammaDeg}
	for i, tag := range cifCellParams {
		buf.WriteString(io.Sf("%s %g\n", tag, params[i]))
	}
	buf.WriteString("_space_group_IT_number 1\n")
	buf.WriteString("loop_\n_atom_site_label\n_atom_site_type_symbol\n_atom_site_fract_x\n_atom_site_fract_y\n_atom_site_fract_z\n_atom_site_occupancy\n")

	set := buffer.Build(st.Cell, st.Sites, st.RC)
	for _, img := range set.Images {
		frac := st.Cell.FracFromCart(img.Coords)
		if !insideUnitCube(frac) {
			continue
		}
		buf.WriteString(io.Sf("%s %s %g %g %g 1\n", img.Label, lpSwap(img.Ion.Element), frac[0], frac[1], frac[2]))
	}

	return io.WriteFile(path, &buf)
}

func insideUnitCube(frac []float64) bool {
	for _, f := range frac {
		if f < 0 || f >= 1 {
			return false
		}
	}
	return true
}
