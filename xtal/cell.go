// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xtal

import (
	"math"

	"github.com/robbie6shaw/bvmap/geom"
)

// Cell holds the three cell vectors, their cached inverse, and the derived
// scalar lengths/angles/volume (spec.md §3).
type Cell struct {
	*geom.Vectors
	LenA, LenB, LenC          float64 // |a|, |b|, |c|, Angstrom
	AlphaDeg, BetaDeg, GammaDeg float64 // cell angles, degrees
	Volume                    float64 // unit-cell volume
}

// NewCell builds a Cell from the three Cartesian row vectors and the
// externally-supplied volume (the input description carries its own
// pre-computed volume; it is not recomputed from the vectors so that a
// structure read from a file matches its source's reported volume exactly).
func NewCell(a, b, c []float64, volume float64) (*Cell, error) {
	v, err := geom.NewVectors(a, b, c)
	if err != nil {
		return nil, err
	}
	if volume <= 0 {
		return nil, invalidGeometry("cell volume must be positive, got %g", volume)
	}
	cell := &Cell{
		Vectors: v,
		LenA:    norm3(a),
		LenB:    norm3(b),
		LenC:    norm3(c),
		Volume:  volume,
	}
	cell.AlphaDeg = angleDeg(b, c)
	cell.BetaDeg = angleDeg(a, c)
	cell.GammaDeg = angleDeg(a, b)
	return cell, nil
}

func norm3(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func angleDeg(u, v []float64) float64 {
	dot := u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
	cos := dot / (norm3(u) * norm3(v))
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// Lengths returns (|a|,|b|,|c|) as used by the buffer-shape computation.
func (o *Cell) Lengths() [3]float64 {
	return [3]float64{o.LenA, o.LenB, o.LenC}
}
