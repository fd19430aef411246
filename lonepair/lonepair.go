// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lonepair synthesizes dummy lone-pair sites (C8): a vector
// bond-valence sum is computed at every core site flagged stereochemically
// active, and when its magnitude exceeds a threshold every buffered image of
// that site gets an offset dummy inserted along the resulting unit
// direction.
package lonepair

import (
	"math"

	"github.com/robbie6shaw/bvmap/bvdb"
	"github.com/robbie6shaw/bvmap/buffer"
	"github.com/robbie6shaw/bvmap/geom"
	"github.com/robbie6shaw/bvmap/xtal"
)

func dbIon(ion xtal.Ion) bvdb.Ion {
	return bvdb.Ion{Element: ion.Element, OxState: ion.OxState}
}

// StrengthCutoff is the vector-BVS magnitude above which a lone pair is
// considered stereochemically active (spec.md §4.8).
const StrengthCutoff = 0.5

// DefaultOffset is the default distance (Angstrom) a synthesized dummy site
// sits from its parent image along the unit direction.
const DefaultOffset = 1.0

// VectorBVS computes the vector bond-valence sum at one core site: the sum,
// over buffered images whose ion is attractive to site's ion, of
// bv_j * (p_site - p_j) / r_j. Lazily consults params for any pair not
// already eagerly prefetched by C3 (spec.md §5: "lazy top-up for rarely
// -needed vector-BVS pairs").
func VectorBVS(site xtal.Site, set *buffer.Set, st *xtal.Structure) []float64 {
	sum := []float64{0, 0, 0}
	for _, img := range set.Images {
		if !xtal.Opposite(site.Ion, img.Ion) {
			continue
		}
		disp := []float64{
			site.Coords[0] - img.Coords[0],
			site.Coords[1] - img.Coords[1],
			site.Coords[2] - img.Coords[2],
		}
		r := geom.VectorDistance(disp, st.RC)
		if r > st.RC {
			continue
		}
		rec, ok := st.Params.Get(dbIon(site.Ion), dbIon(img.Ion), false)
		if !ok {
			continue
		}
		bv := math.Exp((rec.R0 - r) * rec.Ib)
		sum[0] += bv * disp[0] / r
		sum[1] += bv * disp[1] / r
		sum[2] += bv * disp[2] / r
	}
	return sum
}

func magnitude(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Synthesize runs C8 over every lone-pair-flagged core site and appends
// dummy images to set in place: for each site whose vector BVS magnitude
// exceeds StrengthCutoff, every buffered image of that site gets a
// "lp<label>" dummy offset by offset (Angstrom, DefaultOffset if 0) along
// the unit vector-BVS direction.
func Synthesize(set *buffer.Set, st *xtal.Structure, offset float64) {
	if offset == 0 {
		offset = DefaultOffset
	}
	directions := make(map[string][]float64)
	for _, s := range st.Sites {
		if !s.LPFlag {
			continue
		}
		vbvs := VectorBVS(s, set, st)
		mag := magnitude(vbvs)
		if mag > StrengthCutoff {
			directions[s.Label] = []float64{vbvs[0] / mag, vbvs[1] / mag, vbvs[2] / mag}
		}
	}
	if len(directions) == 0 {
		return
	}
	extra := make([]buffer.Image, 0, len(set.Images))
	for _, img := range set.Images {
		if !img.LPFlag {
			continue
		}
		dir, ok := directions[img.SiteLabel]
		if !ok {
			continue
		}
		extra = append(extra, buffer.Image{
			Label:     "lp" + img.Label,
			SiteLabel: img.SiteLabel,
			Ion:       xtal.LonePairIon,
			LPFlag:    false,
			Coords: []float64{
				img.Coords[0] + offset*dir[0],
				img.Coords[1] + offset*dir[1],
				img.Coords[2] + offset*dir[2],
			},
			H: img.H, K: img.K, L: img.L,
		})
	}
	for _, img := range extra {
		set.AddImage(img)
	}
}
