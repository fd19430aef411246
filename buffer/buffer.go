// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package buffer implements the buffer builder (C4): it expands the core
// site table into a supercell of images large enough to cover every
// interaction within the cutoff radius, filtering images by a fractional
// bounding box (the "required volume").
package buffer

import (
	"math"
	"strconv"

	"github.com/robbie6shaw/bvmap/geom"
	"github.com/robbie6shaw/bvmap/xtal"
)

// Image is one translated copy of a core site in the buffered set, keyed
// by (p1_label, (h,k,l)).
type Image struct {
	Label     string    // e.g. "Pb1-0(000)"
	SiteLabel string    // parent core-cell label, e.g. "Pb1-0"
	Ion       xtal.Ion  // ion identity (single canonical oxidation state, open question #1)
	LPFlag    bool      // inherited from the parent site
	Coords    []float64 // translated Cartesian coordinates
	H, K, L   int       // integer translation applied
}

// Set is the buffered image table plus the geometry it was built from.
type Set struct {
	Images       []Image
	Shape        [3]int    // Bh, Bk, Bl
	ReqCartStart []float64 // Cartesian corner of the required volume
	ReqCartEnd   []float64
	ReqFracStart []float64 // fractional image of the required volume
	ReqFracEnd   []float64
}

// Shape computes the buffer shape (spec.md §4.4): starts at (3,3,3), then
// adds 2 on every axis whose cell length is below rc.
func Shape(lengths [3]float64, rc float64) [3]int {
	shape := [3]int{3, 3, 3}
	for i := 0; i < 3; i++ {
		if lengths[i] < rc {
			shape[i] += 2
		}
	}
	return shape
}

// requiredVolume computes the Cartesian and fractional bounding box of the
// required volume: the Cartesian corners -rc*1 and a+b+c+rc*1, carried
// through FracFromCart.
func requiredVolume(cell *xtal.Cell, rc float64) (cartStart, cartEnd, fracStart, fracEnd []float64) {
	cartStart = []float64{-rc, -rc, -rc}
	sum := make([]float64, 3)
	for i := 0; i < 3; i++ {
		sum[i] = cell.V[0][i] + cell.V[1][i] + cell.V[2][i]
	}
	cartEnd = []float64{sum[0] + rc, sum[1] + rc, sum[2] + rc}
	fracStart = cell.FracFromCart(cartStart)
	fracEnd = cell.FracFromCart(cartEnd)
	return
}

// Build enumerates buffer images for every core site over every integer
// translation in the buffer shape, admitting an image iff its fractional
// coordinate lies inside the required volume. (0,0,0) is always admitted
// for every core site, so the core cell is present in the buffered set.
func Build(cell *xtal.Cell, sites []xtal.Site, rc float64) *Set {
	shape := Shape(cell.Lengths(), rc)
	cartStart, cartEnd, fracStart, fracEnd := requiredVolume(cell, rc)

	set := &Set{
		Shape:        shape,
		ReqCartStart: cartStart,
		ReqCartEnd:   cartEnd,
		ReqFracStart: fracStart,
		ReqFracEnd:   fracEnd,
	}

	hLo, hHi := rangeBounds(shape[0])
	kLo, kHi := rangeBounds(shape[1])
	lLo, lHi := rangeBounds(shape[2])

	for _, s := range sites {
		for h := hLo; h < hHi; h++ {
			for k := kLo; k < kHi; k++ {
				for l := lLo; l < lHi; l++ {
					shift := []float64{float64(h), float64(k), float64(l)}
					coord := cell.Translate(s.Coords, shift)
					frac := cell.FracFromCart(coord)
					if geom.Inside(fracStart, fracEnd, frac) {
						set.Images = append(set.Images, Image{
							Label:     imageLabel(s.Label, h, k, l),
							SiteLabel: s.Label,
							Ion:       s.Ion,
							LPFlag:    s.LPFlag,
							Coords:    coord,
							H:         h, K: k, L: l,
						})
					}
				}
			}
		}
	}
	return set
}

// rangeBounds mirrors range(-floor(B/2), ceil(B/2)) from the source.
func rangeBounds(b int) (lo, hi int) {
	lo = -int(math.Floor(float64(b) / 2))
	hi = int(math.Ceil(float64(b) / 2))
	return
}

func imageLabel(siteLabel string, h, k, l int) string {
	return siteLabel + "(" + strconv.Itoa(h) + strconv.Itoa(k) + strconv.Itoa(l) + ")"
}

// AddImage appends a synthesized image (used by the lone-pair synthesizer,
// C8, to insert dummy sites after the initial buffer has been built).
func (o *Set) AddImage(img Image) {
	o.Images = append(o.Images, img)
}
