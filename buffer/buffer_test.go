// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/robbie6shaw/bvmap/geom"
	"github.com/robbie6shaw/bvmap/xtal"
)

func betaPbF2Cell(tst *testing.T) (*xtal.Cell, []xtal.Site) {
	cell, err := xtal.NewCell([]float64{5.9306, 0, 0}, []float64{0, 5.9306, 0}, []float64{0, 0, 5.9306}, 208.591160224616)
	if err != nil {
		tst.Fatal(err)
	}
	pb := xtal.Ion{Element: "Pb", OxState: 2}
	f := xtal.Ion{Element: "F", OxState: -1}
	sites := []xtal.Site{
		xtal.NewSite("Pb1-0", pb, true, []float64{0, 0, 0}),
		xtal.NewSite("F1-0", f, false, []float64{2.9653, 2.9653, 0}),
		xtal.NewSite("F1-1", f, false, []float64{2.9653, 0, 2.9653}),
		xtal.NewSite("F1-2", f, false, []float64{0, 2.9653, 2.9653}),
	}
	return cell, sites
}

func TestBufferShape(tst *testing.T) {
	chk.PrintTitle("buffer01")
	cell, _ := betaPbF2Cell(tst)
	shape := Shape(cell.Lengths(), 6)
	if shape != [3]int{5, 5, 5} {
		tst.Fatalf("expected (5,5,5), got %v", shape)
	}
}

func TestRequiredVolumeBoundingBox(tst *testing.T) {
	chk.PrintTitle("buffer02")
	cell, sites := betaPbF2Cell(tst)
	set := Build(cell, sites, 6)
	chk.Vector(tst, "required volume start", 1e-9, set.ReqCartStart, []float64{-6, -6, -6})
	chk.Vector(tst, "required volume end", 1e-4, set.ReqCartEnd, []float64{11.9306, 11.9306, 11.9306})
}

func TestBufferedSiteCount(tst *testing.T) {
	chk.PrintTitle("buffer03")
	cell, sites := betaPbF2Cell(tst)
	set := Build(cell, sites, 6)
	// spec.md S3: strictly less than 5^3*4 = 500, at least 108.
	if len(set.Images) >= 500 {
		tst.Fatalf("expected fewer than 500 buffered images, got %d", len(set.Images))
	}
	if len(set.Images) < 108 {
		tst.Fatalf("expected at least 108 buffered images, got %d", len(set.Images))
	}
}

func TestEveryBufferedImageInsideRequiredVolume(tst *testing.T) {
	chk.PrintTitle("buffer04")
	cell, sites := betaPbF2Cell(tst)
	set := Build(cell, sites, 6)
	for _, img := range set.Images {
		frac := cell.FracFromCart(img.Coords)
		if !geom.Inside(set.ReqFracStart, set.ReqFracEnd, frac) {
			tst.Fatalf("image %s fractional coord %v outside required volume [%v,%v]",
				img.Label, frac, set.ReqFracStart, set.ReqFracEnd)
		}
	}
}

func TestCoreCellTranslationIncluded(tst *testing.T) {
	chk.PrintTitle("buffer05")
	cell, sites := betaPbF2Cell(tst)
	set := Build(cell, sites, 6)
	found := false
	for _, img := range set.Images {
		if img.SiteLabel == "Pb1-0" && img.H == 0 && img.K == 0 && img.L == 0 {
			found = true
			chk.Vector(tst, "core-cell image coords", 1e-12, img.Coords, []float64{0, 0, 0})
		}
	}
	if !found {
		tst.Fatal("expected the (0,0,0) image of Pb1-0 to be present")
	}
}

func TestSmallCellWidensBuffer(tst *testing.T) {
	chk.PrintTitle("buffer06")
	// a cell axis shorter than rC must widen that axis's buffer to >=5.
	cell, err := xtal.NewCell([]float64{2, 0, 0}, []float64{0, 10, 0}, []float64{0, 0, 10}, 200)
	if err != nil {
		tst.Fatal(err)
	}
	shape := Shape(cell.Lengths(), 6)
	if shape[0] < 5 {
		tst.Fatalf("expected axis 0 buffer >= 5 since 2 < rC=6, got %d", shape[0])
	}
	if shape[1] != 3 || shape[2] != 3 {
		tst.Fatalf("expected axes 1,2 to stay at 3 since 10 >= rC=6, got %v", shape)
	}
}
