// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xtal

import (
	"github.com/robbie6shaw/bvmap/bvdb"
	"github.com/robbie6shaw/bvmap/charge"
)

// defaultCutoff is the safe fallback cutoff radius (spec.md §3 invariant)
// used when no attractive-pair parameter record is found in the store.
const defaultCutoff = 6.0

// Structure is the parsed, P1-expanded unit cell plus everything derived
// from it at construction time: the conductor identity, the cutoff radius,
// the prefetched bond-valence parameter cache and the effective-charge
// table (C3).
type Structure struct {
	Cell      *Cell
	Sites     []Site
	siteIndex map[string]int

	Conductor Ion
	RC        float64

	Params *bvdb.Cache
	Charges map[string]float64
}

// NewStructure builds a Structure from an already-parsed cell and site
// table. It eagerly fetches bond-valence parameters for (conductor, ion)
// for every distinct non-conductor ion whose oxidation state has the
// opposite sign of the conductor's (attractive pairs only), sets RC to the
// maximum r_cutoff among the records actually found (or the 6 A default if
// none were found), and runs the effective-charge solver (C9) over the
// site table.
func NewStructure(cell *Cell, sites []Site, conductor Ion, store bvdb.Store, bvse bool) (*Structure, error) {
	if len(sites) == 0 {
		return nil, malformedInput("structure has no sites")
	}
	idx := make(map[string]int, len(sites))
	for i, s := range sites {
		idx[s.Label] = i
	}

	cache := bvdb.NewCache(store)
	maxCutoff := 0.0
	seen := make(map[Ion]bool)
	for _, s := range sites {
		if s.Ion == conductor || seen[s.Ion] {
			continue
		}
		seen[s.Ion] = true
		if !Opposite(conductor, s.Ion) {
			continue
		}
		rec, ok := cache.Get(toDBIon(conductor), toDBIon(s.Ion), bvse)
		if !ok {
			continue
		}
		if rec.RCutoff > maxCutoff {
			maxCutoff = rec.RCutoff
		}
	}
	rc := maxCutoff
	if rc == 0 {
		rc = defaultCutoff
	}

	charges := effectiveCharges(sites, store)

	return &Structure{
		Cell:      cell,
		Sites:     sites,
		siteIndex: idx,
		Conductor: conductor,
		RC:        rc,
		Params:    cache,
		Charges:   charges,
	}, nil
}

// Site looks up a core-cell site by its p1 label.
func (o *Structure) Site(label string) (Site, bool) {
	i, ok := o.siteIndex[label]
	if !ok {
		return Site{}, false
	}
	return o.Sites[i], true
}

// toDBIon converts a xtal.Ion to the parameter-store's own Ion type; the
// two are field-for-field identical, but bvdb must not import xtal to keep
// it a leaf dependency of the structure container rather than the reverse.
func toDBIon(ion Ion) bvdb.Ion {
	return bvdb.Ion{Element: ion.Element, OxState: ion.OxState}
}

// effectiveCharges groups the core site table by ion identity and runs the
// C9 solver over the resulting (oxidation state, period, multiplicity)
// triples.
func effectiveCharges(sites []Site, store bvdb.Store) map[string]float64 {
	order := []Ion{}
	counts := map[Ion]int{}
	for _, s := range sites {
		if counts[s.Ion] == 0 {
			order = append(order, s.Ion)
		}
		counts[s.Ion]++
	}
	infos := make([]charge.IonInfo, 0, len(order))
	for _, ion := range order {
		infos = append(infos, charge.IonInfo{
			Key:     ion.String(),
			OxState: ion.OxState,
			Period:  store.Period(ion.Element),
			Count:   counts[ion],
		})
	}
	return charge.Solve(infos)
}
