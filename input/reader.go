// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package input parses the tab-separated structure description (C12):
// conductor identity, cell geometry, and the P1 site table, handed off by
// an external parser upstream of this module (spec.md §6).
package input

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/robbie6shaw/bvmap/bvdb"
	"github.com/robbie6shaw/bvmap/xtal"
)

// headerLines is the number of fixed records preceding the site table:
// conductor, cell parameters, volume, three cell vectors, one skipped
// header line.
const headerLines = 7

// Description is the parsed structure description, still one step short of
// a xtal.Structure: BuildStructure performs the eager parameter fetch and
// effective-charge solve C3 requires.
type Description struct {
	Conductor  xtal.Ion
	CellParams [6]float64 // a, b, c, alpha, beta, gamma, as given in the file
	Volume     float64
	Vectors    [3][3]float64
	Sites      []xtal.Site
}

// ReadFile loads and parses a structure description file.
func ReadFile(path string) (*Description, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, malformedInput("cannot read %q: %v", path, err)
	}
	return Parse(string(data))
}

// Parse decodes a structure description from its tab-separated text form
// (spec.md §6), mirroring BVStructure's header-then-site-table reader.
func Parse(text string) (*Description, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) < headerLines {
		return nil, malformedInput("expected at least %d header lines, got %d", headerLines, len(lines))
	}

	cond, err := parseConductor(lines[0])
	if err != nil {
		return nil, err
	}

	cellParams, err := parseFields(lines[1], 6)
	if err != nil {
		return nil, malformedInput("cell parameter line: %v", err)
	}
	var desc Description
	desc.Conductor = cond
	copy(desc.CellParams[:], cellParams)

	volLine, err := parseFields(lines[2], 1)
	if err != nil {
		return nil, malformedInput("volume line: %v", err)
	}
	desc.Volume = volLine[0]

	for i := 0; i < 3; i++ {
		vec, err := parseFields(lines[3+i], 3)
		if err != nil {
			return nil, malformedInput("cell vector %d: %v", i, err)
		}
		copy(desc.Vectors[i][:], vec)
	}

	// lines[6] is the header-skipped record (spec.md §6); its contents are
	// not part of the structure description.

	for i := headerLines; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		site, err := parseSite(lines[i])
		if err != nil {
			return nil, malformedInput("site record %d: %v", i-headerLines, err)
		}
		desc.Sites = append(desc.Sites, site)
	}
	if len(desc.Sites) == 0 {
		return nil, malformedInput("no site records found")
	}
	return &desc, nil
}

func parseConductor(line string) (xtal.Ion, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 2 {
		return xtal.Ion{}, malformedInput("conductor line needs 2 fields, got %d", len(cols))
	}
	ox, err := strconv.Atoi(strings.TrimSpace(cols[1]))
	if err != nil {
		return xtal.Ion{}, malformedInput("conductor oxidation state %q: %v", cols[1], err)
	}
	return xtal.Ion{Element: strings.TrimSpace(cols[0]), OxState: ox}, nil
}

func parseFields(line string, n int) ([]float64, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < n {
		return nil, malformedInput("expected %d tab-separated fields, got %d", n, len(cols))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(cols[i]), 64)
		if err != nil {
			return nil, malformedInput("field %d %q: %v", i, cols[i], err)
		}
		out[i] = v
	}
	return out, nil
}

// parseSite decodes one site record: <label>\t<element>\t<oxidation_state>\t<lp_flag>\t<x>\t<y>\t<z>.
func parseSite(line string) (xtal.Site, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 7 {
		return xtal.Site{}, malformedInput("site record needs 7 fields, got %d", len(cols))
	}
	label := strings.TrimSpace(cols[0])
	element := strings.TrimSpace(cols[1])
	ox, err := strconv.Atoi(strings.TrimSpace(cols[2]))
	if err != nil {
		return xtal.Site{}, malformedInput("oxidation state %q: %v", cols[2], err)
	}
	lpFlag, err := strconv.Atoi(strings.TrimSpace(cols[3]))
	if err != nil {
		return xtal.Site{}, malformedInput("lp flag %q: %v", cols[3], err)
	}
	coords := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(cols[4+i]), 64)
		if err != nil {
			return xtal.Site{}, malformedInput("coordinate %d %q: %v", i, cols[4+i], err)
		}
		coords[i] = v
	}
	ion := xtal.Ion{Element: element, OxState: ox}
	return xtal.NewSite(label, ion, lpFlag != 0, coords), nil
}

// BuildCell assembles the xtal.Cell the description's vectors and volume
// describe.
func (o *Description) BuildCell() (*xtal.Cell, error) {
	return xtal.NewCell(o.Vectors[0][:], o.Vectors[1][:], o.Vectors[2][:], o.Volume)
}

// BuildStructure assembles the full xtal.Structure: the cell, the eager
// parameter prefetch, and the effective-charge solve (C3), against the
// supplied parameter store.
func (o *Description) BuildStructure(store bvdb.Store, bvse bool) (*xtal.Structure, error) {
	cell, err := o.BuildCell()
	if err != nil {
		return nil, err
	}
	return xtal.NewStructure(cell, o.Sites, o.Conductor, store, bvse)
}
