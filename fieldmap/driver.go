// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fieldmap implements the map driver (C10): it orchestrates the
// buffer builder and voxel grid, optionally injects lone-pair dummies, and
// populates a grid by partitioning the outermost voxel axis across
// goroutines (in-process) or MPI ranks (distributed), matching the
// rank-partitioning idiom the teacher applies to its own domain
// decomposition.
package fieldmap

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/robbie6shaw/bvmap/bvse"
	"github.com/robbie6shaw/bvmap/bvsm"
	"github.com/robbie6shaw/bvmap/buffer"
	"github.com/robbie6shaw/bvmap/lonepair"
	"github.com/robbie6shaw/bvmap/voxel"
	"github.com/robbie6shaw/bvmap/xtal"
)

// Driver owns the buffered set and grid derived from one Structure, reused
// and reset across runs (spec.md §3 lifecycle).
type Driver struct {
	Structure *xtal.Structure
	Set       *buffer.Set
	Grid      *voxel.Grid
}

// NewDriver wraps an already-built Structure.
func NewDriver(st *xtal.Structure) *Driver {
	return &Driver{Structure: st}
}

// InitializeMap runs C4 (buffer build) then C5 (grid sizing) at the
// requested resolution delta (Angstrom).
func (o *Driver) InitializeMap(delta float64) {
	o.Set = buffer.Build(o.Structure.Cell, o.Structure.Sites, o.Structure.RC)
	o.Grid = voxel.NewGrid(o.Structure.Cell, delta)
}

// SynthesizeLonePairs runs C8 over the already-built buffered set, injecting
// dummy sites in place. offset is the dummy-site distance (Angstrom, 1 A
// default if 0). Call after InitializeMap and before populating a grid.
func (o *Driver) SynthesizeLonePairs(offset float64) {
	lonepair.Synthesize(o.Set, o.Structure, offset)
}

// planeRanges splits [0,nh) into nproc contiguous, near-equal chunks and
// returns the one owned by rank proc.
func planeRanges(nh, nproc, proc int) (start, end int) {
	base := nh / nproc
	rem := nh % nproc
	start = proc*base + min(proc, rem)
	end = start + base
	if proc < rem {
		end++
	}
	return
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// distribute zeroes the grid, partitions [0,nh) across MPI ranks (if
// mpi.IsOn()), then
// further partitions each rank's share across goroutines, running fillRange
// over every disjoint chunk — each plane has no data dependency on any
// other (spec.md §5), so no synchronization is needed beyond the final
// join. fillRange must only read from whatever compact arrays its closure
// captured (staged once by the caller before distribute runs) and must
// never itself touch the parameter store, since a concurrent cache miss
// across workers would be a data race (spec.md §5/§10). Afterwards, if
// running under MPI, every rank's disjoint contribution is summed into
// every rank's own grid via AllReduceSum so each process ends up holding
// the complete field: planes owned by other ranks are still zero at that
// point, so the sum reconstructs the whole grid without double-counting.
func (o *Driver) distribute(fillRange func(hStart, hEnd int)) {
	o.Grid.Reset()
	nh := o.Grid.Nh
	nproc, proc := 1, 0
	if mpi.IsOn() {
		nproc, proc = mpi.Size(), mpi.Rank()
	}
	rankStart, rankEnd := planeRanges(nh, nproc, proc)

	nworkers := runtime.NumCPU()
	if nworkers > rankEnd-rankStart {
		nworkers = rankEnd - rankStart
	}
	if nworkers < 1 {
		nworkers = 1
	}
	var wg sync.WaitGroup
	for w := 0; w < nworkers; w++ {
		wStart, wEnd := planeRanges(rankEnd-rankStart, nworkers, w)
		wStart += rankStart
		wEnd += rankStart
		wg.Add(1)
		go func(a, b int) {
			defer wg.Done()
			fillRange(a, b)
		}(wStart, wEnd)
	}
	wg.Wait()

	if mpi.IsOn() && nproc > 1 {
		flat := o.flatten()
		workspace := make([]float64, len(flat))
		mpi.AllReduceSum(flat, workspace)
		o.unflatten(flat)
	}
}

// PopulateBVSM fills Grid with the BVSM mismatch field. The compact bonds/
// pens arrays are staged once via bvsm.BuildArrays before the h axis is
// fanned out across goroutines/ranks, so every worker only reads them —
// no worker ever touches the parameter store itself (spec.md §5/§10).
func (o *Driver) PopulateBVSM(mode bvsm.Mode, form bvsm.PenaltyForm, k float64) {
	bonds, pens := bvsm.BuildArrays(o.Set, o.Structure)
	o.distribute(func(hStart, hEnd int) {
		bvsm.PopulateRange(o.Grid, bonds, pens, o.Structure, mode, form, k, hStart, hEnd)
	})
	io.Pf("bvsm: populated %d x %d x %d grid\n", o.Grid.Nh, o.Grid.Nk, o.Grid.Nl)
}

// PopulateBVSE fills Grid with the BVSE energy field. The compact bonds/
// couls arrays are staged once via bvse.BuildArrays before the h axis is
// fanned out (see PopulateBVSM), so a MissingParameter error (spec.md §7)
// surfaces before any goroutine starts, and no worker ever touches the
// parameter store.
func (o *Driver) PopulateBVSE(mode bvse.Mode, effectiveCharge bool) error {
	bonds, couls, err := bvse.BuildArrays(o.Set, o.Structure, effectiveCharge)
	if err != nil {
		return err
	}
	o.distribute(func(hStart, hEnd int) {
		bvse.PopulateRange(o.Grid, bonds, couls, o.Structure, mode, hStart, hEnd)
	})
	io.Pf("bvse: populated %d x %d x %d grid\n", o.Grid.Nh, o.Grid.Nk, o.Grid.Nl)
	return nil
}

// flatten copies the grid's current values into a single contiguous slice
// in row-major (h,k,l) order, the compact-array layout AllReduceSum needs.
func (o *Driver) flatten() []float64 {
	flat := make([]float64, 0, o.Grid.Nh*o.Grid.Nk*o.Grid.Nl)
	for h := 0; h < o.Grid.Nh; h++ {
		for k := 0; k < o.Grid.Nk; k++ {
			flat = append(flat, o.Grid.Values[h][k]...)
		}
	}
	return flat
}

// unflatten writes flat back into the grid in the same row-major order
// flatten used to read it out.
func (o *Driver) unflatten(flat []float64) {
	i := 0
	for h := 0; h < o.Grid.Nh; h++ {
		for k := 0; k < o.Grid.Nk; k++ {
			n := copy(o.Grid.Values[h][k], flat[i:])
			i += n
		}
	}
}
