// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package charge implements the effective-charge solver (C9): it scales
// formal oxidation states into effective charges that balance total
// anion/cation Coulomb weight while preserving each ion's 1/sqrt(period)
// scaling. It has no dependency on the crystal data model so that xtal can
// depend on it without creating an import cycle.
package charge

import "math"

// IonInfo is the minimal per-ion data the solver needs: its identity key
// (typically an xtal.Ion's String() form), formal oxidation state, period
// (principal quantum number) and site multiplicity within the cell.
type IonInfo struct {
	Key     string
	OxState int
	Period  int
	Count   int
}

// Solve returns the effective charge for every distinct ion, keyed by
// IonInfo.Key. For an ion with oxidation V, period n and multiplicity N,
// the partition value is P = V*N/sqrt(n); Σ+ and Σ- are the partition-value
// sums over cations and anions respectively. Then:
//
//	V<0: effective = V/sqrt(n) * sqrt(|Σ+/Σ-|)
//	V>0: effective = V/sqrt(n) * sqrt(|Σ-/Σ+|)
//
// Ions with V==0 get no entry (there is nothing to balance).
func Solve(ions []IonInfo) map[string]float64 {
	var sigmaPos, sigmaNeg float64
	for _, ion := range ions {
		part := float64(ion.OxState*ion.Count) / math.Sqrt(float64(ion.Period))
		if ion.OxState > 0 {
			sigmaPos += part
		} else if ion.OxState < 0 {
			sigmaNeg += part
		}
	}

	out := make(map[string]float64, len(ions))
	for _, ion := range ions {
		if ion.OxState == 0 {
			continue
		}
		scale := float64(ion.OxState) / math.Sqrt(float64(ion.Period))
		if ion.OxState < 0 {
			out[ion.Key] = scale * math.Sqrt(math.Abs(sigmaPos/sigmaNeg))
		} else {
			out[ion.Key] = scale * math.Sqrt(math.Abs(sigmaNeg/sigmaPos))
		}
	}
	return out
}
