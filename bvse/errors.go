// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bvse

import "github.com/cpmech/gosl/chk"

// missingParameter wraps chk.Err for the MissingParameter error kind
// (spec.md §7): unlike BVSM, which silently skips an attractive pair with
// no parameter record, BVSE treats it as fatal since the Morse bonding
// parameters are non-optional.
func missingParameter(format string, args ...interface{}) error {
	return chk.Err("MissingParameter: "+format, args...)
}
