// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xtal

import "github.com/cpmech/gosl/chk"

// invalidGeometry wraps chk.Err for the InvalidGeometry error kind (spec.md
// §7): non-positive cell volume or singular cell vectors, fatal during
// structure construction.
func invalidGeometry(format string, args ...interface{}) error {
	return chk.Err("InvalidGeometry: "+format, args...)
}

// malformedInput wraps chk.Err for the MalformedInput error kind: a
// truncated or badly-formatted input description.
func malformedInput(format string, args ...interface{}) error {
	return chk.Err("MalformedInput: "+format, args...)
}
