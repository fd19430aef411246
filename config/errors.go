// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "github.com/cpmech/gosl/chk"

// malformedInput wraps chk.Err for the MalformedInput error kind (spec.md
// §7): an unreadable or undecodable configuration file.
func malformedInput(format string, args ...interface{}) error {
	return chk.Err("MalformedInput: "+format, args...)
}
