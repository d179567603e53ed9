// Released under an MIT license. See LICENSE.

// Package boot provides the Scheme library loaded by every interpreter.
package boot

import _ "embed" // Blank import required by embed.

//go:embed init.scm
var script string //nolint:gochecknoglobals

// Script returns the bootstrap library.
func Script() string {
	return script
}
