// Released under an MIT license. See LICENSE.

//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package port

import (
	"os"
)

func ready(*os.File) bool {
	return false
}
