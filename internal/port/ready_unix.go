// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package port

import (
	"os"

	"golang.org/x/sys/unix"
)

func ready(f *os.File) bool {
	if f == nil {
		return false
	}

	fds := []unix.PollFd{{Fd: int32(f.Fd()), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, 0)

	return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
}
