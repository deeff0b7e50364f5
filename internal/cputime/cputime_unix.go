//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package cputime

import (
	"time"

	"golang.org/x/sys/unix"
)

func userTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano())
}
