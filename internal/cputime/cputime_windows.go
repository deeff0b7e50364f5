//go:build windows

package cputime

import (
	"time"

	"golang.org/x/sys/windows"
)

func userTime() time.Duration {
	var creation, exit, kernel, user windows.Filetime
	err := windows.GetProcessTimes(windows.CurrentProcess(), &creation, &exit, &kernel, &user)
	if err != nil {
		return 0
	}
	// FILETIME counts 100ns ticks.
	ticks := int64(user.HighDateTime)<<32 | int64(user.LowDateTime)
	return time.Duration(ticks * 100)
}
