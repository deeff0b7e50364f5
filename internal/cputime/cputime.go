// Package cputime reads the user-mode CPU time consumed by the current
// process. The clock source is chosen at build time per operating system.
package cputime

import "time"

// UserSeconds returns the user-mode CPU seconds consumed by the process since
// it started, or 0 when the platform cannot report it.
func UserSeconds() float64 {
	return User().Seconds()
}

// User is UserSeconds as a Duration.
func User() time.Duration {
	return userTime()
}
