package core

import "log"

// Logf is the package-level diagnostic logger shared by the simulations. It
// defaults to log.Printf; SetLogger replaces or mutes it.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
