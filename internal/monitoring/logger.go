// Package monitoring routes the lattice driver's progress and scene messages.
package monitoring

import "log"

// Logf receives scene setup messages and per-frame progress lines. The
// driver's -q flag and tests swap it out through SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger installs f as Logf; nil silences all output.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// ReportFrame reports whether the frame with zero-based index i should be
// logged: the 1st, 2nd, 4th, 8th ... frames, so long runs log sparsely.
func ReportFrame(i int) bool {
	return i >= 0 && ((i+1)&i) == 0
}
