//go:build !statsview

package stats

import "io"

// LaunchRuntimeView does nothing unless built with the statsview tag.
func LaunchRuntimeView(io.Writer) {}

// RuntimeViewAvailable reports whether LaunchRuntimeView does anything.
func RuntimeViewAvailable() bool {
	return false
}
