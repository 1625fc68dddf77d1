// Package platform detects the host platform family the release scripts are running on.
//
// Decisions that depend on the platform take a [Platform] value instead of looking at the
// running system, which keeps them testable; [Current] is the only place that reads it.
package platform

import (
	"os"
	"runtime"
)

// Platform is the coarse operating system family of a host.
type Platform int

const (
	// LinuxLike covers every non macOS host.
	LinuxLike Platform = iota
	MacOS
)

// FromGOOS maps a GOOS value to its platform family.
func FromGOOS(goos string) Platform {
	if goos == "darwin" {
		return MacOS
	}
	return LinuxLike
}

// Current returns the platform family of the running host.
func Current() Platform {
	return FromGOOS(runtime.GOOS)
}

// IsMacOS returns true for the macOS family.
func (p Platform) IsMacOS() bool {
	return p == MacOS
}

func (p Platform) String() string {
	if p == MacOS {
		return "macos"
	}
	return "linux"
}

// IsCIEnv returns true if the current environment is a known ci system.
func IsCIEnv() bool {
	return os.Getenv("CI") != ""
}
