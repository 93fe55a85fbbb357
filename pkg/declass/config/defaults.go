// Package config provides configuration management for the declass
// archive decompiler.
package config

// Default configuration values for declass.
const (
	// DefaultWorkers is the default dispatch worker count in parallel mode.
	DefaultWorkers = 4

	// DefaultMaxDepth is the default nested-archive recursion limit.
	DefaultMaxDepth = 8

	// DefaultInnerArchives controls whether nested archives are
	// decompiled recursively by default.
	DefaultInnerArchives = true

	// DefaultOutputSuffix is appended to an archive entry name to form
	// the output scope of a nested archive.
	DefaultOutputSuffix = ".src"
)

// DefaultDecompiler is the external decompiler command invoked per
// class when none is configured. The staged class file path is
// appended as the final argument.
var DefaultDecompiler = []string{"jd-cli", "--outputConsole"}
