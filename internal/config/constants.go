// Package config owns the compiler's strictness options, their
// per-file pragma overrides, and the tsgo.yaml project file.
package config

// Version is the current tsgo-core version.
var Version = "0.1.0"

const SourceFileExt = ".ts"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".ts", ".tsx", ".mts", ".cts"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is a process-wide test-mode switch. It defaults to false;
// cmd/tsc does not set it and no output path in this module reads it.
var IsTestMode = false
