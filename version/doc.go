// Package version exposes the build identity of a seiskit binary.
//
// Version, commit and build time are stamped at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/seiskit/seiskit/version.Version=1.2.0"
//
// When the ldflags are absent the package falls back to the VCS metadata
// Go embeds into the binary.
package version
