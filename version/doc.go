// Package version reports build information for the binary.
//
// Version, GitCommit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/fluxkit/version.Version=1.0.0" ./cmd/moviesinfo
//
// Unset values fall back to the VCS stamps recorded by the Go toolchain.
package version
