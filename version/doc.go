// Package version carries the client's build information.
//
// Version and GitCommit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/ruwler/ruwler-go/version.Version=1.2.0"
//
// UserAgent renders the value sent with every API request.
package version
