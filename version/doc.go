// Package version carries the build information of registry-api.
//
// Version, git commit, branch and build time are set at link time; fields
// left empty are filled from the module build info (vcs.* settings):
//
//	go build -ldflags "-X github.com/kbukum/registry-api/version.Version=1.0.0" ./cmd/registry-api
//
// The short form is the fallback service.version of the telemetry resource
// and the full form is printed by --version.
package version
