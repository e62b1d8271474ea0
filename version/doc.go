// Package version reports the envguard build.
//
// Release builds stamp the variables through -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/envguard/version.Version=v0.4.0 \
//	    -X github.com/kbukum/envguard/version.GitCommit=$(git rev-parse --short HEAD)" \
//	    ./cmd/envguard
//
// Unstamped builds fall back to the module's VCS build settings.
package version
