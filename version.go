package main

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables injected via linker flags (ldflags).
//
//	go build -ldflags "-X main.Version=$(git describe --tags) ..." -o beamtypes
//
// Development builds keep the defaults below.
var (
	Version   = "dev"     // git tag (e.g., "v0.2.0")
	Commit    = "unknown" // git commit hash
	BuildDate = "unknown" // build timestamp
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "beamtypes %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	if Commit != "unknown" {
		fmt.Fprintf(w, "  commit: %s\n", Commit)
	}
	if BuildDate != "unknown" {
		fmt.Fprintf(w, "  built:  %s\n", BuildDate)
	}
}
