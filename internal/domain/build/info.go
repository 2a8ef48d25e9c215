// Package build holds build information injected at link time.
package build

import (
	"fmt"
	"runtime"
)

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Default fills unset fields with development placeholders.
func (i Info) Default() Info {
	if i.Version == "" {
		i.Version = "dev"
	}
	if i.Commit == "" {
		i.Commit = "unknown"
	}
	if i.BuildDate == "" {
		i.BuildDate = "unknown"
	}
	if i.GoVersion == "" {
		i.GoVersion = runtime.Version()
	}
	return i
}

// Short returns "version (commit)".
func (i Info) Short() string {
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}

// RepoURL returns the repository URL.
func RepoURL() string {
	return "https://github.com/bnema/ctxtree"
}
