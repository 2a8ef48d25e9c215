// Command ctxtree builds browsing context trees from navigation events.
package main

import (
	"runtime"

	"github.com/bnema/ctxtree/internal/cli/cmd"
	"github.com/bnema/ctxtree/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	cmd.Execute()
}
