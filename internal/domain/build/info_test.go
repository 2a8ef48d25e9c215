package build

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_Default(t *testing.T) {
	info := Info{Version: "v1.2.0"}.Default()

	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, "v1.2.0 (unknown)", info.Short())
}
