package keychain

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestResolveNamespace_Explicit(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "github.com/acme/app"}}, true)
	assert.Equal(t, "com.example.explicit", ResolveNamespace("com.example.explicit"))
}

func TestResolveNamespace_ApplicationID(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "github.com/acme/app"}}, true)
	assert.Equal(t, "github.com/acme/app", ResolveNamespace(""))
}

func TestResolveNamespace_Fallback(t *testing.T) {
	stubBuildInfo(t, nil, false)
	assert.Equal(t, FallbackNamespace, ResolveNamespace(""))

	stubBuildInfo(t, &debug.BuildInfo{}, true)
	assert.Equal(t, "com.keychain.service", ResolveNamespace(""))
}
