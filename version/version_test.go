package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInfo(t *testing.T) {
	bi, err := BuildInfo()
	require.NoError(t, err)
	assert.NotNil(t, bi)
	assert.NotEmpty(t, Module())
}

func TestModuleVersion(t *testing.T) {
	testCases := []struct {
		name string
		bi   *debug.BuildInfo
		want string
	}{
		{
			name: "main module",
			bi:   &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "v1.2.0"}},
			want: "v1.2.0",
		},
		{
			name: "main module without version",
			bi:   &debug.BuildInfo{Main: debug.Module{Path: ModulePath}},
			want: Devel,
		},
		{
			name: "dependency",
			bi: &debug.BuildInfo{
				Main: debug.Module{Path: "example.com/app"},
				Deps: []*debug.Module{
					{Path: "github.com/sirupsen/logrus", Version: "v1.9.3"},
					{Path: ModulePath, Version: "v0.3.1"},
				},
			},
			want: "v0.3.1",
		},
		{
			name: "replaced dependency",
			bi: &debug.BuildInfo{
				Main: debug.Module{Path: "example.com/app"},
				Deps: []*debug.Module{
					{Path: ModulePath, Version: "v0.3.1", Replace: &debug.Module{Path: "../substitute"}},
				},
			},
			want: Devel,
		},
		{
			name: "not linked",
			bi:   &debug.BuildInfo{Main: debug.Module{Path: "example.com/app"}},
			want: Devel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, moduleVersion(tc.bi, ModulePath))
		})
	}
}
