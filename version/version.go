// Package version reports the version of the substitute module linked into the running binary.
package version

import (
	"errors"
	"runtime/debug"
)

// ModulePath is the import path of the substitute module.
const ModulePath = "github.com/anoideaopen/substitute"

// Devel is reported when the module version is unknown, e.g. in a local build.
const Devel = "(devel)"

// ErrNoBuildInfo is returned when the binary carries no build information.
var ErrNoBuildInfo = errors.New("build information is not available")

// BuildInfo returns the build information
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return nil, ErrNoBuildInfo
	}

	return bi, nil
}

// Module returns the version of the substitute module, Devel if it cannot be determined.
func Module() string {
	bi, err := BuildInfo()
	if err != nil {
		return Devel
	}

	return moduleVersion(bi, ModulePath)
}

func moduleVersion(bi *debug.BuildInfo, path string) string {
	if bi.Main.Path == path {
		return orDevel(bi.Main.Version)
	}

	for _, dep := range bi.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil {
			return orDevel(dep.Replace.Version)
		}
		return orDevel(dep.Version)
	}

	return Devel
}

func orDevel(v string) string {
	if v == "" {
		return Devel
	}

	return v
}
