package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const product = "ruwler-go"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	IsRelease bool   `json:"is_release"`
	IsDirty   bool   `json:"is_dirty"`
}

// GetVersionInfo returns the client build information, falling back to the
// module build info when ldflags were not supplied.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = setting.Value
				}
			case "vcs.modified":
				info.IsDirty = setting.Value == "true"
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}

	return info
}

// GetShortVersion returns a short version string.
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit != "" {
		if info.IsDirty {
			return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
		}
		return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
	}
	return info.Version
}

// UserAgent returns the User-Agent header value sent by the client.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s)", product, Version, runtime.Version())
}
