package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at link time.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

const (
	serviceName    = "registry-api"
	shortCommitLen = 7
)

// Info is the body of GET /version.
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GitBranch string `json:"git_branch,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
}

// IsRelease reports whether the binary was built from a tagged, clean tree.
func (i *Info) IsRelease() bool {
	return i.Version != "dev" && !i.Dirty
}

var readBuildInfo = debug.ReadBuildInfo

// GetVersionInfo merges the link-time values with the vcs settings stamped
// into the binary. Link-time values win.
func GetVersionInfo() *Info {
	info := &Info{
		Service:   serviceName,
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = strings.TrimPrefix(bi.Main.Version, "v")
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}

	if len(info.GitCommit) > shortCommitLen {
		info.GitCommit = info.GitCommit[:shortCommitLen]
	}
	return info
}

// GetShortVersion returns the version with the commit as semver build
// metadata, e.g. "1.4.0+3f2a9c1" or "dev+3f2a9c1.dirty".
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit == "" {
		return info.Version
	}
	v := info.Version + "+" + info.GitCommit
	if info.Dirty {
		v += ".dirty"
	}
	return v
}

// GetFullVersion returns the one-line form printed by --version.
func GetFullVersion() string {
	info := GetVersionInfo()
	var details []string
	if info.GitCommit != "" {
		details = append(details, "commit "+info.GitCommit)
	}
	if info.GitBranch != "" {
		details = append(details, "branch "+info.GitBranch)
	}
	if info.Dirty {
		details = append(details, "dirty")
	}
	if info.BuildTime != "" {
		details = append(details, "built "+info.BuildTime)
	}
	details = append(details, info.GoVersion)
	return fmt.Sprintf("%s %s (%s)", info.Service, info.Version, strings.Join(details, ", "))
}
