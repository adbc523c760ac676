// Package version provides build information for lightningdodge
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"time"
)

// Name is the program name shown in version output
const Name = "lightningdodge"

var (
	// These will be set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	BuildUser = "unknown"
)

// BuildInfo contains detailed build information
type BuildInfo struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit"`
	BuildTime  string `json:"build_time"`
	BuildUser  string `json:"build_user"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	Arch       string `json:"arch"`
	CGOEnabled bool   `json:"cgo_enabled"`
}

// GetBuildInfo returns build information, filling unset ldflags values
// from the VCS stamp embedded by the go command
func GetBuildInfo() BuildInfo {
	bi := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		BuildUser: BuildUser,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if GitCommit == "unknown" {
				bi.GitCommit = setting.Value
			}
		case "vcs.time":
			if BuildTime == "unknown" {
				bi.BuildTime = setting.Value
			}
		case "CGO_ENABLED":
			bi.CGOEnabled = setting.Value == "1"
		}
	}

	return bi
}

// shortCommit abbreviates a commit hash to seven characters
func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// GetVersion returns a simple version string
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if commit := GetBuildInfo().GitCommit; commit != "unknown" && len(commit) >= 7 {
		return "dev-" + shortCommit(commit)
	}
	return Version
}

// GetDetailedVersion returns a one-line description of the build
func GetDetailedVersion() string {
	return detailedVersion(GetBuildInfo())
}

func detailedVersion(bi BuildInfo) string {
	s := fmt.Sprintf("%s version %s", Name, bi.Version)

	if bi.GitCommit != "unknown" {
		s += fmt.Sprintf(" (commit %s)", shortCommit(bi.GitCommit))
	}

	if bi.BuildTime != "unknown" {
		if t, err := time.Parse(time.RFC3339, bi.BuildTime); err == nil {
			s += fmt.Sprintf(" built on %s", t.Format("2006-01-02 15:04:05"))
		} else {
			s += fmt.Sprintf(" built on %s", bi.BuildTime)
		}
	}

	s += fmt.Sprintf(" with %s for %s/%s", bi.GoVersion, bi.Platform, bi.Arch)

	if bi.BuildUser != "unknown" {
		s += fmt.Sprintf(" by %s", bi.BuildUser)
	}

	return s
}

// PrintBuildInfo writes formatted build information to w
func PrintBuildInfo(w io.Writer) {
	bi := GetBuildInfo()

	fmt.Fprintf(w, "%s - tile and sprite PPU demo\n", Name)
	fmt.Fprintf(w, "Version:     %s\n", bi.Version)
	fmt.Fprintf(w, "Git Commit:  %s\n", bi.GitCommit)
	fmt.Fprintf(w, "Build Time:  %s\n", bi.BuildTime)
	fmt.Fprintf(w, "Build User:  %s\n", bi.BuildUser)
	fmt.Fprintf(w, "Go Version:  %s\n", bi.GoVersion)
	fmt.Fprintf(w, "Platform:    %s/%s\n", bi.Platform, bi.Arch)
	fmt.Fprintf(w, "CGO Enabled: %t\n", bi.CGOEnabled)
}
