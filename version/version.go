// Package version reports build metadata for the defaultargs binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// Info is a snapshot of the build metadata, suitable for encoding.
type Info struct {
	Version   string `json:"version"             yaml:"version"`
	Revision  string `json:"revision"            yaml:"revision"`
	Branch    string `json:"branch,omitempty"    yaml:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty" yaml:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"           yaml:"goVersion"`
	Platform  string `json:"platform"            yaml:"platform"`
}

// Get returns the current build metadata. An unset version is reported as
// the main module version from the build info, or "devel".
func Get() Info {
	v := Version
	if v == "" {
		v = moduleVersion()
	}

	return Info{
		Version:   v,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  GoOS + "/" + GoArch,
	}
}

// String formats the info on one line, e.g.
// "defaultargs v1.2.0 (rev abc123, go1.25.0 linux/amd64)".
func (i Info) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "defaultargs %s (rev %s", i.Version, i.Revision)

	if i.Branch != "" {
		fmt.Fprintf(&sb, ", branch %s", i.Branch)
	}

	if i.BuildDate != "" {
		fmt.Fprintf(&sb, ", built %s", i.BuildDate)

		if i.BuildUser != "" {
			fmt.Fprintf(&sb, " by %s", i.BuildUser)
		}
	}

	fmt.Fprintf(&sb, ", %s %s)", i.GoVersion, i.Platform)

	return sb.String()
}

func moduleVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok || buildInfo.Main.Version == "" || buildInfo.Main.Version == "(devel)" {
		return "devel"
	}

	return buildInfo.Main.Version
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
