// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/source-academy/scm-slang/pkg/buildinfo.Var=value"
// to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/source-academy/scm-slang/pkg/prog"
)

// Version identifies the version of scm. On development commits, it
// identifies the next release.
const Version = "0.1.0"

// VersionSuffix is appended to Version to build the full version string. When
// it is empty, a suffix is derived from the VCS information Go embeds in the
// binary.
var VersionSuffix = ""

// Reproducible identifies whether the build is reproducible.
var Reproducible = "false"

// Type of the JSON output of -buildinfo.
type info struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

// FullVersion returns Version followed by the version suffix.
func FullVersion() string {
	if VersionSuffix != "" {
		return Version + VersionSuffix
	}
	return Version + devSuffix(debug.ReadBuildInfo)
}

// devSuffix derives a version suffix from the VCS revision, such as
// "-dev.0123456789ab" or "-dev.0123456789ab-dirty".
func devSuffix(read func() (*debug.BuildInfo, bool)) string {
	bi, ok := read()
	if !ok {
		return "-dev.unknown"
	}
	var revision, modified string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if len(revision) < 12 {
		return "-dev.unknown"
	}
	suffix := "-dev." + revision[:12]
	if modified == "true" {
		suffix += "-dirty"
	}
	return suffix
}

// Program is the buildinfo subprogram. It handles -version and -buildinfo.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version && !f.BuildInfo {
		return prog.ErrNotSuitable
	}
	v := info{FullVersion(), runtime.Version(), Reproducible == "true"}
	switch {
	case f.Version && f.JSON:
		return json.NewEncoder(fds[1]).Encode(v.Version)
	case f.Version:
		fmt.Fprintln(fds[1], v.Version)
	case f.JSON:
		return json.NewEncoder(fds[1]).Encode(v)
	default:
		fmt.Fprintln(fds[1], "Version:", v.Version)
		fmt.Fprintln(fds[1], "Go version:", v.GoVersion)
		fmt.Fprintln(fds[1], "Reproducible build:", v.Reproducible)
	}
	return nil
}
