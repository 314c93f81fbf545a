// Package version carries build information injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Name is the binary name.
const Name = "joystick-reader"

// These variables are populated by the Go linker during the build process.
var (
	Version   = "dev"     // Release tag or dev version string
	Commit    = "none"    // Git commit hash
	Branch    = "unknown" // Git branch name
	BuildDate = "unknown" // Build timestamp
)

// Info holds all the versioning information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

// GetInfo returns a struct populated with the version information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Branch:    Branch,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a formatted string of the version information.
func (i Info) String() string {
	return fmt.Sprintf(
		"  Commit:    %s\n  Branch:    %s\n  Built:     %s\n  Go:        %s (%s)\n  Platform:  %s",
		i.Commit, i.Branch, i.BuildDate, i.GoVersion, i.Compiler, i.Platform,
	)
}
