// Package constant holds the application identity and the defaults every other package agrees on.
package constant

import _ "embed"

const (
	Bedtime = "bedtime"

	// Version is overwritten by release builds.
	Version = "0.3.0"

	// UserAgent is sent to the story catalog and audio hosts.
	UserAgent = Bedtime + "/" + Version
)

// Build metadata, set with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

const (
	ReleasesURL = "https://github.com/bedtime-cli/bedtime/releases"
	ReleasesAPI = "https://api.github.com/repos/bedtime-cli/bedtime/releases/latest"
)

// runtime.GOOS values the openers and install hints switch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

// AsciiArtLogo is shown above the root help.
//
//go:embed ascii.txt
var AsciiArtLogo string
