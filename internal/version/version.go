package version

import "github.com/fatih/color"

// Version information for the tschema CLI.
// Number, GitCommit and BuildDate can be overridden at build time via
// -ldflags -X; Version is computed at init and is not affected by -X.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Number is the plain semantic version, for machine-readable output.
	Number = "0.1.0"

	// Version is the colored semantic version shown by --version.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0")

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
