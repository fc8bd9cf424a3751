package version

// Version information for the tschk CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional one-line git commit subject.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// VersionString returns the value cobra's --version flag should print: just
// the semver, without commit/date metadata (those are available via the
// dedicated version subcommand's --hash/--message/--date/--full flags).
func VersionString() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
