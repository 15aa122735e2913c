// Package buildinfo exposes version metadata injected at build time.
package buildinfo

import "strings"

// Set via -ldflags at release time; zero values mean a dev build.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Summary returns a human-readable version string such as
// "1.2.0 (abc1234 2026-08-23)".
func Summary() string {
	version := Version
	if version == "" {
		version = "dev"
	}

	var details []string
	if Commit != "" {
		details = append(details, Commit)
	}
	if Date != "" {
		details = append(details, Date)
	}
	if len(details) == 0 {
		return version
	}
	return version + " (" + strings.Join(details, " ") + ")"
}
