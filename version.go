// Package debuganalyze runs a static-analysis command against one source
// file and persists its captured output to a report file.
package debuganalyze

// Version is the release version, overridden at build time via ldflags.
var Version = "dev"
