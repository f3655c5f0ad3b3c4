// Package version holds the build metadata reported by `dossier version` and
// the MCP server handshake. Release builds inject it with -ldflags; plain
// `go install` builds fall back to runtime/debug.BuildInfo.
package version
