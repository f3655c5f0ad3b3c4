// Package mcpserver exposes the lookup services as Model Context Protocol
// tools over stdio.
package mcpserver
