// Package mcp exposes safeflag over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with the safeflag tools registered.
// sourcePath and configPath anchor every tool invocation to one project.
func NewServer(sourcePath, configPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"safeflag",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, sourcePath, configPath)

	return s
}
