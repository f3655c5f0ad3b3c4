package mcpserver

import (
	"io"

	"github.com/dossier-cli/dossier/internal/output"
)

type clientEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// ClientConfig is the "mcpServers" block LLM clients read to launch a server.
type ClientConfig struct {
	MCPServers map[string]clientEntry `json:"mcpServers"`
}

// NewClientConfig describes launching executable with args.
func NewClientConfig(executable string, args []string) ClientConfig {
	return ClientConfig{MCPServers: map[string]clientEntry{
		ServerName: {Command: executable, Args: args},
	}}
}

// PrintClientConfig writes the client configuration template as indented JSON.
func PrintClientConfig(w io.Writer, executable string, args []string) error {
	return output.WriteJSON(w, NewClientConfig(executable, args))
}
