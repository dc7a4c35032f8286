package mcp

import (
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/robinrosenstock/vcard/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"vcard_query": {
		def:     queryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleQuery },
	},
	"vcard_count": {
		def:     countToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCount },
	},
	"vcard_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"vcard_diff": {
		def:     diffToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDiff },
	},
}

// AllToolNames returns the names of all tools, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the vcard tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"vcard",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cfg *config.Config, version string) error {
	return server.ServeStdio(NewServer(cfg, version))
}
