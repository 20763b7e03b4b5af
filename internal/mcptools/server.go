package mcptools

import (
	"transparency/internal/service"

	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients.
var Version = "dev"

// New creates the MCP server with every tool registered.
func New(selector service.QuestionSelector) *server.MCPServer {
	s := server.NewMCPServer(
		"transparency",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	analyzeTool := NewAnalyzeTool()
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	questionsTool := NewQuestionsTool(selector)
	s.AddTool(questionsTool.Definition(), questionsTool.Handle)

	return s
}
