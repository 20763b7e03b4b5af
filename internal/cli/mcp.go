package cli

import (
	"transparency/internal/logging"
	"transparency/internal/mcptools"
	"transparency/internal/questions"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve analyze_product and generate_questions over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := questions.NewSelectorFromConfig(opts.cfg.AI)
			if err != nil {
				return err
			}
			logging.Log.WithField("provider", sel.Provider()).Info("MCP server starting on stdio")
			return server.ServeStdio(mcptools.New(sel))
		},
	}
}
