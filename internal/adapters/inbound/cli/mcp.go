package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/safeflag/safeflag/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the safeflag MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		sourcePath string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the safeflag MCP server (stdio)",
		Long: "Start the safeflag MCP server using stdio transport, so AI coding " +
			"assistants can verify flag consistency and evaluate rollouts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewServer(sourcePath, configPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&sourcePath, "path", "./src", "Source path to scan")
	cmd.Flags().StringVar(&configPath, "config", "./feature-flags.yml", "Flag config file (YAML or JSON)")

	return cmd
}
