package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the catalog, the chatbot script and the service-center locator as
MCP tools, so agents can answer visitor questions from the same content the site serves.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		app, err := newApp(logger)
		if err != nil {
			return err
		}
		srv := app.MCPServer()

		switch transport {
		case "stdio":
			logger.Info("starting MCP server", "transport", transport)
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(context.Background())
			defer ctx.Cancel()
			baseURL, _ := cmd.Flags().GetString("base-url")
			if baseURL == "" {
				baseURL = "http://localhost" + addr
			}
			logger.Info("starting MCP server", "transport", transport, "addr", addr)
			if err := srv.ServeSSE(ctx, addr, baseURL); err != nil {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q: supported are stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL advertised to SSE clients")
}
