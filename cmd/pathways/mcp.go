package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goganux/texas-career-path-explorer/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes explorer sessions as MCP tools so agents can open an interest, click nodes and toggle filters.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		cfg := app.Config.MCP
		if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
			cfg.Transport = transport
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		srv := mcp.NewServer(app.Catalog, app.Sessions, mcp.WithLogger(app.Logger))

		switch cfg.Transport {
		case "stdio":
			// Logs already go to stderr; stdout carries JSON-RPC.
			app.Logger.Info("Starting pathways MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			app.Logger.Info("Starting pathways MCP server (SSE)", "addr", cfg.Addr)
			if err := srv.ServeSSE(cmd.Context(), cfg.Addr, cfg.BaseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			app.Logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q (supported: stdio, sse)", cfg.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "", "Transport protocol to use: 'stdio' or 'sse' (overrides mcp.transport)")
	mcpCmd.Flags().String("addr", "", "Address to listen on, SSE only (overrides mcp.addr)")
}
