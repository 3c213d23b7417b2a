// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"

	platformcmd "github.com/abacusweb/abacus/internal/platform/cmd"
	"github.com/abacusweb/abacus/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr  string `env:"ABACUS_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"ABACUS_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the calculator MCP server.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		err := service.Run(ctx, service.Config{
			Transport: service.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
		})
		if err != nil {
			return fmt.Errorf("serve mcp: %w", err)
		}
		return nil
	})
}
