// Package web parses web command flags and runs the calculator web service.
package web

import (
	"context"
	"flag"
	"fmt"

	platformcmd "github.com/abacusweb/abacus/internal/platform/cmd"
	"github.com/abacusweb/abacus/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr string `env:"ABACUS_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the calculator web server.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(web.Config{HTTPAddr: cfg.HTTPAddr})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
