// Package service hosts the calculator MCP server over stdio or HTTP
// transport.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/abacusweb/abacus/internal/platform/branding"
	"github.com/abacusweb/abacus/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP server address, used by the http transport.
}

// Server hosts the MCP server and the calculator session behind it.
type Server struct {
	mcpServer *mcp.Server
	session   *domain.Session
}

// New creates a configured MCP server with the calculator tools and the
// display resource registered.
func New() *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    branding.AppName + " MCP",
		Version: serverVersion,
	}, nil)

	session := domain.NewSession()

	mcp.AddTool(mcpServer, domain.AppendTool(), domain.AppendHandler(session))
	mcp.AddTool(mcpServer, domain.OperatorTool(), domain.OperatorHandler(session))
	mcp.AddTool(mcpServer, domain.EqualsTool(), domain.EqualsHandler(session))
	mcp.AddTool(mcpServer, domain.PercentTool(), domain.PercentHandler(session))
	mcp.AddTool(mcpServer, domain.DeleteTool(), domain.DeleteHandler(session))
	mcp.AddTool(mcpServer, domain.ClearTool(), domain.ClearHandler(session))
	mcpServer.AddResource(domain.DisplayResource(), domain.DisplayResourceHandler(session))

	return &Server{mcpServer: mcpServer, session: session}
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server := New()

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP serves the MCP server over streamable HTTP until the context
// ends.
func (s *Server) serveHTTP(ctx context.Context, httpAddr string) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	// Default to localhost-only binding.
	if httpAddr == "" {
		httpAddr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	log.Printf("mcp listening on %s", httpAddr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
