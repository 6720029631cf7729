package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paragraph-labs/paragraph-mcp-server/internal/app"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/audit"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/config"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/log"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/paragraph"
	"github.com/paragraph-labs/paragraph-mcp-server/internal/tools"
)

const (
	serverName    = "paragraph-mcp-server"
	serverVersion = "0.4.0"
)

func main() {
	// Best effort: absent .env files are fine, the environment wins anyway.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel)

	client := paragraph.NewClient(paragraph.Options{
		BaseURL:       cfg.APIURL,
		APIKey:        cfg.APIKey,
		RatePerSecond: cfg.RateLimit.PerSecond,
		Burst:         cfg.RateLimit.Burst,
		Logger:        logger,
	})
	resolver := paragraph.NewResolver(client, cfg.PublicationID, cfg.PublicationSlug, logger)

	builder := tools.Builder{
		Logger:   logger,
		Audit:    audit.New(logger),
		Client:   client,
		Resolver: resolver,
	}
	server, err := builder.Build(serverName, serverVersion)
	if err != nil {
		logger.Error("build server failed", "error", err)
		os.Exit(1)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	switch cfg.Transport {
	case config.TransportHTTP:
		if err := runHTTP(baseCtx, cfg, server, logger); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	default:
		if err := runStdio(baseCtx, server); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	}
}

func runStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func runHTTP(ctx context.Context, cfg config.Config, server *mcp.Server, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: cfg.HTTP.Stateless,
	})

	application, err := app.New(ctx, cfg, handler, logger)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
