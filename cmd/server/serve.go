package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/RawAnimal/EncounterBuilder/internal/config"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
	"github.com/RawAnimal/EncounterBuilder/internal/mcp"
	"github.com/RawAnimal/EncounterBuilder/internal/transport"
)

const (
	sessionTimeout = 30 * time.Minute
	pruneInterval  = 5 * time.Minute
)

func newServeCmd() *cobra.Command {
	var transportMode string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio or streamable HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), transportMode)
		},
	}
	cmd.Flags().StringVar(&transportMode, "transport", "", "stdio or http (overrides ENCOUNTER_TRANSPORT_MODE)")
	return cmd
}

func runServe(ctx context.Context, transportMode string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := loadBase(transportMode)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openStore(ctx); err != nil {
		a.logger.Error("failed to open store", "driver", a.cfg.Storage.Driver, "error", err)
		return err
	}
	builders, err := a.newBuilders()
	if err != nil {
		return err
	}

	server := mcp.NewServer(a.mcpConfig())

	if a.cfg.Transport.Mode == config.TransportStdio {
		return runStdioMode(ctx, a.logger, server)
	}
	go pruneBuilders(ctx, a.logger, builders)
	return runHTTPMode(ctx, a.logger, server, builders, a.cfg.Server)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, builders *session.Service, cfg config.ServerConfig) error {
	addr := cfg.Addr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newHTTPHandler(server, builders, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func newHTTPHandler(server *sdkmcp.Server, builders *session.Service, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: sessionTimeout,
		},
	)
	return transport.NewRouter(mcpHandler, transport.RouterOptions{
		AuthToken:    cfg.AuthToken,
		Logger:       logger,
		OnSessionEnd: builders.Close,
	})
}

// pruneBuilders drops builders of HTTP sessions that have gone quiet.
func pruneBuilders(ctx context.Context, logger *slog.Logger, builders *session.Service) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := builders.PruneIdle(sessionTimeout); n > 0 {
				logger.Debug("pruned idle builders", "count", n, "live", len(builders.Sessions()))
			}
		}
	}
}
