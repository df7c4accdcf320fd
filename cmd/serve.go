package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neutral-yo/ytvideofind/internal/server"
	"github.com/neutral-yo/ytvideofind/internal/shared"
	"github.com/neutral-yo/ytvideofind/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if configPath := cmd.String("config"); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if loaded, err := shared.LoadConfig(configPath); err == nil {
				loaded.ApplyEnv()
				r.config = loaded
			} else {
				r.logger.Warn("failed to load config, keeping current", "error", err)
			}
		}
	}

	if port := cmd.Int("port"); port != 0 {
		r.config.Server.Port = int(port)
	}

	if r.youtube == nil {
		return fmt.Errorf("%w: youtube client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	router := r.buildRouter()

	srv := &http.Server{
		Addr:              r.config.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	r.logger.Infof("server running on port %d", r.config.Server.Port)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildRouter assembles the route table: OAuth flow, catalog queries, static front end.
func (r *Runner) buildRouter() *server.BasicRouter {
	sessions := server.NewSessionStore()

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(server.NewOAuthHandler(r.youtube, sessions, r.logger))
	router.Handler(server.NewCatalogHandler(r.youtube, sessions, r.logger))
	router.Handle("", "/", web.Handler(r.config.Server.StaticDir))

	return router
}
