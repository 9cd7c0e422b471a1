package container

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"kanji/strokes/internal/client"
	"kanji/strokes/internal/config"
	"kanji/strokes/internal/server"
	"kanji/strokes/internal/service"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.KanjiVGClient
	Service *service.Service
	Server  *http.Server
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	kanjiVGClient := client.NewKanjiVGClient(cfg.KanjiVG)
	svc := service.NewService(kanjiVGClient)

	return &Container{
		Config:  cfg,
		Client:  kanjiVGClient,
		Service: svc,
		Server:  server.New(cfg.Server, svc),
	}, nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (c *Container) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", c.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Server.Addr, err)
	}
	return c.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled, then shuts the server down
// within the configured shutdown timeout.
func (c *Container) Serve(ctx context.Context, listener net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Serving kanji stroke orders on %s", listener.Addr())
		if err := c.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("🛑 Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(c.Config.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if err := c.Client.Close(); err != nil {
		return fmt.Errorf("failed to close KanjiVG client: %w", err)
	}

	log.Info("Container shut down successfully")
	return nil
}
