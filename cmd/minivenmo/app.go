package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julianpalmerio/minivenmo/internal/handlers"
	"github.com/julianpalmerio/minivenmo/internal/logger"
	"github.com/julianpalmerio/minivenmo/internal/repository/memory"
	"github.com/julianpalmerio/minivenmo/internal/service/account"
	"github.com/julianpalmerio/minivenmo/internal/service/feed"
	"github.com/julianpalmerio/minivenmo/internal/service/payment"
	"github.com/julianpalmerio/minivenmo/internal/stream"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel, c.LogFile)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// The whole registry lives in memory and dies with the process
	storage := memory.NewStorage()

	// Live feed hub
	hub := stream.NewHub(logger)

	// Initialize services
	accountService := account.NewService(storage)
	paymentService := payment.NewService(storage, payment.StubCharger{}, hub)
	feedService := feed.NewService(storage, hub)

	mux := handlers.NewRouter(
		accountService,
		paymentService,
		feedService,
		hub,
		logger,
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "addr", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
