package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"syscall"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/config"
	"go-jobdemand-scraper/internal/logging"
	"go-jobdemand-scraper/internal/portal"
	"go-jobdemand-scraper/internal/scraper"
	"go-jobdemand-scraper/internal/server"
	"go-jobdemand-scraper/internal/shutdown"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	portals := portal.Registry(cfg.Portals)
	orch := scraper.NewOrchestrator(
		portals,
		browser.NewPlaywrightLauncher(cfg.BrowserOptions(), logger),
		logger,
		scraper.WithMaxSessions(cfg.MaxSessions),
	)

	srv := server.New(orch, logger).NewHTTPServer(cfg.Server.Addr())

	// ListenAndServe returns as soon as Shutdown starts; wait for draining.
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		_ = shutdown.Graceful(
			context.Background(),
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			srv,
			cfg.Server.ShutdownTimeout,
			logger,
		)
	}()

	logger.Info("server listening", "addr", srv.Addr, "portals", portal.Names(portals))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
	<-drained
	logger.Info("server stopped")
}
