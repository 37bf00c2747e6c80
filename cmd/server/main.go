package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobzone/internal/config"
	"github.com/honeycarbs/jobzone/internal/mcp"
	"github.com/honeycarbs/jobzone/pkg/logging"
	"github.com/honeycarbs/jobzone/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	res, err := mcp.InitializeResources(initCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv,
		res,
	)

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port), "api", cfg.API.BaseURL)

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
