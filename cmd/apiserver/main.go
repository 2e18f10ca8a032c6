// API server entry point for the BiasLens analysis gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/BiasLens-Intelligence/internal/config"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	gatewayhttp "github.com/turtacn/BiasLens-Intelligence/internal/interfaces/http"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.OutputPath},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting BiasLens gateway",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	ctx := context.Background()
	server, cleanup, err := gatewayhttp.Assemble(ctx, cfg, version, logger)
	if err != nil {
		logger.Fatal("failed to assemble gateway", logging.Err(err))
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", logging.Err(err))
		}
	case sig := <-stop:
		logger.Info("received signal, shutting down", logging.String("signal", sig.String()))
		if err := server.Stop(ctx); err != nil {
			logger.Error("shutdown failed", logging.Err(err))
		}
	}
}

// loadConfig falls back to environment-only configuration when the config
// file is absent, so the container image runs with no mounted file.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return config.LoadFromEnv()
		}
		return nil, err
	}
	return config.Load(path)
}
