package http

import (
	"context"
	"io/fs"
	"os"

	appanalysis "github.com/turtacn/BiasLens-Intelligence/internal/application/analysis"
	"github.com/turtacn/BiasLens-Intelligence/internal/application/classifier"
	"github.com/turtacn/BiasLens-Intelligence/internal/config"
	rediscache "github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/cache/redis"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/BiasLens-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/BiasLens-Intelligence/internal/interfaces/http/middleware"
	"github.com/turtacn/BiasLens-Intelligence/internal/lexicon"
	"github.com/turtacn/BiasLens-Intelligence/internal/morphology"
)

// Assemble wires the full gateway from configuration: pattern store,
// morphological backends, analysis service, classifier fan-out, optional
// redis response cache, metrics, and the route tree.  The returned cleanup
// function releases held connections and must be called on shutdown.
func Assemble(ctx context.Context, cfg *config.Config, version string, logger logging.Logger) (*Server, func(), error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	store := lexicon.NewDefaultStore(dirOverlay(cfg.Lexicon.DataDir), logger)
	backends := morphology.NewDefaultRegistry(dirOverlay(cfg.Morphology.DictionaryDir), logger)

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	cleanups = append(cleanups, func() {
		if err := backends.Close(); err != nil {
			logger.Warn("closing morphological backends", logging.Err(err))
		}
	})

	var appMetrics *prometheus.AppMetrics
	var collector prometheus.MetricsCollector
	if cfg.Metrics.Enabled {
		var err error
		collector, err = prometheus.NewMetricsCollector(
			prometheus.CollectorConfig{Namespace: cfg.Metrics.Namespace}, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		appMetrics = prometheus.NewAppMetrics(collector)
	}

	var serviceMetrics appanalysis.Metrics
	if appMetrics != nil {
		serviceMetrics = appMetrics
	}
	service := appanalysis.NewService(store, backends, nil, serviceMetrics, logger)

	var classifiers *classifier.Client
	if eps := cfg.Classifiers.Endpoints; len(eps) > 0 {
		endpoints := make([]classifier.Endpoint, len(eps))
		for i, ep := range eps {
			endpoints[i] = classifier.Endpoint{Name: ep.Name, URL: ep.URL, Timeout: ep.Timeout}
		}
		var clientOpts []classifier.Option
		if appMetrics != nil {
			clientOpts = append(clientOpts, classifier.WithObserver(appMetrics))
		}
		classifiers = classifier.NewClient(endpoints, nil, logger, clientOpts...)
	}

	var checkers []handlers.HealthChecker
	var handlerOpts []handlers.AnalysisHandlerOption
	if cfg.Server.MaxBodySize > 0 {
		handlerOpts = append(handlerOpts, handlers.WithMaxBodySize(cfg.Server.MaxBodySize))
	}
	if cfg.Cache.Enabled {
		redisClient, err := rediscache.NewClient(ctx, rediscache.Config{
			Addr:         cfg.Cache.Addr,
			Username:     cfg.Cache.Username,
			Password:     cfg.Cache.Password,
			DB:           cfg.Cache.DB,
			PoolSize:     cfg.Cache.PoolSize,
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,
		}, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("closing redis client", logging.Err(err))
			}
		})

		cacheOpts := []rediscache.CacheOption{
			rediscache.WithPrefix(cfg.Cache.KeyPrefix),
			rediscache.WithDefaultTTL(cfg.Cache.TTL),
		}
		if appMetrics != nil {
			cacheOpts = append(cacheOpts, rediscache.WithObserver(appMetrics))
		}
		cache := rediscache.NewCache(redisClient, logger, cacheOpts...)
		handlerOpts = append(handlerOpts, handlers.WithResponseCache(cache, cfg.Cache.TTL))
		checkers = append(checkers, handlers.HealthCheckerFunc{
			CheckerName: "redis",
			CheckFunc:   redisClient.Ping,
		})
	}

	router := NewRouter(RouterConfig{
		AnalysisHandler:  handlers.NewAnalysisHandler(service, classifiers, logger, handlerOpts...),
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		Logger:           logger,
		Metrics:          observerOrNil(appMetrics),
		MetricsCollector: collector,
	})

	return NewServer(cfg.Server, router, logger), cleanup, nil
}

// dirOverlay maps an optional directory path to an overlay filesystem.
func dirOverlay(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}

func observerOrNil(m *prometheus.AppMetrics) middleware.HTTPObserver {
	if m == nil {
		return nil
	}
	return m
}
