package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/handler"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/resilience"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Build the index and serve the search API",
		Long: `Start the HTTP search API, build the index in the background and serve
searches once it is ready. /health/ready reports 503 until then.

Redis result caching, Kafka analytics and the Prometheus metrics server
are switched on in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root.cfg)
		},
	}
}

// service holds everything serve wires together. close releases the
// backing connections in reverse order of opening.
type service struct {
	engine     *indexer.Engine
	handler    http.Handler
	metrics    *metrics.Metrics
	aggregator *analytics.Aggregator
	observers  []indexer.Observer
	closers    []func()
}

func (s *service) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// newService connects the optional backing services. Redis and Kafka are
// best effort: a failure is logged and the feature is left off.
func newService(ctx context.Context, cfg *config.Config) *service {
	s := &service{
		metrics:    metrics.New(),
		aggregator: analytics.NewAggregator(),
	}
	s.observers = append(s.observers, s.metrics)

	var tracker handler.SearchTracker = s.aggregator
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		collector := analytics.NewCollector(producer,
			cfg.Kafka.EventBufferSize, cfg.Kafka.BatchSize, cfg.Kafka.FlushInterval, s.aggregator)
		collector.Start(ctx)
		s.closers = append(s.closers, func() {
			collector.Close()
			_ = producer.Close()
		})
		tracker = collector
		s.observers = append(s.observers, collector)
		slog.Info("analytics publishing enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.AnalyticsTopic)
	} else {
		s.observers = append(s.observers, s.aggregator)
	}

	s.engine = indexer.NewEngine(s.observers...)
	checker := health.NewChecker()
	checker.Register("index", health.ReadyCheck(s.engine.Ready, "index not built"))

	opts := []handler.Option{handler.WithTracker(tracker), handler.WithMetrics(s.metrics)}
	if cfg.Search.CacheEnabled {
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, search caching disabled", "error", err)
		} else {
			s.closers = append(s.closers, func() { _ = client.Close() })
			breaker := resilience.NewCircuitBreaker("redis", resilience.CircuitBreakerConfig{})
			opts = append(opts, handler.WithCache(cache.New(cache.NewBreakerStore(client, breaker), cfg.Redis.CacheTTL)))
			checker.Register("redis", health.PingCheck(client.Ping, true))
			slog.Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	mux := http.NewServeMux()
	handler.New(executor.New(s.engine, cfg.Search.Limit), s.engine, opts...).Register(mux)
	mux.HandleFunc("GET /api/v1/analytics/stats", analytics.NewHandler(s.aggregator).Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logging,
		middleware.Metrics(s.metrics),
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		mws = append(mws, middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.CORSOrigins...)))
	}
	if cfg.Server.RateLimit > 0 {
		mws = append(mws, middleware.RateLimit(middleware.NewLimiter(ctx, cfg.Server.RateLimit, cfg.Server.RateWindow)))
	}
	mws = append(mws, middleware.Timeout(cfg.Server.WriteTimeout))
	s.handler = middleware.Chain(mux, mws...)
	return s
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*pkgredis.Client, error) {
	var client *pkgredis.Client
	err := resilience.Retry(ctx, "redis connect", resilience.ConnectRetry, func(ctx context.Context) error {
		var err error
		client, err = pkgredis.NewClient(ctx, cfg)
		return err
	})
	return client, err
}

// build indexes the corpus into s.engine and publishes the index size.
func (s *service) build(ctx context.Context, cfg *config.Config) error {
	corpus, closeFn, err := openCorpus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	if err := s.engine.Build(ctx, corpus, corpus); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	stats := s.engine.Stats()
	s.metrics.SetIndexSize(stats.Documents, stats.Keywords)
	return nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	svc := newService(ctx, cfg)
	defer svc.close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      svc.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	servers := []*http.Server{server}
	if cfg.Metrics.Enabled {
		servers = append(servers, svc.metrics.NewServer(cfg.Metrics.Port))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.build(gctx, cfg)
	})
	for _, srv := range servers {
		g.Go(func() error {
			slog.Info("server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutting down %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	err := g.Wait()
	slog.Info("search service stopped")
	return err
}

