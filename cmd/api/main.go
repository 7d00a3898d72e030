package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/pawmatch/backend/internal/config"
	"github.com/zhouzirui/pawmatch/backend/internal/handler"
	"github.com/zhouzirui/pawmatch/backend/internal/logger"
	"github.com/zhouzirui/pawmatch/backend/internal/service/catalog"
	"github.com/zhouzirui/pawmatch/backend/internal/service/quiz"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Info("no .env file loaded, continuing with system environment variables only", zap.Error(envErr))
	}

	provider := newCatalogProvider(cfg, log)
	quizService := quiz.NewService(provider, quiz.Config{
		Delay:              cfg.Quiz.PacingDelay,
		DefaultQuestionSet: cfg.Quiz.QuestionSet,
	}, log.Named("quiz"))
	defer quizService.Shutdown()

	// Sessions answered before the catalog arrives finish once it loads.
	provider.Start(ctx, func() {
		if n := quizService.ResumeDeferred(ctx); n > 0 {
			log.Info("resumed deferred sessions", zap.Int("sessions", n))
		}
	})

	router := handler.NewRouter(provider, quizService, log.Named("http"))

	startServer(ctx, cfg.Server, router, log)
}

func newCatalogProvider(cfg *config.Config, log *zap.Logger) *catalog.Provider {
	var fetcher *catalog.Fetcher
	if cfg.Catalog.RemoteEnabled() {
		fetcher = catalog.NewFetcher(catalog.FetcherConfig{
			BaseURL:    cfg.Catalog.URL,
			Timeout:    cfg.Catalog.Timeout,
			MaxRetries: cfg.Catalog.Retries,
		}, nil, log.Named("catalog.fetcher"))
		log.Info("remote catalog enabled", zap.String("url", cfg.Catalog.URL))
	}

	var cache *catalog.Cache
	if cfg.Redis.Enabled() {
		cache = catalog.NewCache(catalog.NewRedisClient(catalog.RedisConfig{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), cfg.Catalog.CacheTTL)

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx); err != nil {
			log.Warn("catalog cache unreachable, continuing without it", zap.Error(err))
			_ = cache.Close()
			cache = nil
		}
		cancel()
	}

	return catalog.NewProvider(catalog.Config{
		File:    cfg.Catalog.File,
		UseSeed: cfg.Catalog.UseSeed,
	}, fetcher, cache, log.Named("catalog"))
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("PawMatch backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
