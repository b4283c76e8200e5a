package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"style-finder/internal/app"
	"style-finder/internal/config"
	apihttp "style-finder/internal/http"
	"style-finder/internal/metrics"
	"style-finder/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := app.LoadCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("catalog load", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewPrometheusRecorder("stylefinder", registry)
	if err != nil {
		logger.Fatal("metrics init", zap.Error(err))
	}

	var (
		store   service.ReportStore
		limiter service.RateLimiter
	)
	if redisClient := app.OpenRedis(ctx, cfg, logger); redisClient != nil {
		defer redisClient.Close()
		store = service.NewRedisReportStore(redisClient, cfg.ReportTTL())
		if cfg.RateLimitPerMinute > 0 {
			limiter = service.NewRedisRateLimiter(redisClient, time.Minute, cfg.RateLimitPerMinute)
		}
	}

	if limiter == nil && cfg.RateLimitPerMinute > 0 {
		limiter = service.NewMemoryRateLimiter(time.Minute, cfg.RateLimitPerMinute)
	}

	assessmentSvc, err := app.NewAssessmentService(cfg, logger, catalog, store, recorder)
	if err != nil {
		logger.Fatal("assessment service init", zap.Error(err))
	}

	go assessmentSvc.RunSweeper(ctx, app.SweepInterval(cfg.ReportTTL()))

	if cfg.LinkSecret == "" {
		logger.Warn("link secret not configured, download links will not survive a restart")
	}
	linkSvc, err := service.NewLinkService(cfg.LinkSecret, cfg.LinkTTL())
	if err != nil {
		logger.Fatal("link service init", zap.Error(err))
	}

	router := apihttp.NewRouter(logger, apihttp.RouterConfig{
		Assessments:    apihttp.NewAssessmentHandler(logger, assessmentSvc, linkSvc),
		Reports:        apihttp.NewReportHandler(logger, assessmentSvc, linkSvc),
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Limiter:        limiter,
		CORSEnabled:    cfg.CORSEnabled,
		TrustedProxies: cfg.TrustedProxies,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("policy", string(assessmentSvc.Policy())),
		zap.Int("chart_max_score", assessmentSvc.ChartMaxScore()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

