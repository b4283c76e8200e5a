// Package app arma las dependencias compartidas por la API y quizctl.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"style-finder/internal/config"
	"style-finder/internal/db"
	"style-finder/internal/domain"
	"style-finder/internal/metrics"
	"style-finder/internal/report"
	"style-finder/internal/repository"
	"style-finder/internal/service"
)

// NewLogger construye un logger de produccion con el nivel configurado.
func NewLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}

// LoadCatalog lee el catalogo una sola vez: Postgres si hay URL, si no el libro xlsx.
func LoadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.Catalog, error) {
	if cfg.CatalogDatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.CatalogDatabaseURL)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("%w: %v", domain.ErrCatalogMissing, err)
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			return domain.Catalog{}, fmt.Errorf("%w: catalog database unreachable: %v", domain.ErrCatalogMissing, err)
		}
		catalog, err := repository.LoadCatalog(ctx, repository.NewPgCatalogSource(pool))
		if err != nil {
			return domain.Catalog{}, err
		}
		logger.Info("catalog loaded", zap.String("source", "postgres"), zap.Int("questions", catalog.Len()))
		return catalog, nil
	}

	catalog, err := repository.LoadCatalog(ctx, repository.NewXLSXCatalogSource(cfg.CatalogPath))
	if err != nil {
		return domain.Catalog{}, err
	}
	logger.Info("catalog loaded", zap.String("source", cfg.CatalogPath), zap.Int("questions", catalog.Len()))
	return catalog, nil
}

// NewRenderer aplica etiqueta de id y logo; un logo ilegible solo genera un warning.
func NewRenderer(cfg *config.Config, logger *zap.Logger) *report.Renderer {
	opts := []report.RendererOption{report.WithIDLabel(cfg.ReportIDLabel)}
	if cfg.LogoPath != "" {
		logo, err := os.ReadFile(cfg.LogoPath)
		if err != nil {
			logger.Warn("logo unreadable, documents will omit it", zap.String("path", cfg.LogoPath), zap.Error(err))
		} else {
			opts = append(opts, report.WithLogo(logo))
		}
	}
	return report.NewRenderer(logger, opts...)
}

// NewAssessmentService arma el pipeline completo a partir de la configuracion.
func NewAssessmentService(
	cfg *config.Config,
	logger *zap.Logger,
	catalog domain.Catalog,
	store service.ReportStore,
	recorder metrics.Recorder,
) (*service.AssessmentService, error) {
	gate, err := service.NewAccessGate(cfg.AccessSecret, cfg.AccessSecretHash)
	if err != nil {
		return nil, fmt.Errorf("access gate: %w", err)
	}
	if store == nil {
		store = service.NewMemoryReportStore(cfg.ReportTTL())
	}
	return service.NewAssessmentService(logger, catalog, service.AssessmentOptions{
		Policy:        cfg.Policy(),
		ChartMaxScore: cfg.ChartMaxScore,
		Gate:          gate,
		Renderer:      NewRenderer(cfg, logger),
		Writer:        report.ArtifactWriter{Root: cfg.OutputDir},
		Store:         store,
		Metrics:       recorder,
		ReportTTL:     cfg.ReportTTL(),
	})
}

// OpenRedis devuelve un cliente ya verificado, o nil si no hay REDIS_ADDR o no responde.
func OpenRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}

// SweepInterval revisa varias veces por vida de reporte, entre 10s y 5m.
func SweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < 10*time.Second {
		return 10 * time.Second
	}
	if interval > 5*time.Minute {
		return 5 * time.Minute
	}
	return interval
}
