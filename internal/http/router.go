package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"style-finder/internal/service"
)

// RouterConfig agrupa handlers y opciones del router. Metrics se expone en /metrics
// cuando no es nil; Limiter aplica a las rutas protegidas; TrustedProxies decide cuando
// ClientIP lee X-Forwarded-For (nil = nunca).
type RouterConfig struct {
	Assessments    *AssessmentHandler
	Reports        *ReportHandler
	Metrics        http.Handler
	Limiter        service.RateLimiter
	CORSEnabled    bool
	TrustedProxies []string
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, cfg RouterConfig) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(zapLoggerMiddleware(logger), gin.Recovery())
	if cfg.CORSEnabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", AccessSecretHeader}
		r.Use(cors.New(corsConfig))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	// API JSON, protegida por el secreto compartido.
	api := r.Group("/",
		jsonContentTypeMiddleware(),
		RateLimitMiddleware(cfg.Limiter),
		AccessSecretMiddleware(cfg.Assessments.Service()),
	)
	api.GET("/questions", cfg.Assessments.GetQuestions)
	api.POST("/assessments", cfg.Assessments.PostAssessment)
	api.GET("/reports/latest", cfg.Assessments.GetLatestReport)

	// Descargas: el token firmado reemplaza al secreto.
	reports := r.Group("/reports")
	reports.GET("/:id/chart.png", cfg.Reports.GetChart)
	reports.GET("/:id/document.pdf", cfg.Reports.GetDocument)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
