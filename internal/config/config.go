package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v10"

	"style-finder/internal/scoring"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	AccessSecret       string `env:"ACCESS_SECRET"`
	AccessSecretHash   string `env:"ACCESS_SECRET_HASH"`
	CatalogPath        string `env:"CATALOG_PATH" envDefault:"Book1.xlsx"`
	CatalogDatabaseURL string `env:"CATALOG_DATABASE_URL"`
	AggregationPolicy  string `env:"AGGREGATION_POLICY" envDefault:"group-identity"`
	ChartMaxScore      int    `env:"CHART_MAX_SCORE" envDefault:"0"`
	OutputDir          string `env:"OUTPUT_DIR" envDefault:"./reports"`
	LogoPath           string `env:"LOGO_PATH"`
	ReportIDLabel      string `env:"REPORT_ID_LABEL" envDefault:"Participant ID"`
	LinkSecret         string `env:"LINK_SECRET"`
	LinkTTLMinutes     int    `env:"LINK_TTL_MINUTES" envDefault:"30"`
	ReportTTLMinutes   int    `env:"REPORT_TTL_MINUTES" envDefault:"60"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	CORSEnabled        bool   `env:"CORS_ENABLED" envDefault:"false"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`

	// TrustedProxies lista IPs/CIDRs cuyo X-Forwarded-For se respeta; vacio = ninguno.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rechaza politicas desconocidas, valores negativos y un gate sin secreto.
func (c *Config) Validate() error {
	if _, err := scoring.ParsePolicy(c.AggregationPolicy); err != nil {
		return fmt.Errorf("%w: AGGREGATION_POLICY: %v", ErrInvalidConfig, err)
	}
	if c.AccessSecret == "" && c.AccessSecretHash == "" {
		return fmt.Errorf("%w: ACCESS_SECRET or ACCESS_SECRET_HASH is required", ErrInvalidConfig)
	}
	for name, v := range map[string]int{
		"CHART_MAX_SCORE":       c.ChartMaxScore,
		"LINK_TTL_MINUTES":      c.LinkTTLMinutes,
		"REPORT_TTL_MINUTES":    c.ReportTTLMinutes,
		"REDIS_DB":              c.RedisDB,
		"RATE_LIMIT_PER_MINUTE": c.RateLimitPerMinute,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}
	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("%w: TRUSTED_PROXIES: %q is not an IP or CIDR", ErrInvalidConfig, proxy)
			}
		}
	}
	if c.CatalogPath == "" && c.CatalogDatabaseURL == "" {
		return fmt.Errorf("%w: CATALOG_PATH or CATALOG_DATABASE_URL is required", ErrInvalidConfig)
	}
	return nil
}

// Policy devuelve la politica de agregacion ya validada.
func (c *Config) Policy() scoring.Policy {
	p, _ := scoring.ParsePolicy(c.AggregationPolicy)
	return p
}

func (c *Config) LinkTTL() time.Duration {
	return time.Duration(c.LinkTTLMinutes) * time.Minute
}

func (c *Config) ReportTTL() time.Duration {
	return time.Duration(c.ReportTTLMinutes) * time.Minute
}
