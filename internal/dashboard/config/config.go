package config

import (
	"time"

	"stock-forecast-dashboard/pkg/config"
)

// Backend holds the prediction backend settings.
type Backend struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Auth holds the auth-as-a-service provider settings.
type Auth struct {
	BaseURL           string        `mapstructure:"base_url"`
	AnonKey           string        `mapstructure:"anon_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RefreshMargin     time.Duration `mapstructure:"refresh_margin"`
	RefreshMaxElapsed time.Duration `mapstructure:"refresh_max_elapsed"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	SecureCookie      bool          `mapstructure:"secure_cookie"`
}

// Polling holds refresh intervals of the live sections.
type Polling struct {
	MarketStatusInterval time.Duration `mapstructure:"market_status_interval"`
	MoversInterval       time.Duration `mapstructure:"movers_interval"`
	QuotesInterval       time.Duration `mapstructure:"quotes_interval"`
	MoversRefreshSpec    string        `mapstructure:"movers_refresh_spec"`
	MoversCacheTTL       time.Duration `mapstructure:"movers_cache_ttl"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App     config.App    `mapstructure:"app"`
	Logger  config.Logger `mapstructure:"logger"`
	Redis   config.Redis  `mapstructure:"redis"`
	API     config.API    `mapstructure:"api"`
	Backend Backend       `mapstructure:"backend"`
	Auth    Auth          `mapstructure:"auth"`
	Polling Polling       `mapstructure:"polling"`
}

var defaults = map[string]interface{}{
	"app.name":                       "forecast-dashboard",
	"app.env":                        "development",
	"app.version":                    "dev",
	"logger.level":                   "info",
	"logger.encoding":                "json",
	"api.host":                       "",
	"api.port":                       8080,
	"redis.enabled":                  false,
	"redis.host":                     "localhost",
	"redis.port":                     6379,
	"redis.password":                 "",
	"redis.db":                       0,
	"redis.pool_size":                10,
	"backend.base_url":               "http://localhost:8000",
	"backend.timeout":                "15s",
	"backend.max_request_per_minute": 600,
	"auth.base_url":                  "",
	"auth.anon_key":                  "",
	"auth.timeout":                   "10s",
	"auth.refresh_margin":            "60s",
	"auth.refresh_max_elapsed":       "2m",
	"auth.session_ttl":               "12h",
	"auth.secure_cookie":             false,
	"polling.market_status_interval": "60s",
	"polling.movers_interval":        "60s",
	"polling.quotes_interval":        "30s",
	"polling.movers_refresh_spec":    "@every 1m",
	"polling.movers_cache_ttl":       "2m",
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
