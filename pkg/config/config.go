package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every terminal environment variable.
const EnvPrefix = "POSTERM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	Scanner ScannerConfig
	Theme   ThemeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POSTERM_APP_ENV" required:"true"`
	Port         string `envconfig:"POSTERM_APP_PORT" default:"4300"`
	TerminalID   string `envconfig:"POSTERM_TERMINAL_ID" default:"terminal-1"`
	LogLevel     string `envconfig:"POSTERM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POSTERM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type BackendConfig struct {
	BaseURL string        `envconfig:"POSTERM_BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"POSTERM_BACKEND_TIMEOUT" default:"10s"`
}

func (b BackendConfig) validate() error {
	if strings.TrimSpace(b.BaseURL) == "" {
		return fmt.Errorf("%s_BACKEND_BASE_URL is required", EnvPrefix)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"POSTERM_REDIS_URL" required:"true"`
	Address      string        `envconfig:"POSTERM_REDIS_ADDR"`
	Password     string        `envconfig:"POSTERM_REDIS_PASSWORD"`
	DB           int           `envconfig:"POSTERM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POSTERM_REDIS_POOL_SIZE" default:"5"`
	MinIdleConns int           `envconfig:"POSTERM_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"POSTERM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POSTERM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POSTERM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type ScannerConfig struct {
	DevicePath           string        `envconfig:"POSTERM_SCANNER_DEVICE" default:"/dev/barcode0"`
	SurfaceRetryAttempts int           `envconfig:"POSTERM_SCANNER_SURFACE_RETRIES" default:"50"`
	SurfaceRetryInterval time.Duration `envconfig:"POSTERM_SCANNER_SURFACE_INTERVAL" default:"100ms"`
	DecodeInterval       time.Duration `envconfig:"POSTERM_SCANNER_DECODE_INTERVAL" default:"50ms"`
}

type ThemeConfig struct {
	Default string `envconfig:"POSTERM_THEME_DEFAULT" default:"system"`
}
