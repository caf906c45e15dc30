package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrAdminPasswordRequired は管理者パスワードが未設定の場合に返される
var ErrAdminPasswordRequired = errors.New("ADMIN_PASSWORD is required")

// ストアのドライバー名
const (
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

// Config はアプリケーション設定を表す
// 起動時に一度だけ構築し、各コンストラクタへ渡す
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	Admin   AdminConfig
	Email   EmailConfig
	Metrics MetricsConfig
	Worker  WorkerConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port            string        `env:"PORT"                    envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowOrigins    []string      `env:"CORS_ALLOW_ORIGINS"      envDefault:"*" envSeparator:","`
}

// StoreConfig はクラスと予約の保存先の設定
// postgres を選んだ場合もクラス単位のロックには Redis を使う
type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER" envDefault:"redis"`
	Database DatabaseConfig
}

// DatabaseConfig はPostgreSQL設定
type DatabaseConfig struct {
	URL          string `env:"DATABASE_URL"`
	MaxOpenConns int    `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int    `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
}

// RedisConfig はRedis設定
// REDIS_URL が設定されている場合はクライアント作成時に個別設定より優先される
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Host     string `env:"REDIS_HOST"     envDefault:"localhost"`
	Port     string `env:"REDIS_PORT"     envDefault:"6379"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS"      envDefault:"false"`
}

// AdminConfig は管理者認証の設定
type AdminConfig struct {
	Password string        `env:"ADMIN_PASSWORD"`
	TokenTTL time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"24h"`
}

// EmailConfig はメール送信の設定
type EmailConfig struct {
	ResendAPIKey string        `env:"RESEND_API_KEY"`
	From         string        `env:"FROM_EMAIL"         envDefault:"FIT365 <noreply@fit365.com>"`
	AdminEmail   string        `env:"ADMIN_EMAIL"`
	ContactFrom  string        `env:"CONTACT_FROM_EMAIL" envDefault:"FIT365 Contact <onboarding@resend.dev>"`
	ContactTo    []string      `env:"CONTACT_TO_EMAIL"   envSeparator:","`
	SendTimeout  time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`
}

// MetricsConfig はメトリクス認証の設定
type MetricsConfig struct {
	User     string `env:"METRICS_USER"`
	Password string `env:"METRICS_PASSWORD"`
}

// IsEnabled は認証が有効かどうかを返す
func (c *MetricsConfig) IsEnabled() bool {
	return c.User != "" && c.Password != ""
}

// WorkerConfig はバックグラウンドワーカーの設定
type WorkerConfig struct {
	StatsInterval time.Duration `env:"STATS_INTERVAL" envDefault:"1m"`
}

// Load は .env と環境変数から設定を読み込む
func Load() (*Config, error) {
	// .env が無い環境（本番など）ではシステムの環境変数だけを使う
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は起動に必須の設定を確認する
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Admin.Password) == "" {
		return ErrAdminPasswordRequired
	}
	if c.Admin.TokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive")
	}
	if c.Worker.StatsInterval <= 0 {
		return fmt.Errorf("STATS_INTERVAL must be positive")
	}
	switch c.Store.Driver {
	case StoreDriverRedis:
	case StoreDriverPostgres:
		if c.Store.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

// IsProduction は本番環境かどうかを返す
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}
