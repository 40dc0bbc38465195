// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" または "postgres"
	URL    string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	ReviewLimit   int    `mapstructure:"review_limit"` // 1日の復習上限 (0 = 無制限)
	Timezone      string `mapstructure:"timezone"`
	SeedOnStartup bool   `mapstructure:"seed_on_startup"`
	SeedFile      string `mapstructure:"seed_file"`
	SeedLimit     int    `mapstructure:"seed_limit"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

var Cfg Config

// Location は app.timezone を解決します。Load で検証済みの前提で、解決できない場合は time.Local を返します。
func (c *Config) Location() *time.Location {
	if c == nil || c.App.Timezone == "" || strings.EqualFold(c.App.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadConfig は path 配下の config.yaml と環境変数 (APP_ 接頭辞) から設定を読み込み、Cfg に格納します。
func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	Cfg = *cfg
	return nil
}

// Load はグローバル変数を書き換えずに設定を読み込みます。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 環境変数 (例: APP_DATABASE_URL, APP_AUTH_ENABLED)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// デフォルト値の設定 (AutomaticEnv を Unmarshal に反映させるためにもキーを登録しておく)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("app.review_limit", DefaultAppReviewLimit)
	v.SetDefault("app.timezone", DefaultTimezone)
	v.SetDefault("app.seed_on_startup", DefaultSeedOnStartup)
	v.SetDefault("app.seed_file", DefaultSeedFile)
	v.SetDefault("app.seed_limit", DefaultSeedLimit)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"*"})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 300)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("auth.jwt_secret", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return nil, err
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.App.ReviewLimit < 0 {
		log.Println("App review limit is negative, treating as unlimited")
		cfg.App.ReviewLimit = 0
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if tz := cfg.App.Timezone; tz != "" && !strings.EqualFold(tz, "local") {
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid app.timezone %q: %w", tz, err)
		}
	}
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.enabled requires auth.jwt_secret")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", cfg.Server.Port)
	log.Printf("Database Driver: %s", cfg.Database.Driver)
	log.Printf("Review Limit: %d", cfg.App.ReviewLimit)
	log.Printf("Auth Enabled: %t", cfg.Auth.Enabled)

	return &cfg, nil
}
