// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // non-streaming routes only
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	GeminiKey       string `yaml:"gemini_key"`
	GeminiURL       string `yaml:"gemini_url"`
	DefaultModel    string `yaml:"default_model"`
	GuidanceModel   string `yaml:"guidance_model"`
	RecommendModel  string `yaml:"recommend_model"`
	ConcurrentLimit int    `yaml:"concurrent_limit"` // max concurrent AI calls
	ChatPerMinute   int    `yaml:"chat_per_minute"`  // per-user rate limit
}

type AuthConfig struct {
	// Shared HMAC secret of the external identity provider; tokens are
	// verified, never issued here (except the dev mint).
	JWTSecret string `yaml:"jwt_secret"`
}

type SecurityConfig struct {
	EncryptionKey string `yaml:"encryption_key"` // AES key for AI log content at rest
}

type RetentionConfig struct {
	AILogDays     int           `yaml:"ai_log_days"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	AI        AIConfig        `yaml:"ai"`
	Auth      AuthConfig      `yaml:"auth"`
	Security  SecurityConfig  `yaml:"security"`
	Retention RetentionConfig `yaml:"retention"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.DefaultModel == "" {
		cfg.AI.DefaultModel = "gpt-4o"
	}
	if cfg.AI.GuidanceModel == "" {
		cfg.AI.GuidanceModel = "gpt-3.5-turbo"
	}
	if cfg.AI.RecommendModel == "" {
		cfg.AI.RecommendModel = cfg.AI.DefaultModel
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.AI.ChatPerMinute <= 0 {
		cfg.AI.ChatPerMinute = 20
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Retention.AILogDays <= 0 {
		cfg.Retention.AILogDays = 90
	}
	if cfg.Retention.SweepInterval <= 0 {
		cfg.Retention.SweepInterval = time.Hour
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Auth.JWTSecret == "" && !dev {
		return nil, errors.New("auth.jwt_secret is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
