package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverMySQL  = "mysql"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Log      LogConfig      `toml:"log"`
	Auth     AuthConfig     `toml:"auth"`
	Store    StoreConfig    `toml:"store"`
	MySQL    MySQLConfig    `toml:"mysql"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Ingest   IngestConfig   `toml:"ingest"`
	Seed     SeedConfig     `toml:"seed"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	JWTExpireMinute int    `toml:"jwt_expire_minute"`
}

// StoreConfig selects where documents, chemicals, users and chat messages
// live. "memory" loses everything on restart.
type StoreConfig struct {
	Driver string `toml:"driver"`
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

// RedisConfig enables the chat history cache when Addr is set.
type RedisConfig struct {
	Addr                   string `toml:"addr"`
	Password               string `toml:"password"`
	DB                     int    `toml:"db"`
	HistoryTTLSeconds      int    `toml:"history_ttl_seconds"`
	HistoryDirtyTTLSeconds int    `toml:"history_dirty_ttl_seconds"`
}

// RabbitMQConfig enables asynchronous chat persistence when URL is set.
type RabbitMQConfig struct {
	URL                 string `toml:"url"`
	MessagePersistQueue string `toml:"message_persist_queue"`
}

type IngestConfig struct {
	TickMillis int `toml:"tick_ms"`
	MinStep    int `toml:"min_step"`
	MaxStep    int `toml:"max_step"`
}

type SeedConfig struct {
	// Path overrides the embedded mock data when non-empty.
	Path string `toml:"path"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverMySQL:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Ingest.MinStep <= 0 || c.Ingest.MaxStep < c.Ingest.MinStep {
		return fmt.Errorf("invalid ingest step range [%d, %d]", c.Ingest.MinStep, c.Ingest.MaxStep)
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.MySQL.User,
		c.MySQL.Password,
		c.MySQL.Host,
		c.MySQL.Port,
		c.MySQL.DB,
		c.MySQL.Params,
	)
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Ingest.TickMillis) * time.Millisecond
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "pfas-demo",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Auth: AuthConfig{
			JWTSecret:       "change-me-in-production",
			JWTExpireMinute: 120,
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		MySQL: MySQLConfig{
			Host:     "127.0.0.1",
			Port:     3306,
			User:     "root",
			Password: "",
			DB:       "pfas_demo",
			Params:   "parseTime=true&loc=Local&charset=utf8mb4",
		},
		Redis: RedisConfig{
			HistoryTTLSeconds:      60,
			HistoryDirtyTTLSeconds: 5,
		},
		RabbitMQ: RabbitMQConfig{
			MessagePersistQueue: "demo.chat.persist",
		},
		Ingest: IngestConfig{
			TickMillis: 200,
			MinStep:    5,
			MaxStep:    25,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpireMinute = getEnvAsInt("JWT_EXPIRE_MINUTE", cfg.Auth.JWTExpireMinute)
	cfg.Store.Driver = getEnv("STORE_DRIVER", cfg.Store.Driver)

	cfg.MySQL.Host = getEnv("MYSQL_HOST", cfg.MySQL.Host)
	cfg.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.MySQL.Port)
	cfg.MySQL.User = getEnv("MYSQL_USER", cfg.MySQL.User)
	cfg.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.MySQL.Password)
	cfg.MySQL.DB = getEnv("MYSQL_DB", cfg.MySQL.DB)
	cfg.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.MySQL.Params)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.HistoryTTLSeconds = getEnvAsInt("REDIS_HISTORY_TTL_SECONDS", cfg.Redis.HistoryTTLSeconds)
	cfg.Redis.HistoryDirtyTTLSeconds = getEnvAsInt("REDIS_HISTORY_DIRTY_TTL_SECONDS", cfg.Redis.HistoryDirtyTTLSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.MessagePersistQueue = getEnv("RABBITMQ_MESSAGE_PERSIST_QUEUE", cfg.RabbitMQ.MessagePersistQueue)

	cfg.Ingest.TickMillis = getEnvAsInt("INGEST_TICK_MS", cfg.Ingest.TickMillis)
	cfg.Ingest.MinStep = getEnvAsInt("INGEST_MIN_STEP", cfg.Ingest.MinStep)
	cfg.Ingest.MaxStep = getEnvAsInt("INGEST_MAX_STEP", cfg.Ingest.MaxStep)

	cfg.Seed.Path = getEnv("SEED_FILE", cfg.Seed.Path)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
