package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverBadger   = "badger"
)

type HTTPServer struct {
	Port                 string `mapstructure:"port" validate:"required,numeric"`
	ReadHeaderTimeoutSec int    `mapstructure:"read_header_timeout_sec" validate:"gte=0"`
	ShutdownTimeoutSec   int    `mapstructure:"shutdown_timeout_sec" validate:"gte=0"`
}

func (c HTTPServer) ReadHeaderTimeout() time.Duration {
	return secondsOr(c.ReadHeaderTimeoutSec, 5*time.Second)
}

func (c HTTPServer) ShutdownTimeout() time.Duration {
	return secondsOr(c.ShutdownTimeoutSec, 10*time.Second)
}

func secondsOr(sec int, fallback time.Duration) time.Duration {
	if sec <= 0 {
		return fallback
	}
	return time.Duration(sec) * time.Second
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// Timeout falls back to 10s when unset.
func (c HTTPClient) Timeout() time.Duration {
	return secondsOr(c.TimeoutSeconds, 10*time.Second)
}

type CoinDeskAPI struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

type Storage struct {
	Driver    string `mapstructure:"driver" validate:"oneof=postgres badger"`
	BadgerDir string `mapstructure:"badger_dir"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items" validate:"gte=0"`
}

type Scheduler struct {
	RefetchIntervalSec int `mapstructure:"refetch_interval_sec" validate:"gte=0"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer  HTTPServer  `mapstructure:"http_server"`
	DbServer    DbServer    `mapstructure:"db_server"`
	HTTPClient  HTTPClient  `mapstructure:"http_client"`
	CoinDeskAPI CoinDeskAPI `mapstructure:"coindesk_api"`
	Storage     Storage     `mapstructure:"storage"`
	Cache       Cache       `mapstructure:"cache"`
	Scheduler   Scheduler   `mapstructure:"scheduler"`
	Logging     Logging     `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads the yaml file at path, applies env overrides and validates the result.
// A missing file is allowed so the service can be configured from env alone.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.read_header_timeout_sec", 5)
	v.SetDefault("http_server.shutdown_timeout_sec", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("storage.badger_dir", "./data/badger")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("cache.max_items", 1024)
	v.SetDefault("scheduler.refetch_interval_sec", 0)
	v.SetDefault("logging.level", "info")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_server.shutdown_timeout_sec", "HTTP_SHUTDOWN_TIMEOUT_SEC")
	_ = v.BindEnv("coindesk_api.url", "COINDESK_API_URL")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// storage env vars
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.badger_dir", "BADGER_DIR")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	_ = v.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")
	_ = v.BindEnv("scheduler.refetch_interval_sec", "REFETCH_INTERVAL_SEC")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
