package common

import (
	"os"
	"strconv"
	"time"

	"github.com/hanwen-zhu/billsnap/constants"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Ledger   LedgerConfig
	Parser   ParserConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
	GRPCAddr string
}

// LedgerConfig holds remote bookkeeping API configuration
type LedgerConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// ParserConfig holds parsing/resolution behavior configuration
type ParserConfig struct {
	DefaultCurrency string
	HistoryWindow   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", "billsnap.db"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
			GRPCAddr: getEnv("GRPC_ADDR", ":8081"),
		},
		Ledger: LedgerConfig{
			BaseURL: getEnv("LEDGER_API_URL", ""),
			Token:   getEnv("LEDGER_API_TOKEN", ""),
			Timeout: getEnvAsDuration("LEDGER_API_TIMEOUT", 15*time.Second),
		},
		Parser: ParserConfig{
			DefaultCurrency: getEnv("DEFAULT_CURRENCY", constants.DefaultCurrency),
			HistoryWindow:   getEnvAsInt("HISTORY_WINDOW", 300),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Parser.HistoryWindow <= 0 {
		return NewAppError("CONFIG_ERROR", "HISTORY_WINDOW must be positive", ErrInvalidInput)
	}
	return nil
}
