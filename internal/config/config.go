package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	LogLevel    string
	API         APIConfig
	Buyer       BuyerConfig
	Mock        MockConfig
}

type APIConfig struct {
	BaseURL        string
	Token          string
	RequestTimeout time.Duration
}

type BuyerConfig struct {
	ID string
}

type MockConfig struct {
	Port  string
	Token string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "https://huggle-backend-jh2l.onrender.com")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", "30")
	viper.SetDefault("MOCK_PORT", "8080")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeoutSeconds, err := strconv.Atoi(getEnvOrViper("REQUEST_TIMEOUT_SECONDS", "30"))
	if err != nil || timeoutSeconds <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be a positive integer")
	}

	cfg := &Config{
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		API: APIConfig{
			BaseURL:        getEnvOrViper("API_BASE_URL", "https://huggle-backend-jh2l.onrender.com"),
			Token:          getEnvOrViper("API_TOKEN", ""),
			RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
		},
		Buyer: BuyerConfig{
			ID: getEnvOrViper("BUYER_ID", ""),
		},
		Mock: MockConfig{
			Port:  getEnvOrViper("MOCK_PORT", "8080"),
			Token: getEnvOrViper("MOCK_TOKEN", "dev-token"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
