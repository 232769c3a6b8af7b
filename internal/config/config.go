package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	API     APIConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DataConfig struct {
	// Path to the cleaned accidents CSV. Loaded once at startup.
	Path string
}

type APIConfig struct {
	RateLimitRPS    int
	MapSampleCap    int
	TopWeatherLimit int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Data: DataConfig{
			Path: getEnv("DATA_PATH", "./data/us_accidents_cleaned.csv"),
		},
		API: APIConfig{
			RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 5),
			MapSampleCap:    getEnvInt("MAP_SAMPLE_CAP", 20000),
			TopWeatherLimit: getEnvInt("TOP_WEATHER_LIMIT", 5),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Data.Path == "" {
		return fmt.Errorf("data path must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.API.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}
	if c.API.MapSampleCap < 1 {
		return fmt.Errorf("map sample cap must be positive")
	}
	if c.API.TopWeatherLimit < 1 {
		return fmt.Errorf("top weather limit must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
