// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	MetricsPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RabbitEnabled bool
}

func Load() *Config {
	return &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		MetricsPort:   getEnvOrDefault("METRICS_PORT", "9090"),
		DBHost:        getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:        getEnvOrDefault("DB_PORT", "5432"),
		DBUser:        getEnvOrDefault("DB_USER", "postgres"),
		DBPassword:    getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:        getEnvOrDefault("DB_NAME", "minishop"),
		RabbitEnabled: getEnvOrDefault("RABBITMQ_ENABLED", "true") == "true",
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
