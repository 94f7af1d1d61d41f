package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	EventStore EventStoreConfig
	Booking    BookingConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// EventStoreConfig holds configuration for the KurrentDB event journal.
type EventStoreConfig struct {
	// Host is the KurrentDB server hostname
	Host string
	// Port is the gRPC port (default 2113)
	Port int
	// Insecure disables TLS (for development)
	Insecure bool
	// Username for authentication (optional)
	Username string
	// Password for authentication (optional)
	Password string
}

// BookingConfig holds tunables for the reservation subsystem.
type BookingConfig struct {
	// WindowDays is the rolling future window the slot generator fills
	WindowDays int
	// ReserveRPS is the per-IP rate limit on the reservation endpoint
	ReserveRPS int
	// ReserveBurst is the per-IP burst allowance on the reservation endpoint
	ReserveBurst int
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "medbook"),
			Password: getEnv("DB_PASSWORD", "medbook"),
			Database: getEnv("DB_NAME", "medbook"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		EventStore: EventStoreConfig{
			Host:     getEnv("EVENTSTORE_HOST", "localhost"),
			Port:     getEnvInt("EVENTSTORE_PORT", 2113),
			Insecure: getEnvBool("EVENTSTORE_INSECURE", true),
			Username: getEnv("EVENTSTORE_USERNAME", ""),
			Password: getEnv("EVENTSTORE_PASSWORD", ""),
		},
		Booking: BookingConfig{
			WindowDays:   getEnvInt("BOOKING_WINDOW_DAYS", 30),
			ReserveRPS:   getEnvInt("BOOKING_RESERVE_RPS", 5),
			ReserveBurst: getEnvInt("BOOKING_RESERVE_BURST", 10),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
