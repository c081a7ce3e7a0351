package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Port       string
	DBPath     string
	JWTSecret  string
	RoutingURL string
	// Fixed pause between consecutive routing requests in a batch pass
	RouteDelay time.Duration
}

// Load reads configuration from the environment with sane defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/tripboard.db"
	}

	delayMs := 250
	if raw := os.Getenv("ROUTE_DELAY_MS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			delayMs = v
		}
	}

	return &Config{
		Port:       port,
		DBPath:     dbPath,
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RoutingURL: os.Getenv("ROUTING_URL"),
		RouteDelay: time.Duration(delayMs) * time.Millisecond,
	}
}
