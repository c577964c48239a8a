package config

import "os"

// Config holds the environment-configured settings.
type Config struct {
	// HTTPAddr is the listen address, from HTTP_ADDR.
	HTTPAddr string
	// DatabasePath is the SQLite database file, from DATABASE_PATH.
	DatabasePath string
}

// Load reads the configuration from the environment, falling back to
// defaults: HTTP_ADDR=":8080", DATABASE_PATH="zaloga.sqlite3".
func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DatabasePath: getenv("DATABASE_PATH", "zaloga.sqlite3"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
