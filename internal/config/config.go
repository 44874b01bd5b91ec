package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables

	"github.com/joho/godotenv" // godotenv loads a .env file during development
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  BackendURL is the one process-wide external
// value the seat-map logic depends on: it is resolved exactly once here
// and never mutated at runtime.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	BackendURL     string // base URL of the external allocation backend
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	AisleRow       int    // row number after which the visual aisle sits
	MaxUploadBytes int64  // spreadsheet upload size cap in bytes
}

// Load reads configuration values from environment variables and returns
// a Config.  A .env file is honored when present.  Required variables are
// enforced by must() and missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	_ = godotenv.Load() // missing .env is fine; real env wins either way

	return Config{
		Env:            must("APP_ENV"),                            // environment (dev/test/prod)
		Port:           must("APP_PORT"),                           // port to bind the HTTP server
		BackendURL:     must("BACKEND_API_URL"),                    // allocation backend base URL
		DBUser:         must("DB_USER"),                            // database user
		DBPass:         os.Getenv("DB_PASS"),                       // database password (empty allowed)
		DBHost:         must("DB_HOST"),                            // database host
		DBPort:         must("DB_PORT"),                            // database port
		DBName:         must("DB_NAME"),                            // database name
		AisleRow:       envInt("AISLE_ROW", 12),                    // aisle threshold, original layout uses 12
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 5<<20)),   // 5MB cap like the old upload form
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
