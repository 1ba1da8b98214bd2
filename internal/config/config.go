// Package config loads application configuration from environment
// variables. A .env file in the working directory is read first when
// present, which keeps local development setups out of the shell.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Strings for identifiers and
// secrets, ints for durations and costs.
type Config struct {
	Env            string // application environment (dev/test/prod)
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host
	DBPort         string // database port
	DBName         string // database name
	DBMaxOpenConns int    // connection pool ceiling
	DBMaxIdleConns int    // idle connections kept in the pool
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token TTL in minutes
	RefreshTTLDays int    // refresh token TTL in days
	BcryptCost     int    // bcrypt cost for password hashing
	LogLevel       string // zerolog level (trace..error)
	LogPretty      bool   // human-friendly console output
}

// Load reads the configuration. Required variables are enforced by
// must(); missing values exit with a fatal log message.
func Load() Config {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 10),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		LogPretty:      envBool("LOG_PRETTY", false),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
