package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMaxDimension = 101
	defaultCacheTTL     = 10 * time.Minute
	defaultHistoryTTL   = 24 * time.Hour
)

// Config holds the application's configuration values.
type Config struct {
	HostIP         string        // Host IP for the server
	RESTPort       int           // Port for the REST API
	GinMode        string        // Mode for the Gin framework (e.g., release, debug, test)
	DBHost         string        // Hostname or IP address for the database
	DBPort         int           // Port number for the database
	DBUser         string        // Username for the database
	DBPassword     string        // Password for the database
	DBName         string        // Name of the database
	RedisAddr      string        // host:port of the Redis server
	RedisPassword  string        // Password for Redis, empty when none
	RedisDB        int           // Redis logical database
	JWTSecret      string        // Secret key for JWT verification
	JWTIssuer      string        // Issuer claim for JWTs
	MaxDimension   int           // Largest width or height the API generates
	MazeCacheTTL   time.Duration // How long generated mazes stay cached
	SeedHistoryTTL time.Duration // How long the recent seed list is kept
}

// Load reads the configuration from the environment, after loading a .env file
// when one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	e := &envReader{}
	c := Config{
		HostIP:         e.mustGet("HOST_IP"),
		RESTPort:       e.mustGetInt("REST_PORT"),
		GinMode:        getWithDefault("GIN_MODE", "release"),
		DBHost:         e.mustGet("DB_HOST"),
		DBPort:         e.mustGetInt("DB_PORT"),
		DBUser:         e.mustGet("DB_USER"),
		DBPassword:     e.mustGet("DB_PASS"),
		DBName:         e.mustGet("DB_NAME"),
		RedisAddr:      e.mustGet("REDIS_ADDR"),
		RedisPassword:  getWithDefault("REDIS_PASSWORD", ""),
		RedisDB:        e.intWithDefault("REDIS_DB", 0),
		JWTSecret:      e.mustGet("JWT_SECRET"),
		JWTIssuer:      e.mustGet("JWT_ISSUER"),
		MaxDimension:   e.intWithDefault("MAZE_MAX_DIMENSION", defaultMaxDimension),
		MazeCacheTTL:   e.durationWithDefault("MAZE_CACHE_TTL", defaultCacheTTL),
		SeedHistoryTTL: e.durationWithDefault("MAZE_HISTORY_TTL", defaultHistoryTTL),
	}
	if e.err != nil {
		return Config{}, e.err
	}
	return c, nil
}

// envReader keeps the first lookup error so Load can read every key in one pass.
type envReader struct {
	err error
}

// mustGet retrieves the value of a required environment variable.
func (e *envReader) mustGet(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists && e.err == nil {
		e.err = fmt.Errorf("environment variable %s is not set", key)
	}
	return value
}

// mustGetInt retrieves a required environment variable as an integer.
func (e *envReader) mustGetInt(key string) int {
	valueStr := e.mustGet(key)
	if valueStr == "" {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}

func (e *envReader) intWithDefault(key string, defaultValue int) int {
	if _, exists := os.LookupEnv(key); !exists {
		return defaultValue
	}
	return e.mustGetInt(key)
}

func (e *envReader) durationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be a duration: %w", key, err)
	}
	return value
}

// getWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
