package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables (see .env.example).
type Config struct {
	App     AppConfig
	Elastic ElasticConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Search  SearchConfig
	Breaker BreakerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	Server      ServerConfig
}

// ServerConfig holds the HTTP server timeouts.
type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// =====================================================
// DOCUMENT STORE
// =====================================================

type ElasticConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	MaxRetries   int
	FilmsIndex   string
	GenresIndex  string
	PersonsIndex string
}

// Address is the base URL of the cluster.
func (e ElasticConfig) Address() string {
	host := e.Host
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return fmt.Sprintf("%s:%d", host, e.Port)
}

type SearchConfig struct {
	Driver           string // elastic, memory
	Fixtures         string // JSON fixtures for the memory driver
	PersonFilmsLimit int
	GenreMapping     string // nested, keyword: how the films index maps "genres"
}

type BreakerConfig struct {
	FailureThreshold int
	Timeout          time.Duration
}

// =====================================================
// CACHE
// =====================================================

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	Driver      string // redis, memory
	FilmTTL     time.Duration
	GenreTTL    time.Duration
	PersonTTL   time.Duration
	LoadTimeout time.Duration // bound on a shared store load after a miss
}

const (
	DriverElastic = "elastic"
	DriverRedis   = "redis"
	DriverMemory  = "memory"

	GenreMappingNested  = "nested"
	GenreMappingKeyword = "keyword"
)

// Load reads the config from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Movies API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Server: ServerConfig{
				ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
				WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
				IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
				ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			},
		},
		Elastic: ElasticConfig{
			Host:         getEnv("ELASTIC_HOST", "localhost"),
			Port:         getEnvInt("ELASTIC_PORT", 9200),
			Username:     getEnv("ELASTIC_USERNAME", ""),
			Password:     getEnv("ELASTIC_PASSWORD", ""),
			MaxRetries:   getEnvInt("ELASTIC_MAX_RETRIES", 3),
			FilmsIndex:   getEnv("ELASTIC_FILMS_INDEX", "movies"),
			GenresIndex:  getEnv("ELASTIC_GENRES_INDEX", "genres"),
			PersonsIndex: getEnv("ELASTIC_PERSONS_INDEX", "persons"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Driver:      getEnv("CACHE_DRIVER", DriverRedis),
			FilmTTL:     getEnvDuration("FILM_CACHE_TTL", 5*time.Minute),
			GenreTTL:    getEnvDuration("GENRE_CACHE_TTL", 5*time.Minute),
			PersonTTL:   getEnvDuration("PERSON_CACHE_TTL", 5*time.Minute),
			LoadTimeout: getEnvDuration("CACHE_LOAD_TIMEOUT", 10*time.Second),
		},
		Search: SearchConfig{
			Driver:           getEnv("SEARCH_DRIVER", DriverElastic),
			Fixtures:         getEnv("SEARCH_FIXTURES", ""),
			PersonFilmsLimit: getEnvInt("PERSON_FILMS_LIMIT", 1000),
			GenreMapping:     getEnv("FILM_GENRE_MAPPING", GenreMappingNested),
		},
		Breaker: BreakerConfig{
			FailureThreshold: getEnvInt("BREAKER_FAILURE_THRESHOLD", 5),
			Timeout:          getEnvDuration("BREAKER_TIMEOUT", 30*time.Second),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks drivers and limits.
func (c *Config) Validate() error {
	switch c.Search.Driver {
	case DriverElastic, DriverMemory:
	default:
		return fmt.Errorf("SEARCH_DRIVER must be %q or %q, got %q", DriverElastic, DriverMemory, c.Search.Driver)
	}
	switch c.Cache.Driver {
	case DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("CACHE_DRIVER must be %q or %q, got %q", DriverRedis, DriverMemory, c.Cache.Driver)
	}

	switch c.Search.GenreMapping {
	case GenreMappingNested, GenreMappingKeyword:
	default:
		return fmt.Errorf("FILM_GENRE_MAPPING must be %q or %q, got %q", GenreMappingNested, GenreMappingKeyword, c.Search.GenreMapping)
	}

	if c.Cache.FilmTTL <= 0 || c.Cache.GenreTTL <= 0 || c.Cache.PersonTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Search.PersonFilmsLimit < 1 {
		return fmt.Errorf("PERSON_FILMS_LIMIT must be positive")
	}
	if c.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive")
	}

	// Production must not run against the in-process fakes
	if c.App.Environment == "production" && c.Search.Driver == DriverMemory {
		return fmt.Errorf("SEARCH_DRIVER=memory is not allowed in production")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("300").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
