package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Values come from the
// environment (optionally seeded from a .env file) with working defaults
// for everything except the object-storage credentials.
type Config struct {
	ServerPort string

	// SoundCloud endpoints. Overridable so tests can point the client at
	// local fake servers.
	SoundcloudBaseURL   string // landing page, scraped for credentials
	SoundcloudAPIURL    string // private api-v2 endpoint
	SoundcloudAssetHost string // CDN prefix of the scripts carrying client_id
	SoundcloudShortHost string // short-link host (redirects to canonical URLs)

	// Fetch bounds.
	MaxSegments    int
	SegmentWorkers int
	HTTPTimeout    time.Duration

	// Object storage for the final artifacts.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool
	CDNBaseURL     string // public base under which uploaded keys are served

	// Redis, used as the credential cache. Optional; an empty host
	// disables it and the cache degrades to in-process memory.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override variables already set in the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		SoundcloudBaseURL:   getEnv("SC_BASE_URL", "https://soundcloud.com"),
		SoundcloudAPIURL:    getEnv("SC_API_URL", "https://api-v2.soundcloud.com"),
		SoundcloudAssetHost: getEnv("SC_ASSET_HOST", "https://a-v2.sndcdn.com/"),
		SoundcloudShortHost: getEnv("SC_SHORT_HOST", "on.soundcloud.com"),

		MaxSegments:    getEnvInt("SC_MAX_SEGMENTS", 2048),
		SegmentWorkers: getEnvInt("SC_SEGMENT_WORKERS", 8),
		HTTPTimeout:    time.Duration(getEnvInt("SC_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "sndhop"),
		MinioRegion:    getEnv("MINIO_REGION", "auto"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		CDNBaseURL:     getEnv("CDN_BASE_URL", "https://cdn.cathop.lat"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
