package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Registry RegistryConfig
	Upstream UpstreamConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"floppahub-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"2.0.0"`
}

// AuthConfig holds the accepted API keys.
type AuthConfig struct {
	APIKeys string `envconfig:"API_KEYS" default:""`
}

// Keys returns the configured API keys, trimmed, empty entries dropped.
func (a *AuthConfig) Keys() []string {
	var keys []string
	for _, k := range strings.Split(a.APIKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// CacheConfig holds cache settings for upstream response caching.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"2m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// RegistryConfig holds persistent state settings: the identity registry
// backend and the last-game-id marker file.
type RegistryConfig struct {
	Backend    string `envconfig:"REGISTRY_BACKEND" default:"file"` // file, sqlite, or mysql
	FilePath   string `envconfig:"REGISTRY_FILE" default:"./data/registry.json"`
	SQLitePath string `envconfig:"REGISTRY_SQLITE_PATH" default:"./data/registry.db"`
	MarkerPath string `envconfig:"LAST_GAME_ID_FILE" default:"./data/last_game_id.txt"`

	// MySQL settings
	MySQLHost     string `envconfig:"REGISTRY_DB_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"REGISTRY_DB_PORT" default:"3306"`
	MySQLName     string `envconfig:"REGISTRY_DB_NAME" default:"floppahub"`
	MySQLUser     string `envconfig:"REGISTRY_DB_USER" default:"root"`
	MySQLPassword string `envconfig:"REGISTRY_DB_PASS" default:""`
}

// MySQLDSN returns the MySQL data source name for the registry backend.
func (r *RegistryConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		r.MySQLUser, r.MySQLPassword, r.MySQLHost, r.MySQLPort, r.MySQLName)
}

// UpstreamConfig holds credentials and endpoints for the aggregated services.
type UpstreamConfig struct {
	Timeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`

	FreeStuffAPIKey  string `envconfig:"FREESTUFF_API_KEY" default:""`
	FreeStuffBaseURL string `envconfig:"FREESTUFF_BASE_URL" default:"https://api.freestuffbot.xyz/v1"`
	FreeStuffLang    string `envconfig:"FREESTUFF_LANG" default:"pt-BR"`

	LastFMAPIKey  string `envconfig:"LASTFM_API_KEY" default:""`
	LastFMBaseURL string `envconfig:"LASTFM_BASE_URL" default:"https://ws.audioscrobbler.com/2.0/"`

	ImgBBAPIKey     string `envconfig:"IMGBB_API_KEY" default:""`
	ImgBBBaseURL    string `envconfig:"IMGBB_BASE_URL" default:"https://api.imgbb.com/1/upload"`
	ImgBBExpiration int    `envconfig:"IMGBB_EXPIRATION" default:"600"`

	DownloaderAPIKey  string `envconfig:"DOWNLOADER_API_KEY" default:""`
	DownloaderBaseURL string `envconfig:"DOWNLOADER_BASE_URL" default:"https://full-downloader-social-media.p.rapidapi.com/"`
	DownloaderHost    string `envconfig:"DOWNLOADER_HOST" default:"full-downloader-social-media.p.rapidapi.com"`

	ChatBaseURL string `envconfig:"CHAT_BASE_URL" default:""`
	ChatAPIKey  string `envconfig:"CHAT_API_KEY" default:""`
	ChatModel   string `envconfig:"CHAT_MODEL" default:"gpt-4-turbo"`
}

// AlertRateWindow bounds the alert route: one pass per window per client.
const AlertRateWindow = 4 * time.Minute

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
